package htmlview

import (
	"embed"
	"html/template"
	"io"
	"strings"

	"setup-checklist/internal/checklist"
)

//go:embed templates/*.html
var templatesFS embed.FS

const (
	defaultTitle       = "Setup checklist"
	defaultCelebration = "You've finished every setup step. **Nice work!** :tada:"
)

// Options mirror the TUI's copy settings.
type Options struct {
	Title       string
	Celebration string
}

type rowVM struct {
	ID        string
	Title     string
	Href      string
	Completed bool
}

type checklistVM struct {
	State           string
	Visible         bool
	Title           string
	Progress        checklist.Progress
	Percent         int
	Rows            []rowVM
	CelebrationHTML template.HTML
}

// Renderer turns a session into an HTML fragment.
//
// The fragment is what a server-rendered page would embed before the client has read the
// dismissal flag: for an unresolved session it is an empty, hidden placeholder, never the
// checklist itself.
type Renderer struct {
	tmpl *template.Template
}

func New() (*Renderer, error) {
	tmpl, err := template.New("base").Funcs(template.FuncMap{
		"trim": strings.TrimSpace,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, s *checklist.Session, opts Options) error {
	return r.tmpl.ExecuteTemplate(w, "checklist", buildVM(s, opts))
}

func (r *Renderer) RenderString(s *checklist.Session, opts Options) (string, error) {
	var b strings.Builder
	if err := r.Render(&b, s, opts); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}

func buildVM(s *checklist.Session, opts Options) checklistVM {
	state := checklist.StateUnresolved
	if s != nil {
		state = s.State()
	}
	vm := checklistVM{
		State:   state.String(),
		Visible: state.Visible(),
	}
	if !vm.Visible {
		return vm
	}

	vm.Title = strings.TrimSpace(opts.Title)
	if vm.Title == "" {
		vm.Title = defaultTitle
	}
	vm.Progress = s.Progress()
	vm.Percent = vm.Progress.Rounded()

	if state == checklist.StateComplete {
		celebration := opts.Celebration
		if strings.TrimSpace(celebration) == "" {
			celebration = defaultCelebration
		}
		vm.CelebrationHTML = renderMarkdownHTML(celebration)
		return vm
	}

	items := s.Items()
	vm.Rows = make([]rowVM, 0, len(items))
	for _, it := range items {
		vm.Rows = append(vm.Rows, rowVM{ID: it.ID, Title: it.Title, Href: it.Href, Completed: it.Completed})
	}
	return vm
}

package tui

import (
	"context"

	"setup-checklist/internal/checklist"
	"setup-checklist/internal/logging"
	"setup-checklist/internal/model"
	"setup-checklist/internal/provider"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

const (
	defaultTitle       = "Setup checklist"
	defaultCelebration = "You've finished every setup step. **Nice work!**"
)

type Options struct {
	Store     checklist.DismissalPersister
	Provider  provider.Provider
	Navigator Navigator
	// Clipboard receives copied step links. Nil uses the system clipboard.
	Clipboard CopyFunc

	Title string
	// Celebration is markdown shown in the celebration panel.
	Celebration string

	// QuitOnDismiss ends a standalone program once the dismissal has been written.
	QuitOnDismiss bool

	Log *zap.Logger
}

type dismissalReadMsg struct{ dismissed bool }

type queryMsg struct{ query provider.Query }

type watchStartedMsg struct{ ch <-chan struct{} }

type sourceChangedMsg struct{}

type watchClosedMsg struct{}

type navigateDoneMsg struct {
	href string
	err  error
}

type dismissPersistedMsg struct{}

type widgetModel struct {
	ctx     context.Context
	session *checklist.Session
	opts    Options
	log     *zap.Logger

	keys     keyMap
	help     help.Model
	showHelp bool
	bar      progress.Model

	width  int
	cursor int
	watch  <-chan struct{}
	// flash is a one-line status under the rows, cleared on the next key.
	flash string

	// inflight is true while a fetch is outstanding; pending records a change notification
	// that arrived meanwhile so we fetch once more afterwards.
	inflight bool
	pending  bool
}

func newWidgetModel(ctx context.Context, opts Options) widgetModel {
	if ctx == nil {
		ctx = context.Background()
	}
	if opts.Title == "" {
		opts.Title = defaultTitle
	}
	if opts.Celebration == "" {
		opts.Celebration = defaultCelebration
	}
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	return widgetModel{
		ctx:      ctx,
		session:  checklist.NewSession(opts.Store),
		opts:     opts,
		log:      logging.OrNop(opts.Log),
		keys:     newKeyMap(),
		help:     help.New(),
		bar:      bar,
		inflight: true,
	}
}

// Init is the "mount": the dismissal read and the fetch start independently. Nothing is
// rendered until the dismissal read lands.
func (m widgetModel) Init() tea.Cmd {
	cmds := []tea.Cmd{m.readDismissal(), m.fetch()}
	if w, ok := m.opts.Provider.(provider.Watcher); ok {
		cmds = append(cmds, m.startWatch(w))
	}
	return tea.Batch(cmds...)
}

func (m widgetModel) readDismissal() tea.Cmd {
	ctx, st := m.ctx, m.opts.Store
	return func() tea.Msg {
		if st == nil {
			return dismissalReadMsg{}
		}
		return dismissalReadMsg{dismissed: st.Read(ctx)}
	}
}

func (m widgetModel) fetch() tea.Cmd {
	ctx, p := m.ctx, m.opts.Provider
	return func() tea.Msg {
		return queryMsg{query: provider.Run(ctx, p)}
	}
}

func (m widgetModel) startWatch(w provider.Watcher) tea.Cmd {
	ctx, log := m.ctx, m.log
	return func() tea.Msg {
		ch, err := w.Watch(ctx)
		if err != nil {
			log.Warn("checklist source watch unavailable", zap.Error(err))
			return nil
		}
		return watchStartedMsg{ch: ch}
	}
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return watchClosedMsg{}
		}
		return sourceChangedMsg{}
	}
}

func (m widgetModel) persistDismissal() tea.Cmd {
	ctx, st := m.ctx, m.opts.Store
	return func() tea.Msg {
		if st != nil {
			st.Write(ctx)
		}
		return dismissPersistedMsg{}
	}
}

func (m widgetModel) navigate(href string) tea.Cmd {
	nav := m.opts.Navigator
	return func() tea.Msg {
		if nav == nil {
			return navigateDoneMsg{href: href}
		}
		return navigateDoneMsg{href: href, err: nav.Open(href)}
	}
}

func (m widgetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case dismissalReadMsg:
		m.session.SetDismissal(model.DismissalFromBool(msg.dismissed))
		m.log.Debug("dismissal resolved", zap.Stringer("dismissal", m.session.Dismissal()))
		return m, nil

	case queryMsg:
		m.inflight = false
		if msg.query.IsError {
			m.log.Warn("checklist fetch failed; hiding widget", zap.Error(msg.query.Err))
		}
		m.session.ApplyQuery(msg.query)
		m.clampCursor()
		if m.pending {
			return m.refetch()
		}
		return m, nil

	case watchStartedMsg:
		m.watch = msg.ch
		return m, waitForChange(m.watch)

	case sourceChangedMsg:
		m.log.Debug("checklist source changed")
		next, cmd := m.refetch()
		if next.watch == nil {
			return next, cmd
		}
		return next, tea.Batch(cmd, waitForChange(next.watch))

	case watchClosedMsg:
		m.watch = nil
		return m, nil

	case navigateDoneMsg:
		if msg.err != nil {
			m.log.Warn("open step failed", zap.String("href", msg.href), zap.Error(msg.err))
		}
		return m, nil

	case copyDoneMsg:
		if msg.err != nil {
			m.log.Warn("copy step link failed", zap.String("link", msg.link), zap.Error(msg.err))
			m.flash = "copy failed"
		} else {
			m.flash = "copied " + msg.link
		}
		return m, nil

	case dismissPersistedMsg:
		if m.opts.QuitOnDismiss {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m widgetModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.flash = ""
	state := m.session.State()
	keys := m.keys.forState(state)

	if key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}
	// A hidden widget has no controls.
	if !state.Visible() {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Help):
		m.showHelp = !m.showHelp
		return m, nil
	case key.Matches(msg, keys.Refresh):
		return m.refetch()
	case key.Matches(msg, keys.Dismiss), key.Matches(msg, keys.GotIt):
		return m.dismiss()
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.session.Items())-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, keys.Open):
		it, ok := m.selectedStep()
		if !ok {
			return m, nil
		}
		return m, m.navigate(it.Href)
	case key.Matches(msg, keys.Copy):
		it, ok := m.selectedStep()
		if !ok {
			return m, nil
		}
		return m, m.copyLink(it.Href)
	}
	return m, nil
}

// selectedStep returns the row under the cursor when it is an open, linkable step.
// Completed steps are not interactive.
func (m widgetModel) selectedStep() (model.ChecklistItem, bool) {
	items := m.session.Items()
	if m.cursor < 0 || m.cursor >= len(items) {
		return model.ChecklistItem{}, false
	}
	it := items[m.cursor]
	if it.Completed || it.Href == "" {
		return model.ChecklistItem{}, false
	}
	return it, true
}

func (m widgetModel) dismiss() (tea.Model, tea.Cmd) {
	m.session.MarkDismissed()
	return m, m.persistDismissal()
}

func (m widgetModel) refetch() (widgetModel, tea.Cmd) {
	if m.inflight {
		m.pending = true
		return m, nil
	}
	m.inflight = true
	m.pending = false
	return m, m.fetch()
}

func (m *widgetModel) clampCursor() {
	n := len(m.session.Items())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

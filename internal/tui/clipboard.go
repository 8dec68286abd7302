package tui

import (
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// CopyFunc puts text on the system clipboard.
type CopyFunc func(text string) error

func systemClipboard(text string) error {
	return clipboard.WriteAll(text)
}

type copyDoneMsg struct {
	link string
	err  error
}

// linkResolver is implemented by navigators that can turn a relative href into the URL
// they would open.
type linkResolver interface {
	Resolve(href string) (string, error)
}

func (m widgetModel) copyLink(href string) tea.Cmd {
	copyFn := m.opts.Clipboard
	if copyFn == nil {
		copyFn = systemClipboard
	}
	nav := m.opts.Navigator
	return func() tea.Msg {
		link := strings.TrimSpace(href)
		if r, ok := nav.(linkResolver); ok {
			resolved, err := r.Resolve(link)
			if err != nil {
				return copyDoneMsg{link: link, err: err}
			}
			link = resolved
		}
		return copyDoneMsg{link: link, err: copyFn(link)}
	}
}

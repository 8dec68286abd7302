package tui

import (
	"context"

	"setup-checklist/internal/checklist"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the interactive widget inline (no alt screen) until the user quits.
func Run(ctx context.Context, opts Options) error {
	applyThemePreference()
	applyColorProfilePreference()
	applyGlyphPreference()

	m := newWidgetModel(ctx, opts)
	_, err := tea.NewProgram(m, tea.WithContext(ctx)).Run()
	return err
}

// Render draws a session once, for non-interactive output. It honors the same states as
// the interactive widget: hidden states render as "".
func Render(s *checklist.Session, opts Options, width int) string {
	applyGlyphPreference()

	m := newWidgetModel(context.Background(), opts)
	if s != nil {
		m.session = s
	}
	m.width = width
	return m.View()
}

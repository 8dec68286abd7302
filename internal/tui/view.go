package tui

import (
	"fmt"
	"strings"

	"setup-checklist/internal/checklist"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

const (
	defaultWidgetWidth = 60
	minWidgetWidth     = 30
	maxWidgetWidth     = 72
)

// rowView is one Active-state row before styling.
type rowView struct {
	Title     string
	Href      string
	Completed bool
	Selected  bool
}

// Link reports whether the row renders as a navigable link.
func (r rowView) Link() bool { return !r.Completed && r.Href != "" }

func (m widgetModel) rows() []rowView {
	items := m.session.Items()
	out := make([]rowView, 0, len(items))
	for i, it := range items {
		out = append(out, rowView{
			Title:     it.Title,
			Href:      it.Href,
			Completed: it.Completed,
			Selected:  i == m.cursor,
		})
	}
	return out
}

func (m widgetModel) widgetWidth() int {
	w := m.width
	if w <= 0 {
		w = defaultWidgetWidth
	}
	if w > maxWidgetWidth {
		w = maxWidgetWidth
	}
	if w < minWidgetWidth {
		w = minWidgetWidth
	}
	return w
}

func (m widgetModel) View() string {
	state := m.session.State()
	switch state {
	case checklist.StateActive:
		return m.viewActive(state)
	case checklist.StateComplete:
		return m.viewComplete(state)
	default:
		// Unresolved, dismissed and unavailable all render nothing.
		return ""
	}
}

// innerWidth is the content width inside the panel border and padding.
func (m widgetModel) innerWidth() int {
	return m.widgetWidth() - 4
}

func (m widgetModel) viewHeader() string {
	inner := m.innerWidth()
	right := styleControl().Render("x Dismiss")
	title := xansi.Truncate(m.opts.Title, inner-lipgloss.Width(right)-1, "…")
	left := styleTitle().Render(title)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m widgetModel) viewProgress() string {
	p := m.session.Progress()
	label := fmt.Sprintf(" %d/%d · %d%%", p.Completed, p.Total, p.Rounded())
	bar := m.bar
	bar.Width = m.innerWidth() - lipgloss.Width(label)
	if bar.Width < 4 {
		bar.Width = 4
	}
	return bar.ViewAs(p.Fraction()) + styleMuted().Render(label)
}

func (m widgetModel) viewActive(state checklist.State) string {
	inner := m.innerWidth()
	lines := []string{m.viewHeader(), m.viewProgress(), ""}
	for _, r := range m.rows() {
		lines = append(lines, renderRow(r, inner))
	}
	if m.flash != "" {
		lines = append(lines, "", styleMuted().Render(xansi.Truncate(m.flash, inner, "…")))
	}
	lines = append(lines, "", m.viewHelp(state))
	return stylePanel().Width(m.widgetWidth() - 2).Render(strings.Join(lines, "\n"))
}

func (m widgetModel) viewComplete(state checklist.State) string {
	inner := m.innerWidth()
	panelInner := inner - 4

	body := []string{
		styleTitle().Render(glyphParty() + " All set!"),
	}
	if md := renderMarkdown(m.opts.Celebration, panelInner); md != "" {
		body = append(body, "", md)
	}
	body = append(body, "", styleControl().Render("d Got it, hide this"))
	celebration := styleCelebrationPanel().Width(inner - 2).Render(strings.Join(body, "\n"))

	lines := []string{m.viewHeader(), m.viewProgress(), "", celebration, "", m.viewHelp(state)}
	return stylePanel().Width(m.widgetWidth() - 2).Render(strings.Join(lines, "\n"))
}

func (m widgetModel) viewHelp(state checklist.State) string {
	h := m.help
	h.Width = m.innerWidth()
	h.ShowAll = m.showHelp
	return h.View(m.keys.forState(state))
}

func renderRow(r rowView, width int) string {
	cursor := "  "
	if r.Selected {
		cursor = glyphCursor() + " "
	}
	var mark string
	if r.Completed {
		mark = styleDoneMark().Render(glyphDone())
	} else {
		mark = styleMuted().Render(glyphTodo())
	}
	prefix := cursor + mark + " "

	if !r.Link() {
		avail := width - lipgloss.Width(prefix)
		title := xansi.Truncate(r.Title, avail, "…")
		if r.Completed {
			return prefix + styleDoneRow().Render(title)
		}
		return prefix + title
	}

	arrow := " " + glyphArrow()
	avail := width - lipgloss.Width(prefix) - lipgloss.Width(arrow)
	title := xansi.Truncate(r.Title, avail, "…")
	link := styleLink().Render(title)
	if r.Selected {
		link = styleSelected().Inherit(styleLink()).Render(title)
	}
	return prefix + link + styleMuted().Render(arrow)
}

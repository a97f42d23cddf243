package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/idilsaglam/kanban/internal/model"
	"github.com/idilsaglam/kanban/internal/ui"
)

// ------- styling helpers (Lip Gloss) -------

type styles struct {
	title, success, accent, muted, err lipgloss.Style

	selected, ghost, carry lipgloss.Style

	column, focusedColumn, inputBox lipgloss.Style

	priority map[model.Priority]lipgloss.Style
}

// color maps a palette entry to a lipgloss color; empty means none.
func color(c string) lipgloss.TerminalColor {
	if c == "" {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(c)
}

// newStyles derives the board's styles from t. Themes without a palette
// (mono) keep only text attributes.
func newStyles(t ui.Theme) styles {
	p := t.Palette
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color(p.Border)).
		Padding(0, 1)

	badge := func(bg string) lipgloss.Style {
		st := lipgloss.NewStyle().Padding(0, 1)
		if bg == "" {
			return st.Bold(true)
		}
		return st.Foreground(lipgloss.Color("0")).Background(lipgloss.Color(bg))
	}

	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		success: lipgloss.NewStyle().Foreground(color(p.Success)),
		accent:  lipgloss.NewStyle().Foreground(color(p.Accent)),
		muted:   lipgloss.NewStyle().Faint(true),
		err:     lipgloss.NewStyle().Foreground(color(p.Error)).Bold(true),

		selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		ghost:    lipgloss.NewStyle().Faint(true).Strikethrough(true),
		carry:    lipgloss.NewStyle().Bold(true).Foreground(color(p.Carry)),

		column:        box,
		focusedColumn: box.BorderForeground(color(p.Focus)),
		inputBox:      box,

		priority: map[model.Priority]lipgloss.Style{
			model.Low:    badge(p.Low),
			model.Medium: badge(p.Medium),
			model.High:   badge(p.High),
		},
	}
}

func (s styles) badge(p model.Priority) string {
	st, ok := s.priority[p]
	if !ok {
		return string(p)
	}
	return st.Render(string(p))
}

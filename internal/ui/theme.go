package ui

import (
	"strings"

	"github.com/idilsaglam/kanban/internal/model"
)

// Theme bundles palette + symbols + box borders.
// All UI helpers pull from `current`.
type Theme struct {
	Name                                   string
	Title, Muted, Accent, Success, Error   string
	Low, Medium, High                      string
	Bullet, Arrow                          string
	CornerTL, CornerTR, CornerBL, CornerBR string
	H, V                                   string

	// Palette feeds the interactive board, which styles with lipgloss.
	Palette Palette
}

// Palette holds ANSI 256 color numbers. An empty entry means no color.
type Palette struct {
	Accent, Success, Error string
	Border, Focus, Carry   string
	Low, Medium, High      string
}

var current = themeFor("classic")

// SetTheme switches the palette; unknown names get the classic theme.
func SetTheme(name string) {
	current = themeFor(name)
	disableColor = current.Name == "mono"
}

func themeFor(name string) Theme {
	switch strings.ToLower(name) {
	case "neon":
		return Theme{
			Name:  "neon",
			Title: "\033[95m", // bright magenta
			Muted: fgGray, Accent: "\033[96m",
			Success: fgGreen, Error: fgRed,
			Low: "\033[96m", Medium: "\033[93m", High: "\033[92m",
			Bullet: "◆", Arrow: "➜",
			CornerTL: "╭", CornerTR: "╮", CornerBL: "╰", CornerBR: "╯",
			H: "─", V: "│",
			Palette: Palette{
				Accent: "14", Success: "10", Error: "9",
				Border: "13", Focus: "14", Carry: "11",
				Low: "14", Medium: "11", High: "10",
			},
		}
	case "mono":
		return Theme{
			Name:   "mono",
			Bullet: "-", Arrow: "->",
			CornerTL: "+", CornerTR: "+", CornerBL: "+", CornerBR: "+",
			H: "-", V: "|",
		}
	default: // classic
		return Theme{
			Name:  "classic",
			Title: bold, Muted: fgGray, Accent: fgBlue,
			Success: fgGreen, Error: fgRed,
			Low: fgBlue, Medium: fgYellow, High: fgMagenta,
			Bullet: "•", Arrow: "→",
			CornerTL: "┌", CornerTR: "┐", CornerBL: "└", CornerBR: "┘",
			H: "─", V: "│",
			Palette: Palette{
				Accent: "12", Success: "42", Error: "9",
				Border: "8", Focus: "12", Carry: "214",
				Low: "12", Medium: "214", High: "42",
			},
		}
	}
}

// Expose what renderers need
func Current() Theme { return current }

// PriorityColor is the palette entry for p.
func (t Theme) PriorityColor(p model.Priority) string {
	switch p {
	case model.Medium:
		return t.Medium
	case model.High:
		return t.High
	}
	return t.Low
}

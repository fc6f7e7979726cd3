package splitview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// CursorMarker is the prefix shown on the cursor row of the focused column.
const CursorMarker = "▸ "

// Chevron trails links drawn in the list style.
const Chevron = "›"

var (
	accent = lipgloss.AdaptiveColor{Light: "4", Dark: "12"}
	dim    = lipgloss.AdaptiveColor{Light: "240", Dark: "240"}

	headerStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "240", Dark: "245"}).Bold(true)
	buttonStyle     = lipgloss.NewStyle().Foreground(accent)
	mutedText       = lipgloss.NewStyle().Foreground(dim)
	barTitleStyle   = lipgloss.NewStyle().Bold(true)
	largeTitleStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	barButtonStyle  = lipgloss.NewStyle().Foreground(accent)
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
)

// LinkStyle draws navigation links in a column, with and without the
// column's selection.
type LinkStyle struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	// Chevron appends a trailing disclosure chevron.
	Chevron bool
}

// SidebarLinkStyle is the default style of the primary column: plain text
// on a subtle fill when selected.
func SidebarLinkStyle() LinkStyle {
	return LinkStyle{
		Normal: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "254", Dark: "237"}).
			Bold(true),
	}
}

// ListLinkStyle is the default style of the other columns: a chevron per
// row and an accent fill when selected.
func ListLinkStyle() LinkStyle {
	return LinkStyle{
		Normal: lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("15")),
		Chevron: true,
	}
}

// Render draws label in width cells.
func (s LinkStyle) Render(label string, selected bool, width int) string {
	style := s.Normal
	if selected {
		style = s.Selected
	}
	if !s.Chevron {
		return style.Render(truncate(label, width))
	}
	text := truncate(label, width-2)
	pad := max(width-2-runewidth.StringWidth(text), 0)
	line := text + spaces(pad) + " " + Chevron
	return style.Render(line)
}

// FocusedBorder returns a lipgloss style with an accent-colored rounded border.
func FocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(accent)
}

// UnfocusedBorder returns a lipgloss style with a dim rounded border.
func UnfocusedBorder() lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(dim)
}

// truncate cuts s to at most width cells, marking the cut with an ellipsis.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

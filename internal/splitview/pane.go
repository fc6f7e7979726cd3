package splitview

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/smileynet/splitnav/internal/nav"
)

// BackLabel is drawn in the bar of a pushed screen.
const BackLabel = "‹ Back"

// symbolGlyphs maps bar symbol names to terminal glyphs.
var symbolGlyphs = map[string]string{
	"plus":            "+",
	"ellipsis.circle": "⋯",
	"trash":           "✕",
	"pencil":          "✎",
}

// pane describes one rendered column.
type pane struct {
	host    *nav.ScreenHost
	column  nav.Column
	width   int // inner width, borders excluded
	height  int // inner height, borders excluded
	focused bool
	cursor  int
	style   LinkStyle
}

// barButtons returns the bar buttons in the order the number keys address
// them: left items first, then right items.
func barButtons(h *nav.ScreenHost) []nav.BarButton {
	bar := h.Bar()
	return append(append([]nav.BarButton(nil), bar.Left...), bar.Right...)
}

// buttonLabel renders a bar button's caption with its glyph.
func buttonLabel(b nav.BarButton) string {
	glyph, ok := symbolGlyphs[b.Symbol]
	switch {
	case ok && b.Title != "":
		return glyph + " " + b.Title
	case ok:
		return glyph
	case b.Title != "":
		return b.Title
	}
	return b.Symbol
}

// showsBack reports whether the host's bar carries a back button.
func showsBack(h *nav.ScreenHost) bool {
	st := h.Parent()
	return st != nil && st.Len() > 1 && st.TopHost() == h && !h.Bar().HidesBackButton()
}

// showsLargeTitle reports whether the host's title is drawn on its own line.
func showsLargeTitle(h *nav.ScreenHost) bool {
	t := h.Bar().Title
	st := h.Parent()
	return t != nil && t.Style == nav.TitleLarge && st != nil && st.PrefersLargeTitles()
}

// headerLines returns the chrome lines above the rows.
func (p pane) headerLines() []string {
	bar := p.host.Bar()

	var left []string
	if showsBack(p.host) {
		left = append(left, barButtonStyle.Render(BackLabel))
	}
	n := 1
	for _, b := range bar.Left {
		left = append(left, barButtonStyle.Render(numbered(n, buttonLabel(b))))
		n++
	}
	var right []string
	for _, b := range bar.Right {
		right = append(right, barButtonStyle.Render(numbered(n, buttonLabel(b))))
		n++
	}

	large := showsLargeTitle(p.host)
	title := ""
	if bar.Title != nil && !large {
		title = bar.Title.Text
	}

	leftText := strings.Join(left, " ")
	rightText := strings.Join(right, " ")
	room := p.width - lipgloss.Width(leftText) - lipgloss.Width(rightText) - 2
	title = barTitleStyle.Render(truncate(title, room))

	line := joinBar(leftText, title, rightText, p.width)
	lines := []string{line}
	if large {
		lines = append(lines, largeTitleStyle.Render(truncate(bar.Title.Text, p.width)))
	}
	lines = append(lines, mutedText.Render(strings.Repeat("─", max(p.width, 0))))
	return lines
}

func numbered(n int, label string) string {
	return "[" + strconv.Itoa(n) + " " + label + "]"
}

// joinBar lays out the left items, a centered title and the right items on
// one line of width cells.
func joinBar(left, title, right string, width int) string {
	used := lipgloss.Width(left) + lipgloss.Width(title) + lipgloss.Width(right)
	gap := width - used
	if gap < 2 {
		return lipgloss.NewStyle().MaxWidth(width).Render(strings.TrimSpace(left + " " + title + " " + right))
	}
	before := gap / 2
	if left == "" && right == "" {
		before = 0
	}
	return left + spaces(before) + title + spaces(gap-before) + right
}

// rowLines renders the host's rows, one line each.
func (p pane) rowLines() []string {
	rows := p.host.Rows()
	lines := make([]string, 0, len(rows))
	inner := max(p.width-runewidth.StringWidth(CursorMarker), 0)
	for i, r := range rows {
		prefix := "  "
		if p.focused && i == p.cursor && r.Selectable() {
			prefix = CursorMarker
		}
		var text string
		switch r.Kind {
		case nav.RowHeader:
			text = headerStyle.Render(truncate(strings.ToUpper(r.Text), inner))
		case nav.RowButton:
			text = buttonStyle.Render(truncate(r.Text, inner))
		case nav.RowLink:
			text = p.style.Render(r.Text, p.host.Highlighted(r.Link), inner)
		default:
			text = truncate(r.Text, inner)
		}
		lines = append(lines, prefix+text)
	}
	return lines
}

// View renders the pane's content without borders.
func (p pane) View() string {
	if p.width <= 0 || p.height <= 0 {
		return ""
	}
	header := p.headerLines()
	body := max(p.height-len(header), 0)

	rows := p.rowLines()
	if len(rows) == 0 {
		rows = []string{mutedText.Render(emptyLabel(p.host))}
	}

	vp := viewport.New(p.width, body)
	vp.SetContent(strings.Join(rows, "\n"))
	if p.cursor >= body {
		vp.SetYOffset(p.cursor - body + 1)
	}
	return lipgloss.JoinVertical(lipgloss.Left, strings.Join(header, "\n"), vp.View())
}

func emptyLabel(h *nav.ScreenHost) string {
	if h.IsPlaceholder() {
		return "No selection"
	}
	return "Empty"
}

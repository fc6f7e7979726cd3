package splitview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/smileynet/splitnav/internal/nav"
)

// menuState is an open overflow menu.
type menuState struct {
	title   string
	actions []nav.MenuAction
	cursor  int
}

func newMenu(b nav.BarButton) *menuState {
	title := b.Title
	if title == "" {
		title = buttonLabel(b)
	}
	return &menuState{title: title, actions: b.Menu}
}

func (s *menuState) up() {
	if s.cursor > 0 {
		s.cursor--
	}
}

func (s *menuState) down() {
	if s.cursor < len(s.actions)-1 {
		s.cursor++
	}
}

// chosen returns the action under the cursor.
func (s *menuState) chosen() (nav.MenuAction, bool) {
	if s.cursor < 0 || s.cursor >= len(s.actions) {
		return nav.MenuAction{}, false
	}
	return s.actions[s.cursor], true
}

// View renders the menu as a bordered box.
func (s *menuState) View() string {
	lines := []string{menuTitleStyle.Render(s.title)}
	for i, a := range s.actions {
		prefix := "  "
		if i == s.cursor {
			prefix = CursorMarker
		}
		lines = append(lines, prefix+a.Title)
	}
	if len(s.actions) == 0 {
		lines = append(lines, mutedText.Render("No actions"))
	}
	return FocusedBorder().Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// place centers box over a background of width x height cells.
func place(box string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

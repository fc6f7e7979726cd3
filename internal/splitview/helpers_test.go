package splitview

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/splitnav/internal/nav"
)

// stripANSI removes ANSI escape sequences from a string.
func stripANSI(s string) string {
	var out []byte
	i := 0
	for i < len(s) {
		if s[i] == '\x1b' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && (s[j] < 'A' || s[j] > 'Z') && (s[j] < 'a' || s[j] > 'z') {
				j++
			}
			if j < len(s) {
				j++
			}
			i = j
		} else {
			out = append(out, s[i])
			i++
		}
	}
	return string(out)
}

// containsPlainText checks if s contains sub after stripping ANSI escapes.
func containsPlainText(s, sub string) bool {
	return strings.Contains(stripANSI(s), sub)
}

// fixture is a small three-level app: a sidebar of colors, a middle list
// per color and detail screens that link to deeper details.
type fixture struct {
	count  int
	resets int
	edit   nav.EditMode
}

func (f *fixture) sidebar(nav.Env) *nav.Node {
	return nav.Group(
		nav.Section("Colors",
			nav.TextLink("Red", f.middle("Red")).Tag(nav.NamedLinkID("Red")),
			nav.TextLink("Green", f.middle("Green")).Tag(nav.NamedLinkID("Green")),
			nav.Button("Inc", func() { f.count++ }),
		),
	).Declare(nav.NewNavigationState(nav.LargeTitle("Sidebar"), nav.OverflowMenu{
		Title: "More",
		Actions: []nav.MenuAction{
			{Title: "Inc", Handler: func() { f.count++ }},
			{Title: "Reset", Handler: func() { f.resets++ }},
		},
	}))
}

func (f *fixture) middle(color string) nav.Content {
	return func(nav.Env) *nav.Node {
		return nav.Group(
			nav.Text("Count "+strconv.Itoa(f.count)),
			nav.TextLink(color+" 1", f.detail(color+" 1")).Tag(nav.NamedLinkID(color+" 1")),
			nav.TextLink(color+" 2", f.detail(color+" 2")).Tag(nav.NamedLinkID(color+" 2")),
		).Declare(nav.NewNavigationState(nav.InlineTitle("Middle "+color), nav.NewEditButton(&f.edit)))
	}
}

func (f *fixture) detail(label string) nav.Content {
	return func(nav.Env) *nav.Node {
		return nav.Group(
			nav.Text("Detail "+label),
			nav.TextLink(label+" child", f.detail(label+" child")),
		).Declare(nav.NewNavigationState(nav.InlineTitle(label)))
	}
}

func newFixtureModel(f *fixture, splitOpts []nav.SplitOption, opts ...Option) Model {
	c := nav.NewCoordinator()
	split := nav.NewSplitContainer(c, f.sidebar, splitOpts...)
	return NewModel(c, split, opts...)
}

// newSizedModel returns a fixture model that received a window size.
func newSizedModel(t *testing.T, w, h int) (Model, *fixture) {
	t.Helper()
	f := &fixture{}
	m := newFixtureModel(f, nil)
	return update(t, m, tea.WindowSizeMsg{Width: w, Height: h}), f
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m = update(t, m, k)
	}
	return m
}

func windowSize(w, h int) tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: w, Height: h}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter    = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc      = tea.KeyMsg{Type: tea.KeyEsc}
	keyTab      = tea.KeyMsg{Type: tea.KeyTab}
	keyShiftTab = tea.KeyMsg{Type: tea.KeyShiftTab}
	keyDown     = tea.KeyMsg{Type: tea.KeyDown}
	keyUp       = tea.KeyMsg{Type: tea.KeyUp}
)

func barTitle(h *nav.ScreenHost) string {
	if h == nil || h.Bar().Title == nil {
		return ""
	}
	return h.Bar().Title.Text
}

// Package splitview renders a nav.SplitContainer as a Bubble Tea program:
// one bordered pane per visible column, a navigation bar per pane, an
// overflow menu and a help line. Key presses are turned into link taps,
// button actions, stack pops and focus changes.
package splitview

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/smileynet/splitnav/internal/nav"
)

// helpBarHeight is the number of lines reserved for the help bar at the bottom.
const helpBarHeight = 1

// borderChrome is the number of cells consumed by the two borders of a pane.
const borderChrome = 2

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for key handling.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithLinkStyle overrides the link style of the primary or supplementary
// column. The secondary column and screens pushed in the compact column use
// the supplementary style.
func WithLinkStyle(column nav.Column, style LinkStyle) Option {
	if column != nav.ColumnPrimary && column != nav.ColumnSupplementary {
		panic(fmt.Errorf("%w: no link style for %s", nav.ErrInvalidMode, column))
	}
	return func(m *Model) {
		m.styles[column] = style
	}
}

// Model is the root Bubble Tea model. The coordinator and split container
// are shared by every copy of the model.
type Model struct {
	coord *nav.Coordinator
	split *nav.SplitContainer

	focus   nav.Column
	cursors map[*nav.ScreenHost]int
	styles  map[nav.Column]LinkStyle
	menu    *menuState

	keys     navKeys
	menuKeys menuKeys
	help     help.Model
	width    int
	height   int

	log *log.Logger
}

// NewModel returns a Model driving split. Focus starts on the primary column.
func NewModel(c *nav.Coordinator, split *nav.SplitContainer, opts ...Option) Model {
	m := Model{
		coord:   c,
		split:   split,
		focus:   nav.ColumnPrimary,
		cursors: make(map[*nav.ScreenHost]int),
		styles: map[nav.Column]LinkStyle{
			nav.ColumnPrimary:       SidebarLinkStyle(),
			nav.ColumnSupplementary: ListLinkStyle(),
		},
		keys:     NavKeyMap(),
		menuKeys: MenuKeyMap(),
		help:     help.New(),
		log:      log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Focus returns the focused column.
func (m Model) Focus() nav.Column { return m.focus }

// Coordinator returns the coordinator the model was built around.
func (m Model) Coordinator() *nav.Coordinator { return m.coord }

// MenuOpen reports whether an overflow menu is open.
func (m Model) MenuOpen() bool { return m.menu != nil }

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.split.Resize(msg.Width, max(msg.Height-helpBarHeight, 0))
		if !m.split.Appeared() {
			m.split.DidAppear()
		}
		m.clampFocus()
		return m, nil

	case tea.KeyMsg:
		if m.menu != nil {
			return m.handleMenuKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey processes key messages while browsing.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.cycleFocus(-1)
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Enter):
		m.activate()
	case key.Matches(msg, m.keys.Back):
		m.back()
	case key.Matches(msg, m.keys.Bar):
		n, err := strconv.Atoi(msg.String())
		if err == nil {
			m.pressBarButton(n - 1)
		}
	}
	return m, nil
}

// handleMenuKey processes key messages while an overflow menu is open.
func (m Model) handleMenuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	case key.Matches(msg, m.menuKeys.Up):
		m.menu.up()
	case key.Matches(msg, m.menuKeys.Down):
		m.menu.down()
	case key.Matches(msg, m.menuKeys.Choose):
		a, ok := m.menu.chosen()
		m.menu = nil
		if ok && a.Handler != nil {
			m.log.Debug("menu action", "title", a.Title)
			a.Handler()
			m.afterAction()
		}
	case key.Matches(msg, m.menuKeys.Close):
		m.menu = nil
	}
	return m, nil
}

// focusable returns the columns focus can move between.
func (m Model) focusable() []nav.Column {
	var cols []nav.Column
	for _, c := range m.split.VisibleColumns() {
		if m.split.Frame(c).Width > 0 || !m.split.Appeared() {
			cols = append(cols, c)
		}
	}
	return cols
}

func (m *Model) clampFocus() {
	cols := m.focusable()
	if len(cols) == 0 {
		return
	}
	for _, c := range cols {
		if c == m.focus {
			return
		}
	}
	if m.split.IsCollapsed() {
		m.focus = nav.ColumnCompact
		return
	}
	if m.focus == nav.ColumnCompact {
		m.focus = nav.ColumnPrimary
		return
	}
	m.focus = cols[len(cols)-1]
}

func (m *Model) cycleFocus(delta int) {
	cols := m.focusable()
	if len(cols) == 0 {
		return
	}
	i := 0
	for j, c := range cols {
		if c == m.focus {
			i = j
		}
	}
	m.focus = cols[(i+delta+len(cols))%len(cols)]
}

// covered reports whether the shown overlay hides column.
func (m Model) covered(column nav.Column) bool {
	_, rect, ok := m.split.Overlay()
	if !ok {
		return false
	}
	f := m.split.Frame(column)
	return f.Width > 0 && f.X >= rect.X && f.X < rect.X+rect.Width
}

// FocusedHost returns the host receiving key presses: the overlay when it
// hides the focused column, the column's top host otherwise.
func (m Model) FocusedHost() *nav.ScreenHost {
	if m.covered(m.focus) {
		h, _, _ := m.split.Overlay()
		return h
	}
	return m.split.TopHost(m.focus)
}

// cursorOf returns the cursor row of h, clamped to its rows.
func (m Model) cursorOf(h *nav.ScreenHost) int {
	rows := h.Rows()
	c, ok := m.cursors[h]
	if !ok || c >= len(rows) || (c >= 0 && !rows[c].Selectable()) {
		c = firstSelectable(rows)
	}
	return c
}

func firstSelectable(rows []nav.Row) int {
	for i, r := range rows {
		if r.Selectable() {
			return i
		}
	}
	return 0
}

func (m *Model) moveCursor(delta int) {
	h := m.FocusedHost()
	if h == nil {
		return
	}
	rows := h.Rows()
	for i := m.cursorOf(h) + delta; i >= 0 && i < len(rows); i += delta {
		if rows[i].Selectable() {
			m.cursors[h] = i
			return
		}
	}
}

// selectedRow returns the row under the cursor of the focused host.
func (m Model) selectedRow() (nav.Row, bool) {
	h := m.FocusedHost()
	if h == nil {
		return nav.Row{}, false
	}
	rows := h.Rows()
	c := m.cursorOf(h)
	if c >= len(rows) || !rows[c].Selectable() {
		return nav.Row{}, false
	}
	return rows[c], true
}

// activate taps the link or runs the button under the cursor.
func (m *Model) activate() {
	r, ok := m.selectedRow()
	if !ok {
		return
	}
	switch r.Kind {
	case nav.RowLink:
		mode := r.Link.LayoutState().Mode
		m.log.Debug("tap", "label", r.Link.Label(), "mode", mode)
		r.Link.Tap()
		m.afterAction()
		switch mode {
		case nav.Set(nav.ColumnSupplementary):
			m.focus = nav.ColumnSupplementary
		case nav.Set(nav.ColumnSecondary):
			m.focus = nav.ColumnSecondary
		}
		m.clampFocus()
	case nav.RowButton:
		if r.Action != nil {
			m.log.Debug("button", "label", r.Text)
			r.Action()
			m.afterAction()
		}
	}
}

// back pops the focused stack, or moves focus one column left when there
// is nothing to pop.
func (m *Model) back() {
	h := m.FocusedHost()
	if h != nil && showsBack(h) {
		if _, ok := h.Parent().Pop(); ok {
			m.log.Debug("popped", "column", m.focus)
			m.afterAction()
			return
		}
	}
	if m.split.IsCollapsed() || m.focus == nav.ColumnPrimary {
		return
	}
	m.cycleFocus(-1)
}

// pressBarButton runs the i-th bar button of the focused host.
func (m *Model) pressBarButton(i int) {
	h := m.FocusedHost()
	if h == nil {
		return
	}
	buttons := barButtons(h)
	if i < 0 || i >= len(buttons) {
		return
	}
	b := buttons[i]
	if b.Kind == nav.ItemMenu {
		m.menu = newMenu(b)
		return
	}
	if b.Action == nil {
		return
	}
	m.log.Debug("bar button", "kind", b.Kind, "title", b.Title)
	b.Action()
	m.afterAction()
}

// afterAction brings the chrome up to date with state changed by an action
// and forgets cursors of hosts that left the screen.
func (m *Model) afterAction() {
	m.split.Refresh()
	m.split.LayoutPass()
	m.clampFocus()

	live := make(map[*nav.ScreenHost]bool)
	for _, c := range []nav.Column{nav.ColumnPrimary, nav.ColumnSupplementary, nav.ColumnSecondary, nav.ColumnCompact} {
		if st, ok := m.split.Stack(c); ok {
			for _, h := range st.Hosts() {
				live[h] = true
			}
		} else if h := m.split.TopHost(c); h != nil {
			live[h] = true
		}
	}
	if h, _, ok := m.split.Overlay(); ok {
		live[h] = true
	}
	for h := range m.cursors {
		if !live[h] {
			delete(m.cursors, h)
		}
	}
}

// linkStyle picks the link style for a host shown in column.
func (m Model) linkStyle(column nav.Column, h *nav.ScreenHost) LinkStyle {
	switch column {
	case nav.ColumnPrimary:
		return m.styles[nav.ColumnPrimary]
	case nav.ColumnCompact:
		if st, ok := m.split.Stack(column); ok && st.Root() == h {
			return m.styles[nav.ColumnPrimary]
		}
	}
	return m.styles[nav.ColumnSupplementary]
}

// View renders the visible columns with help bar.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 || !m.split.Appeared() {
		return "Initializing..."
	}
	contentHeight := max(m.height-helpBarHeight, 0)

	var panes []string
	if m.menu != nil {
		panes = append(panes, place(m.menu.View(), m.width, contentHeight))
	} else {
		overlay, rect, _ := m.split.Overlay()
		overlayDrawn := false
		for _, c := range m.split.VisibleColumns() {
			frame := m.split.Frame(c)
			if frame.Width <= 0 {
				continue
			}
			h := m.split.TopHost(c)
			focused := c == m.focus
			if m.covered(c) {
				if overlayDrawn {
					continue
				}
				overlayDrawn = true
				h, frame = overlay, rect
				focused = m.covered(m.focus)
			}
			panes = append(panes, m.renderPane(c, h, frame, focused))
		}
	}

	view := lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	helpView := m.help.View(HelpBindings(m.menu != nil))
	return lipgloss.JoinVertical(lipgloss.Left, view, helpView)
}

func (m Model) renderPane(column nav.Column, h *nav.ScreenHost, frame nav.Rect, focused bool) string {
	style := UnfocusedBorder()
	if focused {
		style = FocusedBorder()
	}
	innerWidth := max(frame.Width-borderChrome, 0)
	innerHeight := max(frame.Height-borderChrome, 0)
	if h == nil {
		return style.Width(innerWidth).Height(innerHeight).Render("")
	}
	p := pane{
		host:    h,
		column:  column,
		width:   innerWidth,
		height:  innerHeight,
		focused: focused,
		cursor:  m.cursorOf(h),
		style:   m.linkStyle(column, h),
	}
	return style.Width(innerWidth).Height(innerHeight).Render(p.View())
}

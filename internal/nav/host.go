package nav

import (
	"github.com/charmbracelet/log"
)

// BarButton is a placed navigation bar button.
type BarButton struct {
	Kind   ItemKind
	Title  string
	Symbol string
	Action func()
	Menu   []MenuAction
}

// Bar is the navigation bar chrome derived from a NavigationState.
type Bar struct {
	Title *Title
	Left  []BarButton
	Right []BarButton
	// LeftItemsSupplementBackButton keeps the back button next to Left.
	// When false, Left replaces it.
	LeftItemsSupplementBackButton bool
}

// HidesBackButton reports whether the left items replace the back button.
func (b Bar) HidesBackButton() bool {
	return !b.LeftItemsSupplementBackButton && len(b.Left) > 0
}

// Screen is the content of a column slot: a bare host or a Stack.
type Screen interface {
	// TopHost returns the visible host of the screen.
	TopHost() *ScreenHost
	release()
}

var (
	_ Screen = (*ScreenHost)(nil)
	_ Screen = (*Stack)(nil)
)

// ScreenHost bridges one screen's content to the chrome. It watches the
// navigation state declared by its content and rebuilds its Bar at the next
// appearance or layout pass after a change.
type ScreenHost struct {
	content     Content
	state       LayoutState
	coordinator CoordinatorRef
	sizeClass   SizeClass
	placeholder bool

	tree    Tree
	current *NavigationState
	dirty   bool
	bar     Bar

	parent     *Stack
	visible    bool
	subscribed bool
	cancels    []func()
	highlight  Selection

	log *log.Logger
}

// NewScreenHost mounts content under state. c receives Pop callbacks when
// the host leaves its stack through a backward navigation; it may be nil.
func NewScreenHost(content Content, state LayoutState, c *Coordinator) *ScreenHost {
	h := &ScreenHost{
		content:     content,
		state:       state,
		coordinator: c.Ref(),
		dirty:       true,
		bar:         Bar{LeftItemsSupplementBackButton: true},
		log:         discardLogger,
	}
	if c != nil {
		h.log = c.log
	}
	h.Refresh()
	return h
}

// NewPlaceholder returns a host showing static content with no coordinator.
func NewPlaceholder(content Content) *ScreenHost {
	h := NewScreenHost(content, LayoutState{}, nil)
	h.placeholder = true
	return h
}

// TopHost implements Screen.
func (h *ScreenHost) TopHost() *ScreenHost { return h }

// State returns the layout state the content is mounted under.
func (h *ScreenHost) State() LayoutState { return h.state }

// IsPlaceholder reports whether the host was built by NewPlaceholder.
func (h *ScreenHost) IsPlaceholder() bool { return h.placeholder }

// Rows returns the mounted rows.
func (h *ScreenHost) Rows() []Row { return h.tree.Rows }

// Links returns the mounted links in row order.
func (h *ScreenHost) Links() []*Link { return h.tree.Links }

// Declared returns the reduced navigation state last observed.
func (h *ScreenHost) Declared() *NavigationState { return h.current }

// Bar returns the navigation bar as of the last reload.
func (h *ScreenHost) Bar() Bar { return h.bar }

// Dirty reports whether a declared state change is waiting to be applied.
func (h *ScreenHost) Dirty() bool { return h.dirty }

// Visible reports whether the host is currently on screen.
func (h *ScreenHost) Visible() bool { return h.visible }

// Parent returns the stack holding the host, or nil.
func (h *ScreenHost) Parent() *Stack { return h.parent }

// Refresh rebuilds the content tree and picks up the declared navigation
// state. A changed declaration marks the host dirty; the bar itself is only
// rebuilt at the next Appear or Layout.
func (h *ScreenHost) Refresh() {
	h.tree = Mount(h.content, Env{Layout: h.state, SizeClass: h.sizeClass})
	if StatesEqual(h.current, h.tree.Declared) {
		return
	}
	h.current = h.tree.Declared
	h.dirty = true
}

// SetSizeClass remounts the content when the size class changes.
func (h *ScreenHost) SetSizeClass(sc SizeClass) {
	if h.sizeClass == sc {
		return
	}
	h.sizeClass = sc
	h.Refresh()
}

// Appear marks the host visible, subscribes its links to the selection of
// its column, and applies a pending navigation state.
func (h *ScreenHost) Appear() {
	h.visible = true
	h.subscribe()
	h.reloadIfDirty()
}

// Layout applies a pending navigation state during a layout pass.
func (h *ScreenHost) Layout() {
	if h.visible {
		h.reloadIfDirty()
	}
}

func (h *ScreenHost) disappear() {
	h.visible = false
}

// Highlighted reports whether l is the selected link of its column, as last
// delivered to this host's selection subscription.
func (h *ScreenHost) Highlighted(l *Link) bool {
	return l != nil && h.highlight.Matches(l.id)
}

func (h *ScreenHost) subscribe() {
	if h.subscribed {
		return
	}
	c, ok := h.coordinator.Get()
	if !ok {
		return
	}
	stream := c.selectionStream(h.state.CurrentColumn())
	h.subscribed = true
	if stream == nil {
		return
	}
	h.cancels = append(h.cancels, stream.Subscribe(func(sel Selection) {
		h.highlight = sel
	}))
}

func (h *ScreenHost) reloadIfDirty() {
	if !h.dirty {
		return
	}
	h.dirty = false

	if h.current == nil {
		h.bar = Bar{LeftItemsSupplementBackButton: true}
		return
	}

	bar := Bar{Title: h.current.Title, LeftItemsSupplementBackButton: true}
	for _, item := range h.current.Items {
		placeItem(item, &bar)
	}
	h.bar = bar
	h.log.Debug("navigation bar reloaded", "title", titleText(bar.Title), "left", len(bar.Left), "right", len(bar.Right))
}

// placeItem applies the bar placement policy for one declared item.
func placeItem(item Item, bar *Bar) {
	switch it := item.(type) {
	case ReplacingBackButton:
		if it.Editing {
			bar.Left = append([]BarButton{barButton(it)}, bar.Left...)
			bar.LeftItemsSupplementBackButton = false
		}
	case AddButton, EditButton, OverflowMenu:
		bar.Right = append(bar.Right, barButton(it))
	case TextButton:
		bar.Right = append([]BarButton{barButton(it)}, bar.Right...)
	}
}

func barButton(item Item) BarButton {
	switch it := item.(type) {
	case ReplacingBackButton:
		return BarButton{Kind: ItemReplacingBack, Title: it.Title.Text, Symbol: it.Title.Symbol, Action: it.Action}
	case OverflowMenu:
		return BarButton{Kind: ItemMenu, Title: it.Title, Symbol: "ellipsis.circle", Menu: it.Actions}
	case TextButton:
		return BarButton{Kind: ItemText, Title: it.Title, Action: it.Action}
	case EditButton:
		mode := it.Mode
		if it.Initial {
			return BarButton{Kind: ItemEdit, Title: "Done", Action: func() { mode.SetActive(false) }}
		}
		return BarButton{Kind: ItemEdit, Title: "Edit", Action: func() { mode.SetActive(true) }}
	case AddButton:
		return BarButton{Kind: ItemAdd, Title: "Add", Symbol: "plus", Action: it.Action}
	}
	return BarButton{}
}

func (h *ScreenHost) release() { h.detach(false) }

// detach removes the host from its parent. A backward detach reports the pop
// to the coordinator; every detach drops the coordinator handle, the mounted
// links and the selection subscriptions.
func (h *ScreenHost) detach(backward bool) {
	if backward {
		if c, ok := h.coordinator.Get(); ok {
			c.Pop()
		}
	}
	h.coordinator = CoordinatorRef{}
	h.state.coordinator = CoordinatorRef{}
	h.tree = Tree{}
	for _, cancel := range h.cancels {
		cancel()
	}
	h.cancels = nil
	h.parent = nil
	h.visible = false
}

func titleText(t *Title) string {
	if t == nil {
		return ""
	}
	return t.Text
}

package nav

// CoordinatorRef is a non-owning handle to a Coordinator. It never keeps a
// closed coordinator usable: Get fails once Close has been called.
type CoordinatorRef struct {
	c *Coordinator
}

// Get returns the coordinator if the handle is set and the coordinator has
// not been closed.
func (r CoordinatorRef) Get() (*Coordinator, bool) {
	if r.c == nil || r.c.closed {
		return nil, false
	}
	return r.c, true
}

// LayoutState is the ambient per-subtree context a link consults to learn
// which column it targets, whether the layout is compact, and which
// coordinator to call back into.
type LayoutState struct {
	coordinator CoordinatorRef
	Selected    Selection
	Mode        Mode
}

// NewLayoutState returns a LayoutState bound to c (which may be nil).
func NewLayoutState(c *Coordinator, mode Mode) LayoutState {
	return LayoutState{coordinator: c.Ref(), Mode: mode}
}

// Coordinator returns the bound coordinator, if it is still alive.
func (s LayoutState) Coordinator() (*Coordinator, bool) {
	return s.coordinator.Get()
}

// IsCompact reports whether the state describes the collapsed layout.
func (s LayoutState) IsCompact() bool {
	return s.Mode == Push(ColumnCompact)
}

// TargetColumn returns the column named by the mode.
func (s LayoutState) TargetColumn() Column {
	return s.Mode.Column
}

// CurrentColumn returns the column the content carrying this state lives
// in. It panics with ErrInvalidMode for mode combinations that cannot occur
// in a correctly built tree.
func (s LayoutState) CurrentColumn() Column {
	if s.IsCompact() {
		return ColumnCompact
	}
	switch s.Mode {
	case Set(ColumnSupplementary):
		return ColumnPrimary
	case Set(ColumnSecondary):
		return ColumnSupplementary
	case Push(ColumnSecondary):
		return ColumnSecondary
	}
	invalidMode("can't determine current column from %s", s.Mode)
	return 0
}

// ChildState returns the state handed to the destination of a link
// activated under s. Compact layouts do not fan out across columns.
func (s LayoutState) ChildState() LayoutState {
	if s.IsCompact() {
		return s
	}
	var mode Mode
	switch s.TargetColumn() {
	case ColumnPrimary:
		mode = Set(ColumnSupplementary)
	case ColumnSupplementary:
		mode = Set(ColumnSecondary)
	case ColumnCompact:
		mode = Push(ColumnCompact)
	default:
		mode = Push(ColumnSecondary)
	}
	return LayoutState{coordinator: s.coordinator, Mode: mode}
}

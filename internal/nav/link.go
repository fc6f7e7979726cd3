package nav

// NavLayer is a link currently occupying a slot in a column's stack.
type NavLayer interface {
	LayoutState() LayoutState
	Destination() Content
}

// Link is a mounted navigation link. It has no state of its own beyond what
// it read from the environment it was mounted under.
type Link struct {
	id          LinkID
	state       LayoutState
	destination Content
	label       string
}

// NewLink returns a Link as it would be mounted under env.
func NewLink(env Env, label string, destination Content) *Link {
	return &Link{id: env.LinkID, state: env.Layout, destination: destination, label: label}
}

// ID returns the identity the link was tagged with.
func (l *Link) ID() LinkID { return l.id }

// Label returns the flattened label text.
func (l *Link) Label() string { return l.label }

// LayoutState implements NavLayer.
func (l *Link) LayoutState() LayoutState { return l.state }

// Destination implements NavLayer.
func (l *Link) Destination() Content { return l.destination }

// Selected reports whether the coordinator's selection for the link's
// column currently names this link. Links outside the primary and
// supplementary columns are never selected.
func (l *Link) Selected() bool {
	c, ok := l.state.Coordinator()
	if !ok {
		return false
	}
	stream := c.selectionStream(l.state.CurrentColumn())
	if stream == nil {
		return false
	}
	return stream.Value().Matches(l.id)
}

// Tap turns a user activation into a coordinator transition: it records
// the selection for the current column, derives the child state and
// activates the destination.
func (l *Link) Tap() {
	c, ok := l.state.Coordinator()
	if !ok {
		return
	}
	c.log.Debug("link tapped", "id", l.id, "label", l.label, "mode", l.state.Mode)
	c.MarkSelected(l.id, l.state.CurrentColumn())
	c.Activate(l, l.state, l.state.ChildState())
}

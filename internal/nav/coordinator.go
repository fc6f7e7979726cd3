// Package nav implements the navigation core of a three-column
// master/detail layout: link identities and modes, the ambient layout state
// handed down content trees, navigation bar declarations, screen hosts,
// navigation stacks, the split container and the coordinator that ties them
// together. Everything here runs on the UI update loop and is not safe for
// concurrent use.
package nav

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

var discardLogger = log.New(io.Discard)

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger used by the coordinator and the hosts it
// creates.
func WithLogger(l *log.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.log = l
		}
	}
}

// Coordinator is the navigation state machine of one navigation root. It
// tracks the selection of the primary and supplementary columns and the
// logical stack of active links, and mutates the split container's column
// stacks when links are activated.
type Coordinator struct {
	primary       *Subject[Selection]
	supplementary *Subject[Selection]
	layers        []NavLayer
	container     *SplitContainer
	closed        bool
	log           *log.Logger
}

// NewCoordinator returns a Coordinator with empty selections and no layers.
func NewCoordinator(opts ...Option) *Coordinator {
	c := &Coordinator{
		primary:       NewSubject(Selection{}),
		supplementary: NewSubject(Selection{}),
		log:           discardLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ref returns a non-owning handle to c. Calling Ref on a nil coordinator
// yields an empty handle.
func (c *Coordinator) Ref() CoordinatorRef {
	return CoordinatorRef{c: c}
}

// Attach links the coordinator and the split container it drives. Neither
// side owns the other.
func (c *Coordinator) Attach(s *SplitContainer) {
	c.container = s
	s.coordinator = c.Ref()
}

// Detach drops the link to the split container. Activations are ignored
// until a container is attached again.
func (c *Coordinator) Detach() {
	if c.container != nil {
		c.container.coordinator = CoordinatorRef{}
	}
	c.container = nil
}

// Close tears the coordinator down with its navigation root. Every
// CoordinatorRef handed out stops resolving.
func (c *Coordinator) Close() {
	c.Detach()
	c.closed = true
}

// Container returns the attached split container.
func (c *Coordinator) Container() (*SplitContainer, bool) {
	return c.container, c.container != nil
}

// PrimarySelection streams the selected link of the primary column.
func (c *Coordinator) PrimarySelection() Stream[Selection] { return c.primary }

// SupplementarySelection streams the selected link of the supplementary column.
func (c *Coordinator) SupplementarySelection() Stream[Selection] { return c.supplementary }

func (c *Coordinator) selectionStream(column Column) Stream[Selection] {
	switch column {
	case ColumnPrimary:
		return c.primary
	case ColumnSupplementary:
		return c.supplementary
	default:
		return nil
	}
}

// Layers returns a copy of the logical stack of active links.
func (c *Coordinator) Layers() []NavLayer {
	return append([]NavLayer(nil), c.layers...)
}

// MarkSelected records id as the selection of column. Selecting in the
// primary column always clears the supplementary selection, so that the
// supplementary column never shows a selection whose secondary content was
// reset. Other columns are ignored.
func (c *Coordinator) MarkSelected(id LinkID, column Column) {
	switch column {
	case ColumnPrimary:
		c.primary.Publish(Selected(id))
		c.supplementary.Publish(Selection{})
	case ColumnSupplementary:
		c.supplementary.Publish(Selected(id))
	default:
		return
	}
	c.log.Debug("selection changed", "column", column, "id", id)
}

// Activate shows source's destination. The destination is hosted under to;
// from is the state the link was mounted under and its mode says where the
// destination goes:
//
//   - set(supplementary) replaces the supplementary column, resets the
//     secondary column to an empty placeholder and restarts the layers at
//     [source].
//   - set(secondary) replaces the secondary column with a fresh stack and
//     sets the layers to [layers[0], source].
//   - push(column) pushes onto the stack at column and appends source.
//
// Without an attached split container the call is dropped.
func (c *Coordinator) Activate(source NavLayer, from, to LayoutState) {
	s := c.container
	if s == nil {
		c.log.Debug("activation dropped: no split container")
		return
	}

	host := NewScreenHost(source.Destination(), to, c)
	host.SetSizeClass(s.sizeClass)

	placement := from.Mode
	var target Screen = host
	if placement == Set(ColumnSecondary) {
		target = NewStack(host)
	}

	switch placement.Kind {
	case ModeSet:
		switch placement.Column {
		case ColumnSupplementary:
			c.layers = []NavLayer{source}
		case ColumnSecondary:
			if len(c.layers) == 0 {
				panic(fmt.Errorf("%w: can't set secondary column without a supplementary selection", ErrNoPrimaryLayer))
			}
			c.layers = []NavLayer{c.layers[0], source}
		default:
			invalidMode("unexpected %s", placement)
		}
		if placement.Column == ColumnSupplementary {
			s.setScreen(ColumnSecondary, NewStack(NewPlaceholder(emptyContent)))
		}
		s.setScreen(placement.Column, target)

	case ModePush:
		c.layers = append(c.layers, source)
		stack, ok := s.Screen(placement.Column).(*Stack)
		if !ok {
			panic(fmt.Errorf("%w: %s holds %T", ErrNotStack, placement.Column, s.Screen(placement.Column)))
		}
		stack.Push(host)
	}

	c.log.Debug("activated", "mode", placement, "layers", len(c.layers))
}

// Pop drops the last layer. It reacts to a backward navigation the chrome
// already performed and does not touch any column. Popping an empty stack
// is a no-op.
func (c *Coordinator) Pop() {
	if len(c.layers) == 0 {
		return
	}
	c.layers = c.layers[:len(c.layers)-1]
	c.log.Debug("popped", "layers", len(c.layers))
}

package nav

import (
	"errors"
	"fmt"
	"testing"
)

// expectPanic runs fn and fails unless it panics with an error wrapping target.
func expectPanic(t *testing.T, target error, fn func()) {
	t.Helper()
	defer func() {
		t.Helper()
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v, got none", target)
		}
		err, ok := r.(error)
		if !ok {
			t.Fatalf("panic value = %v (%T), want error", r, r)
		}
		if !errors.Is(err, target) {
			t.Fatalf("panic error = %v, want it to wrap %v", err, target)
		}
	}()
	fn()
}

// testLayer is a NavLayer with a fixed name, used to observe layer order.
type testLayer struct {
	name  string
	state LayoutState
}

func (l *testLayer) LayoutState() LayoutState { return l.state }

func (l *testLayer) Destination() Content {
	return func(Env) *Node { return Text("destination " + l.name) }
}

func layerNames(layers []NavLayer) []string {
	names := make([]string, 0, len(layers))
	for _, l := range layers {
		switch v := l.(type) {
		case *testLayer:
			names = append(names, v.name)
		case *Link:
			names = append(names, v.Label())
		default:
			names = append(names, fmt.Sprintf("%T", l))
		}
	}
	return names
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// listContent is a screen with a title and one text link per label. Each
// link is tagged with its label and leads to childFn(label).
func listContent(title string, labels []string, childFn func(label string) Content) Content {
	return func(Env) *Node {
		children := make([]*Node, 0, len(labels))
		for _, label := range labels {
			children = append(children, TextLink(label, childFn(label)).Tag(NamedLinkID(label)))
		}
		return Group(children...).Declare(NewNavigationState(InlineTitle(title)))
	}
}

func leafContent(text string) Content {
	return func(Env) *Node {
		return Text(text).Declare(NewNavigationState(InlineTitle(text)))
	}
}

// newTestSplit builds a coordinator and split container around a
// three-level sidebar: colors -> shades -> detail.
func newTestSplit(t *testing.T, opts ...SplitOption) (*Coordinator, *SplitContainer) {
	t.Helper()
	shade := func(color string) Content {
		return listContent(color, []string{color + " 1", color + " 2"}, func(label string) Content {
			return listContent("detail "+label, []string{"deeper " + label}, func(l string) Content {
				return leafContent(l)
			})
		})
	}
	sidebar := listContent("Colors", []string{"Red", "Green", "Blue"}, shade)
	c := NewCoordinator()
	s := NewSplitContainer(c, sidebar, opts...)
	s.Resize(160, 40)
	s.DidAppear()
	return c, s
}

// tapLabel taps the link labeled label on the top host of column.
func tapLabel(t *testing.T, s *SplitContainer, column Column, label string) {
	t.Helper()
	h := s.TopHost(column)
	for _, l := range h.Links() {
		if l.Label() == label {
			l.Tap()
			s.LayoutPass()
			return
		}
	}
	t.Fatalf("no link %q in %s column", label, column)
}

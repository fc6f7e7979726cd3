package nav

import (
	"fmt"

	"github.com/charmbracelet/log"
)

// DefaultCompactWidth is the window width below which the split container
// collapses to a single column.
const DefaultCompactWidth = 100

// Minimum widths of the primary and supplementary columns.
const (
	MinPrimaryWidth       = 22
	MinSupplementaryWidth = 26
)

// OverlaySpan selects which columns the placeholder overlay covers while
// they have nothing selected.
type OverlaySpan int

const (
	OverlayNone                      OverlaySpan = iota
	OverlaySupplementaryAndSecondary             // While the primary column has no selection.
	OverlaySecondary                             // While the supplementary column has no selection.
)

func (o OverlaySpan) String() string {
	switch o {
	case OverlaySupplementaryAndSecondary:
		return "supplementary_secondary"
	case OverlaySecondary:
		return "secondary"
	default:
		return "none"
	}
}

// ParseOverlaySpan maps a configuration name back to an OverlaySpan.
// The empty string means none.
func ParseOverlaySpan(name string) (OverlaySpan, error) {
	switch name {
	case "", "none":
		return OverlayNone, nil
	case "supplementary_secondary":
		return OverlaySupplementaryAndSecondary, nil
	case "secondary":
		return OverlaySecondary, nil
	}
	return OverlayNone, fmt.Errorf("unknown overlay span %q", name)
}

// Rect is a cell-addressed rectangle.
type Rect struct {
	X, Y, Width, Height int
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Union returns the smallest Rect covering r and o. Empty operands are
// ignored.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.Width, o.X+o.Width), max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// SplitOption configures a SplitContainer.
type SplitOption func(*SplitContainer)

// WithCompactWidth sets the collapse breakpoint.
func WithCompactWidth(width int) SplitOption {
	return func(s *SplitContainer) {
		if width > 0 {
			s.compactWidth = width
		}
	}
}

// WithLargeTitles toggles large titles on the primary and compact stacks.
func WithLargeTitles(enabled bool) SplitOption {
	return func(s *SplitContainer) { s.largeTitles = enabled }
}

// WithOverlay installs placeholder content shown over span while the
// columns it covers have nothing selected.
func WithOverlay(span OverlaySpan, content Content) SplitOption {
	return func(s *SplitContainer) {
		s.overlaySpan = span
		if span != OverlayNone && content != nil {
			s.overlay = NewPlaceholder(content)
		}
	}
}

// SplitContainer owns the three persistent columns and the compact column,
// switches between the expanded and collapsed presentation, and positions
// the optional placeholder overlay.
type SplitContainer struct {
	coordinator CoordinatorRef
	slots       map[Column]Screen
	frames      map[Column]Rect

	sizeClass    SizeClass
	compactWidth int
	largeTitles  bool
	width        int
	height       int
	appeared     bool

	overlaySpan  OverlaySpan
	overlay      *ScreenHost
	overlayFrame Rect

	log *log.Logger
}

func emptyContent(Env) *Node { return nil }

// NewSplitContainer builds the columns around sidebar and attaches the
// container to c. The sidebar is mounted twice: once in the primary column
// and once as the root of the compact stack.
func NewSplitContainer(c *Coordinator, sidebar Content, opts ...SplitOption) *SplitContainer {
	s := &SplitContainer{
		slots:        make(map[Column]Screen, 4),
		frames:       make(map[Column]Rect, 4),
		compactWidth: DefaultCompactWidth,
		largeTitles:  true,
		log:          c.log,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.slots[ColumnSupplementary] = NewPlaceholder(emptyContent)
	s.slots[ColumnSecondary] = NewPlaceholder(emptyContent)

	primary := NewStack(NewScreenHost(sidebar, NewLayoutState(c, Set(ColumnSupplementary)), c))
	primary.SetPrefersLargeTitles(s.largeTitles)
	s.slots[ColumnPrimary] = primary

	compact := NewStack(NewScreenHost(sidebar, NewLayoutState(c, Push(ColumnCompact)), c))
	compact.SetPrefersLargeTitles(s.largeTitles)
	s.slots[ColumnCompact] = compact

	c.Attach(s)
	return s
}

// Screen returns the content of column.
func (s *SplitContainer) Screen(column Column) Screen {
	return s.slots[column]
}

// Stack returns the stack at column, if the column holds one.
func (s *SplitContainer) Stack(column Column) (*Stack, bool) {
	st, ok := s.slots[column].(*Stack)
	return st, ok
}

// TopHost returns the visible host of column.
func (s *SplitContainer) TopHost(column Column) *ScreenHost {
	if screen := s.slots[column]; screen != nil {
		return screen.TopHost()
	}
	return nil
}

// setScreen replaces a column's content. The replaced hosts are released
// without a backward navigation.
func (s *SplitContainer) setScreen(column Column, screen Screen) {
	if old := s.slots[column]; old != nil && old != screen {
		old.release()
	}
	s.slots[column] = screen
	s.log.Debug("column replaced", "column", column)
}

// SizeClass returns the current horizontal size class.
func (s *SplitContainer) SizeClass() SizeClass { return s.sizeClass }

// IsCollapsed reports whether only the compact column is shown.
func (s *SplitContainer) IsCollapsed() bool { return s.sizeClass == SizeCompact }

// VisibleColumns returns the columns on screen, left to right.
func (s *SplitContainer) VisibleColumns() []Column {
	if s.IsCollapsed() {
		return []Column{ColumnCompact}
	}
	return append([]Column(nil), expandedColumns...)
}

// Frame returns the last computed frame of column. Frames are zero until
// the container has appeared.
func (s *SplitContainer) Frame(column Column) Rect {
	return s.frames[column]
}

// Overlay returns the overlay host and its frame when the overlay is shown.
func (s *SplitContainer) Overlay() (*ScreenHost, Rect, bool) {
	if s.overlay == nil || s.overlayFrame.Empty() {
		return nil, Rect{}, false
	}
	return s.overlay, s.overlayFrame, true
}

// Resize records the window size, reclassifies the horizontal size and runs
// a layout pass.
func (s *SplitContainer) Resize(width, height int) {
	s.width, s.height = width, height

	sc := SizeRegular
	if width < s.compactWidth {
		sc = SizeCompact
	}
	if sc != s.sizeClass {
		s.sizeClass = sc
		s.log.Debug("size class changed", "size_class", sc, "width", width)
		for column, screen := range s.slots {
			s.applySizeClass(screen)
			if !s.isVisible(column) {
				screen.TopHost().disappear()
			}
		}
	}
	s.LayoutPass()
}

func (s *SplitContainer) applySizeClass(screen Screen) {
	if st, ok := screen.(*Stack); ok {
		for _, h := range st.hosts {
			h.SetSizeClass(s.sizeClass)
		}
		return
	}
	screen.TopHost().SetSizeClass(s.sizeClass)
}

func (s *SplitContainer) isVisible(column Column) bool {
	for _, c := range s.VisibleColumns() {
		if c == column {
			return true
		}
	}
	return false
}

// DidAppear marks the container as fully on screen. Column frames become
// meaningful from here on, so the overlay is positioned again.
func (s *SplitContainer) DidAppear() {
	s.appeared = true
	s.LayoutPass()
}

// Appeared reports whether DidAppear has been called.
func (s *SplitContainer) Appeared() bool { return s.appeared }

// LayoutPass recomputes frames, makes newly visible hosts appear, applies
// pending navigation states and repositions the overlay.
func (s *SplitContainer) LayoutPass() {
	s.computeFrames()
	for _, column := range s.VisibleColumns() {
		h := s.TopHost(column)
		if h == nil {
			continue
		}
		if !h.Visible() {
			h.SetSizeClass(s.sizeClass)
			h.Refresh()
			h.Appear()
			continue
		}
		h.Layout()
	}
	s.repositionOverlay()
}

// Refresh remounts the content of visible hosts so that declarations and
// rows reflect state changed by actions.
func (s *SplitContainer) Refresh() {
	for _, column := range s.VisibleColumns() {
		if h := s.TopHost(column); h != nil {
			h.Refresh()
		}
	}
	if s.overlay != nil {
		s.overlay.Refresh()
	}
}

func (s *SplitContainer) computeFrames() {
	clear(s.frames)
	if !s.appeared || s.width <= 0 || s.height <= 0 {
		return
	}
	if s.IsCollapsed() {
		s.frames[ColumnCompact] = Rect{Width: s.width, Height: s.height}
		return
	}
	primary, supplementary, secondary := ColumnWidths(s.width)
	s.frames[ColumnPrimary] = Rect{X: 0, Width: primary, Height: s.height}
	s.frames[ColumnSupplementary] = Rect{X: primary, Width: supplementary, Height: s.height}
	s.frames[ColumnSecondary] = Rect{X: primary + supplementary, Width: secondary, Height: s.height}
}

// ColumnWidths splits a total width across the three expanded columns:
// a quarter for primary, a third for supplementary (each with a minimum),
// and the rest for secondary.
func ColumnWidths(total int) (primary, supplementary, secondary int) {
	if total <= 0 {
		return 0, 0, 0
	}
	primary = max(total/4, MinPrimaryWidth)
	supplementary = max(total/3, MinSupplementaryWidth)
	if primary > total {
		return total, 0, 0
	}
	if primary+supplementary > total {
		return primary, total - primary, 0
	}
	return primary, supplementary, total - primary - supplementary
}

func (s *SplitContainer) repositionOverlay() {
	s.overlayFrame = Rect{}
	if s.overlay == nil || s.IsCollapsed() {
		return
	}
	c, ok := s.coordinator.Get()
	if !ok {
		return
	}
	switch s.overlaySpan {
	case OverlaySupplementaryAndSecondary:
		if c.PrimarySelection().Value().IsEmpty() {
			s.overlayFrame = s.frames[ColumnSupplementary].Union(s.frames[ColumnSecondary])
		}
	case OverlaySecondary:
		if c.SupplementarySelection().Value().IsEmpty() {
			s.overlayFrame = s.frames[ColumnSecondary]
		}
	}
	if !s.overlayFrame.Empty() && !s.overlay.Visible() {
		s.overlay.Appear()
	}
}

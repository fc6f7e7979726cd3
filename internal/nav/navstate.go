package nav

import (
	"encoding/binary"
	"hash/fnv"
)

// TitleStyle selects how a navigation title is displayed.
type TitleStyle int

const (
	TitleInline TitleStyle = iota // In the bar.
	TitleLarge                    // Large title below the bar, where the stack prefers it.
)

// Title is a navigation bar title.
type Title struct {
	Text  string
	Style TitleStyle
}

// InlineTitle returns an inline Title.
func InlineTitle(text string) *Title {
	return &Title{Text: text, Style: TitleInline}
}

// LargeTitle returns a large Title.
func LargeTitle(text string) *Title {
	return &Title{Text: text, Style: TitleLarge}
}

// NavigationState declares a screen's bar: an optional title and ordered
// bar items.
type NavigationState struct {
	Title *Title
	Items []Item
}

// NewNavigationState builds a NavigationState from a title and items.
func NewNavigationState(title *Title, items ...Item) NavigationState {
	return NavigationState{Title: title, Items: items}
}

// IsEditing reports the Initial flag of the first edit button, or false.
func (s NavigationState) IsEditing() bool {
	for _, item := range s.Items {
		if b, ok := item.(EditButton); ok {
			return b.Initial
		}
	}
	return false
}

// Equal compares titles and items with the weak item equality.
func (s NavigationState) Equal(o NavigationState) bool {
	if !titlesEqual(s.Title, o.Title) || len(s.Items) != len(o.Items) {
		return false
	}
	for i := range s.Items {
		if !ItemsEqual(s.Items[i], o.Items[i]) {
			return false
		}
	}
	return true
}

// Hash returns a hash consistent with Equal.
func (s NavigationState) Hash() uint64 {
	h := fnv.New64a()
	if s.Title != nil {
		_, _ = h.Write([]byte{1, byte(s.Title.Style)})
		writeString(h, s.Title.Text)
	} else {
		_, _ = h.Write([]byte{0})
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s.Items)))
	_, _ = h.Write(buf[:])
	for _, item := range s.Items {
		writeItemKey(h, item)
	}
	return h.Sum64()
}

func titlesEqual(a, b *Title) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// StatesEqual compares two optional states.
func StatesEqual(a, b *NavigationState) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// ReduceState folds the next declaration observed while walking a content
// tree into value. A nil next never erases an earlier declaration, so an
// inner screen's state survives an outer default.
func ReduceState(value, next *NavigationState) *NavigationState {
	if next == nil {
		return value
	}
	return next
}

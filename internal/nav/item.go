package nav

import (
	"encoding/binary"
	"hash/fnv"
	"io"
)

// ItemKind discriminates the navigation bar item variants.
type ItemKind int

const (
	ItemText ItemKind = iota + 1
	ItemEdit
	ItemAdd
	ItemReplacingBack
	ItemMenu
)

func (k ItemKind) String() string {
	switch k {
	case ItemText:
		return "text"
	case ItemEdit:
		return "edit"
	case ItemAdd:
		return "add"
	case ItemReplacingBack:
		return "replacing-back"
	case ItemMenu:
		return "menu"
	default:
		return "unknown"
	}
}

// EditMode is a shared, mutable editing flag. Items hold a pointer to it so
// that the content and the bar observe the same value.
type EditMode struct {
	active bool
}

// Active reports whether editing is on. A nil EditMode is inactive.
func (m *EditMode) Active() bool {
	return m != nil && m.active
}

// SetActive sets the editing flag.
func (m *EditMode) SetActive(active bool) {
	m.active = active
}

// Toggle flips the editing flag.
func (m *EditMode) Toggle() {
	m.active = !m.active
}

// Item is a navigation bar item. The set of implementations is closed.
type Item interface {
	Kind() ItemKind
	key() itemKey
}

// itemKey is the visible payload of an item. Closures are deliberately left
// out: it only serves change detection.
type itemKey struct {
	kind    ItemKind
	title   string
	symbol  string
	editing bool
	initial bool
	count   int
}

// TextButton is a titled bar button.
type TextButton struct {
	Title  string
	Action func()
}

// EditButton toggles Mode. Initial is the editing flag at declaration time
// and decides whether the button reads "Edit" or "Done".
type EditButton struct {
	Mode    *EditMode
	Initial bool
}

// NewEditButton returns an EditButton whose Initial flag mirrors mode.
func NewEditButton(mode *EditMode) EditButton {
	return EditButton{Mode: mode, Initial: mode.Active()}
}

// AddButton is the system add button.
type AddButton struct {
	Action func()
}

// ItemTitle is the label of a ReplacingBackButton: plain text, or a symbol
// with an accessible title.
type ItemTitle struct {
	Text   string
	Symbol string
}

// TextTitle returns a plain text ItemTitle.
func TextTitle(text string) ItemTitle { return ItemTitle{Text: text} }

// SymbolTitle returns a symbol ItemTitle.
func SymbolTitle(symbol, title string) ItemTitle {
	return ItemTitle{Text: title, Symbol: symbol}
}

// ReplacingBackButton takes the place of the back button while editing and
// is absent otherwise. Editing is the flag of Mode at declaration time.
type ReplacingBackButton struct {
	Title   ItemTitle
	Mode    *EditMode
	Editing bool
	Action  func()
}

// NewReplacingBackButton returns a ReplacingBackButton whose Editing flag
// mirrors mode.
func NewReplacingBackButton(title ItemTitle, mode *EditMode, action func()) ReplacingBackButton {
	return ReplacingBackButton{Title: title, Mode: mode, Editing: mode.Active(), Action: action}
}

// MenuAction is one entry of an OverflowMenu.
type MenuAction struct {
	Title   string
	Handler func()
}

// OverflowMenu groups actions behind a single bar button.
type OverflowMenu struct {
	Title   string
	Actions []MenuAction
}

func (TextButton) Kind() ItemKind          { return ItemText }
func (EditButton) Kind() ItemKind          { return ItemEdit }
func (AddButton) Kind() ItemKind           { return ItemAdd }
func (ReplacingBackButton) Kind() ItemKind { return ItemReplacingBack }
func (OverflowMenu) Kind() ItemKind        { return ItemMenu }

func (b TextButton) key() itemKey {
	return itemKey{kind: ItemText, title: b.Title}
}

func (b EditButton) key() itemKey {
	return itemKey{kind: ItemEdit, editing: b.Mode.Active(), initial: b.Initial}
}

func (AddButton) key() itemKey {
	return itemKey{kind: ItemAdd}
}

func (b ReplacingBackButton) key() itemKey {
	return itemKey{kind: ItemReplacingBack, title: b.Title.Text, symbol: b.Title.Symbol, editing: b.Editing}
}

func (m OverflowMenu) key() itemKey {
	return itemKey{kind: ItemMenu, title: m.Title, count: len(m.Actions)}
}

// ItemsEqual compares two items by discriminant and visible payload.
// Two nil items are equal.
func ItemsEqual(a, b Item) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.key() == b.key()
}

// HashItem returns a hash consistent with ItemsEqual.
func HashItem(item Item) uint64 {
	h := fnv.New64a()
	writeItemKey(h, item)
	return h.Sum64()
}

func writeItemKey(w io.Writer, item Item) {
	if item == nil {
		_, _ = w.Write([]byte{0})
		return
	}
	k := item.key()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k.kind))
	_, _ = w.Write(buf[:])
	writeString(w, k.title)
	writeString(w, k.symbol)
	_, _ = w.Write([]byte{boolByte(k.editing), boolByte(k.initial)})
	binary.LittleEndian.PutUint64(buf[:], uint64(k.count))
	_, _ = w.Write(buf[:])
}

func writeString(w io.Writer, s string) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(s)))
	_, _ = w.Write(buf[:])
	_, _ = io.WriteString(w, s)
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

package nav

import "strings"

// SizeClass is the horizontal size classification of the host window.
type SizeClass int

const (
	SizeRegular SizeClass = iota // Room for the three columns.
	SizeCompact                  // Collapsed to one column.
)

func (s SizeClass) String() string {
	if s == SizeCompact {
		return "compact"
	}
	return "regular"
}

// Env is the ambient context threaded down a content tree. Content builders
// receive it explicitly and the mount walk refines it per subtree (Tag).
type Env struct {
	Layout    LayoutState
	LinkID    LinkID
	SizeClass SizeClass
}

// Content builds a screen's node tree for an environment.
type Content func(env Env) *Node

// NodeKind discriminates content nodes.
type NodeKind int

const (
	NodeGroup NodeKind = iota
	NodeText
	NodeHeader
	NodeButton
	NodeLink
)

// Node is one element of a declarative content tree.
type Node struct {
	kind        NodeKind
	text        string
	children    []*Node
	action      func()
	destination Content
	label       Content
	tag         *LinkID
	declared    *NavigationState
}

// Group collects children without adding a row of its own.
func Group(children ...*Node) *Node {
	return &Node{kind: NodeGroup, children: children}
}

// Text is a non-interactive line.
func Text(text string) *Node {
	return &Node{kind: NodeText, text: text}
}

// Section is a header line followed by children.
func Section(header string, children ...*Node) *Node {
	return Group(append([]*Node{{kind: NodeHeader, text: header}}, children...)...)
}

// Button is an interactive line running action.
func Button(label string, action func()) *Node {
	return &Node{kind: NodeButton, text: label, action: action}
}

// NavLink composes a link from a destination builder and a label builder.
func NavLink(destination, label Content) *Node {
	return &Node{kind: NodeLink, destination: destination, label: label}
}

// TextLink is a NavLink with a plain text label.
func TextLink(label string, destination Content) *Node {
	return NavLink(destination, func(Env) *Node { return Text(label) })
}

// Tag sets the LinkID seen by this node and its descendants.
func (n *Node) Tag(id LinkID) *Node {
	n.tag = &id
	return n
}

// Declare attaches a navigation state declaration that bubbles up to the
// nearest screen host.
func (n *Node) Declare(state NavigationState) *Node {
	n.declared = &state
	return n
}

// RowKind discriminates mounted rows.
type RowKind int

const (
	RowText RowKind = iota
	RowHeader
	RowButton
	RowLink
)

// Row is one mounted line of a screen.
type Row struct {
	Kind   RowKind
	Text   string
	Action func()
	Link   *Link
}

// Selectable reports whether the row reacts to activation.
func (r Row) Selectable() bool {
	return r.Kind == RowButton || r.Kind == RowLink
}

// Tree is the result of mounting content under an environment.
type Tree struct {
	Rows     []Row
	Links    []*Link
	Declared *NavigationState
}

// Mount builds content under env, propagating the environment down and
// reducing navigation state declarations up in walk order.
func Mount(content Content, env Env) Tree {
	var t Tree
	if content == nil {
		return t
	}
	mountNode(content(env), env, &t)
	return t
}

func mountNode(n *Node, env Env, t *Tree) {
	if n == nil {
		return
	}
	if n.tag != nil {
		env.LinkID = *n.tag
	}
	t.Declared = ReduceState(t.Declared, n.declared)

	switch n.kind {
	case NodeText:
		t.Rows = append(t.Rows, Row{Kind: RowText, Text: n.text})
	case NodeHeader:
		t.Rows = append(t.Rows, Row{Kind: RowHeader, Text: n.text})
	case NodeButton:
		t.Rows = append(t.Rows, Row{Kind: RowButton, Text: n.text, Action: n.action})
	case NodeLink:
		link := &Link{
			id:          env.LinkID,
			state:       env.Layout,
			destination: n.destination,
			label:       labelText(n.label, env),
		}
		t.Rows = append(t.Rows, Row{Kind: RowLink, Text: link.label, Link: link})
		t.Links = append(t.Links, link)
	}
	for _, child := range n.children {
		mountNode(child, env, t)
	}
}

// labelText flattens a label subtree to a single line.
func labelText(label Content, env Env) string {
	if label == nil {
		return ""
	}
	var parts []string
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.text != "" {
			parts = append(parts, n.text)
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(label(env))
	return strings.Join(parts, " ")
}

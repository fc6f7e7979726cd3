package catalog

import (
	"io"
	"math/rand/v2"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/smileynet/splitnav/internal/nav"
)

type instanceKey struct {
	screen, item string
}

// Catalog turns a File into navigation content and owns the demo's runtime
// state. Like the rest of the UI it lives on the update loop and is not
// safe for concurrent use.
type Catalog struct {
	file    *File
	count   int
	title   string
	lists   map[string][]string
	edits   map[instanceKey]*nav.EditMode
	rand    *rand.Rand
	newItem func() string
	log     *log.Logger
}

// New returns a Catalog over f.
func New(f *File, opts ...Option) *Catalog {
	c := &Catalog{
		file:    f,
		title:   f.Title,
		lists:   make(map[string][]string, len(f.Lists)),
		edits:   make(map[instanceKey]*nav.EditMode),
		rand:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		newItem: uuid.NewString,
		log:     log.New(io.Discard),
	}
	for name, items := range f.Lists {
		c.lists[name] = slices.Clone(items)
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Root returns the id of the sidebar screen.
func (c *Catalog) Root() string { return c.file.Root }

// Count returns the shared counter.
func (c *Catalog) Count() int { return c.count }

// Title returns the current free-form title.
func (c *Catalog) Title() string { return c.title }

// List returns a copy of the named dynamic list.
func (c *Catalog) List(name string) []string { return slices.Clone(c.lists[name]) }

// Sidebar returns the content of the root screen.
func (c *Catalog) Sidebar() nav.Content { return c.Screen(c.file.Root, "") }

// Screen returns the content of screen id instantiated for item. The item
// is the label of the link that led there and fills the {item}
// placeholder.
func (c *Catalog) Screen(id, item string) nav.Content {
	return func(nav.Env) *nav.Node {
		s, ok := c.file.Screens[id]
		if !ok {
			return nav.Text("unknown screen " + id)
		}
		edit := c.editMode(id, item)
		r := c.replacer(item, edit)

		nodes := make([]*nav.Node, 0, len(s.Sections))
		for _, sec := range s.Sections {
			var rows []*nav.Node
			for _, e := range sec.Entries {
				rows = append(rows, c.entryNodes(id, item, e, r)...)
			}
			if sec.Header != "" {
				nodes = append(nodes, nav.Section(r.Replace(sec.Header), rows...))
			} else {
				nodes = append(nodes, nav.Group(rows...))
			}
		}
		return nav.Group(nodes...).Declare(c.navigationState(id, item, s, edit, r))
	}
}

func (c *Catalog) editMode(id, item string) *nav.EditMode {
	k := instanceKey{screen: id, item: item}
	m, ok := c.edits[k]
	if !ok {
		m = &nav.EditMode{}
		c.edits[k] = m
	}
	return m
}

func (c *Catalog) replacer(item string, edit *nav.EditMode) *strings.Replacer {
	state := "inactive"
	if edit.Active() {
		state = "active"
	}
	return strings.NewReplacer(
		"{item}", item,
		"{count}", strconv.Itoa(c.count),
		"{title}", c.title,
		"{edit}", state,
	)
}

func (c *Catalog) entryNodes(id, item string, e Entry, r *strings.Replacer) []*nav.Node {
	switch {
	case e.Text != "":
		return []*nav.Node{nav.Text(r.Replace(e.Text))}
	case e.Button != "":
		return []*nav.Node{nav.Button(r.Replace(e.Button), c.action(e.Action, id, item))}
	case e.Link != "":
		label := r.Replace(e.Link)
		linkID := nav.UUIDLinkID(uuid.NewSHA1(linkNamespace, []byte(id+"/"+label)))
		return []*nav.Node{nav.TextLink(label, c.Screen(e.To, label)).Tag(linkID)}
	case e.List != "":
		items := c.lists[e.List]
		nodes := make([]*nav.Node, 0, len(items))
		for _, name := range items {
			nodes = append(nodes, nav.TextLink(name, c.Screen(e.To, name)).Tag(nav.NamedLinkID(name)))
		}
		return nodes
	}
	return nil
}

func (c *Catalog) navigationState(id, item string, s *Screen, edit *nav.EditMode, r *strings.Replacer) nav.NavigationState {
	var title *nav.Title
	if s.Title != "" {
		if s.Large {
			title = nav.LargeTitle(r.Replace(s.Title))
		} else {
			title = nav.InlineTitle(r.Replace(s.Title))
		}
	}
	b := s.Bar
	if b == nil {
		return nav.NewNavigationState(title)
	}

	var items []nav.Item
	if rb := b.ReplacingBack; rb != nil {
		t := nav.TextTitle(rb.Title)
		if rb.Symbol != "" {
			t = nav.SymbolTitle(rb.Symbol, rb.Title)
		}
		items = append(items, nav.NewReplacingBackButton(t, edit, c.action(rb.Action, id, item)))
	}
	if b.Edit {
		items = append(items, nav.NewEditButton(edit))
	}
	if b.Add != "" {
		items = append(items, nav.AddButton{Action: c.action(b.Add, id, item)})
	}
	if b.Text != nil {
		items = append(items, nav.TextButton{Title: r.Replace(b.Text.Title), Action: c.action(b.Text.Action, id, item)})
	}
	if m := b.Menu; m != nil {
		actions := make([]nav.MenuAction, 0, len(m.Actions))
		for _, a := range m.Actions {
			actions = append(actions, nav.MenuAction{Title: a.Title, Handler: c.action(a.Action, id, item)})
		}
		items = append(items, nav.OverflowMenu{Title: m.Title, Actions: actions})
	}
	return nav.NewNavigationState(title, items...)
}

// action returns the handler for an action string run from screen id
// instantiated for item.
func (c *Catalog) action(cmd, id, item string) func() {
	verb, arg, _ := strings.Cut(strings.TrimSpace(cmd), " ")
	return func() {
		switch verb {
		case actionInc:
			c.count++
		case actionRetitle:
			c.title = c.newItem()
		case actionEdit:
			c.editMode(id, item).Toggle()
		case actionShuffle:
			list := c.lists[arg]
			c.rand.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
		case actionAdd:
			c.lists[arg] = append(c.lists[arg], c.newItem())
		case actionReset:
			c.lists[arg] = slices.Clone(c.file.Lists[arg])
		}
		c.log.Debug("catalog action", "action", cmd, "screen", id, "item", item)
	}
}

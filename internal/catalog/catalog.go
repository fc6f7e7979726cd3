// Package catalog builds navigation content from a YAML screen catalog.
// A catalog names screens made of sections of entries (text, buttons,
// links and dynamic lists), declares their navigation bar, and keeps the
// small amount of runtime state the demo needs: a counter, a title, the
// dynamic lists and one edit mode per screen instance.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// linkNamespace scopes the name-based UUIDs of static links.
var linkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/smileynet/splitnav/catalog"))

// File is the on-disk catalog document.
type File struct {
	Root    string              `yaml:"root"`
	Title   string              `yaml:"title"`
	Lists   map[string][]string `yaml:"lists"`
	Screens map[string]*Screen  `yaml:"screens"`
}

// Screen describes one screen. Text fields may use the placeholders
// {item}, {count}, {title} and {edit}.
type Screen struct {
	Title    string    `yaml:"title"`
	Large    bool      `yaml:"large"`
	Sections []Section `yaml:"sections"`
	Bar      *Bar      `yaml:"bar"`
}

// Section is an optional header followed by entries.
type Section struct {
	Header  string  `yaml:"header"`
	Entries []Entry `yaml:"entries"`
}

// Entry is one row. Exactly one of Text, Button, Link or List is set.
// Link and List entries lead to the screen named by To; Button entries run
// Action.
type Entry struct {
	Text   string `yaml:"text"`
	Button string `yaml:"button"`
	Link   string `yaml:"link"`
	List   string `yaml:"list"`
	To     string `yaml:"to"`
	Action string `yaml:"action"`
}

// Bar declares the navigation bar items of a screen.
type Bar struct {
	Edit          bool        `yaml:"edit"`
	ReplacingBack *BarButton  `yaml:"replacing_back"`
	Add           string      `yaml:"add"` // action run by the add button
	Text          *BarButton  `yaml:"text"`
	Menu          *MenuButton `yaml:"menu"`
}

// BarButton is a titled bar button running Action.
type BarButton struct {
	Title  string `yaml:"title"`
	Symbol string `yaml:"symbol"`
	Action string `yaml:"action"`
}

// MenuButton is an overflow menu.
type MenuButton struct {
	Title   string      `yaml:"title"`
	Actions []BarButton `yaml:"actions"`
}

// Parse decodes and validates a catalog document. Unknown fields are
// rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("catalog: empty document")
		}
		return nil, fmt.Errorf("catalog: parsing: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads and parses name from fsys.
func Load(fsys fs.FS, name string) (*File, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("catalog: reading %s: %w", name, err)
	}
	return Parse(data)
}

// Validate checks that every reference in the catalog resolves.
func (f *File) Validate() error {
	if f.Root == "" {
		return errors.New("catalog: root cannot be empty")
	}
	if _, ok := f.Screens[f.Root]; !ok {
		return fmt.Errorf("catalog: root screen %q not defined", f.Root)
	}
	for id, s := range f.Screens {
		if s == nil {
			return fmt.Errorf("catalog: screen %q is empty", id)
		}
		for i, sec := range s.Sections {
			for j, e := range sec.Entries {
				if err := f.validateEntry(e); err != nil {
					return fmt.Errorf("catalog: screen %q section %d entry %d: %w", id, i, j, err)
				}
			}
		}
		if err := f.validateBar(s.Bar); err != nil {
			return fmt.Errorf("catalog: screen %q bar: %w", id, err)
		}
	}
	return nil
}

func (f *File) validateEntry(e Entry) error {
	set := 0
	for _, v := range []string{e.Text, e.Button, e.Link, e.List} {
		if v != "" {
			set++
		}
	}
	if set != 1 {
		return errors.New("exactly one of text, button, link or list must be set")
	}
	switch {
	case e.Button != "":
		return f.validateAction(e.Action)
	case e.Link != "" || e.List != "":
		if _, ok := f.Screens[e.To]; !ok {
			return fmt.Errorf("destination %q not defined", e.To)
		}
		if e.List != "" {
			if _, ok := f.Lists[e.List]; !ok {
				return fmt.Errorf("list %q not defined", e.List)
			}
		}
	}
	return nil
}

func (f *File) validateBar(b *Bar) error {
	if b == nil {
		return nil
	}
	if b.ReplacingBack != nil {
		if !b.Edit {
			return errors.New("replacing_back needs edit: true")
		}
		if err := f.validateAction(b.ReplacingBack.Action); err != nil {
			return err
		}
	}
	if b.Add != "" {
		if err := f.validateAction(b.Add); err != nil {
			return err
		}
	}
	if b.Text != nil {
		if err := f.validateAction(b.Text.Action); err != nil {
			return err
		}
	}
	if b.Menu != nil {
		for _, a := range b.Menu.Actions {
			if err := f.validateAction(a.Action); err != nil {
				return err
			}
		}
	}
	return nil
}

// Action verbs. List verbs take the list name as their argument.
const (
	actionInc     = "inc"
	actionRetitle = "retitle"
	actionEdit    = "toggle-edit"
	actionShuffle = "shuffle"
	actionAdd     = "add"
	actionReset   = "reset"
)

func (f *File) validateAction(action string) error {
	verb, arg, _ := strings.Cut(strings.TrimSpace(action), " ")
	switch verb {
	case actionInc, actionRetitle, actionEdit:
		if arg != "" {
			return fmt.Errorf("action %q takes no argument", verb)
		}
	case actionShuffle, actionAdd, actionReset:
		if _, ok := f.Lists[arg]; !ok {
			return fmt.Errorf("action %q: list %q not defined", verb, arg)
		}
	case "":
		return errors.New("action cannot be empty")
	default:
		return fmt.Errorf("unknown action %q", verb)
	}
	return nil
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for action tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Catalog) {
		if l != nil {
			c.log = l
		}
	}
}

// WithRand sets the random source used by shuffle.
func WithRand(r *rand.Rand) Option {
	return func(c *Catalog) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithNewItem sets the generator for items appended by the add action.
func WithNewItem(fn func() string) Option {
	return func(c *Catalog) {
		if fn != nil {
			c.newItem = fn
		}
	}
}

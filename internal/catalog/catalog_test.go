package catalog

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/smileynet/splitnav/internal/nav"
)

const testCatalog = `
root: home
title: Home
lists:
  colors: [Red, Green, Blue]
screens:
  home:
    title: "{title}"
    large: true
    sections:
      - header: Colors
        entries:
          - text: "Count: {count}"
          - button: Inc
            action: inc
          - list: colors
            to: color
          - button: Add
            action: add colors
          - button: Reset
            action: reset colors
          - button: Shuffle
            action: shuffle colors
          - button: Retitle
            action: retitle
    bar:
      menu:
        title: More
        actions:
          - title: Reset
            action: reset colors
  color:
    title: "Color {item}"
    sections:
      - entries:
          - button: Toggle
            action: toggle-edit
          - text: "Edit: {edit}"
          - link: "{item} detail"
            to: leaf
    bar:
      edit: true
      replacing_back:
        title: Create
        symbol: plus
        action: inc
      add: add colors
      text:
        title: "Count {count}"
        action: inc
  leaf:
    title: "{item}"
    sections:
      - entries:
          - text: "Hello from {item}"
`

func mustParse(t *testing.T, doc string) *File {
	t.Helper()
	f, err := Parse([]byte(doc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return f
}

func rowTexts(tree nav.Tree) []string {
	texts := make([]string, 0, len(tree.Rows))
	for _, r := range tree.Rows {
		texts = append(texts, r.Text)
	}
	return texts
}

func pressButton(t *testing.T, tree nav.Tree, label string) {
	t.Helper()
	for _, r := range tree.Rows {
		if r.Kind == nav.RowButton && r.Text == label {
			r.Action()
			return
		}
	}
	t.Fatalf("no button %q in %v", label, rowTexts(tree))
}

func TestParse_Valid(t *testing.T) {
	f := mustParse(t, testCatalog)
	if f.Root != "home" || len(f.Screens) != 3 {
		t.Errorf("root=%q screens=%d", f.Root, len(f.Screens))
	}
	if got := f.Lists["colors"]; !slices.Equal(got, []string{"Red", "Green", "Blue"}) {
		t.Errorf("colors = %v", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty document"},
		{"unknown field", "root: a\nscreenz: {}\n", "parsing"},
		{"missing root", "screens:\n  a: {title: A}\n", "root cannot be empty"},
		{"undefined root", "root: b\nscreens:\n  a: {title: A}\n", `root screen "b"`},
		{"two kinds", "root: a\nscreens:\n  a:\n    sections:\n      - entries:\n          - {text: x, button: y, action: inc}\n", "exactly one"},
		{"no kind", "root: a\nscreens:\n  a:\n    sections:\n      - entries:\n          - {to: a}\n", "exactly one"},
		{"undefined destination", "root: a\nscreens:\n  a:\n    sections:\n      - entries:\n          - {link: x, to: b}\n", `destination "b"`},
		{"undefined list", "root: a\nscreens:\n  a:\n    sections:\n      - entries:\n          - {list: colors, to: a}\n", `list "colors"`},
		{"unknown action", "root: a\nscreens:\n  a:\n    sections:\n      - entries:\n          - {button: x, action: explode}\n", "unknown action"},
		{"missing action", "root: a\nscreens:\n  a:\n    sections:\n      - entries:\n          - {button: x}\n", "action cannot be empty"},
		{"argument on inc", "root: a\nscreens:\n  a:\n    sections:\n      - entries:\n          - {button: x, action: inc twice}\n", "takes no argument"},
		{"list action without list", "root: a\nscreens:\n  a:\n    sections:\n      - entries:\n          - {button: x, action: add}\n", `list "" not defined`},
		{"replacing back without edit", "root: a\nscreens:\n  a:\n    bar:\n      replacing_back: {title: New, action: inc}\n", "needs edit"},
		{"bad menu action", "root: a\nscreens:\n  a:\n    bar:\n      menu:\n        title: M\n        actions:\n          - {title: X, action: nope}\n", "unknown action"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !strings.HasPrefix(err.Error(), "catalog: ") || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want catalog-prefixed error containing %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{"catalog.yaml": &fstest.MapFile{Data: []byte(testCatalog)}}
	if _, err := Load(fsys, "catalog.yaml"); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, err := Load(fsys, "missing.yaml"); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestSidebar_Rows(t *testing.T) {
	c := New(mustParse(t, testCatalog))
	tree := nav.Mount(c.Sidebar(), nav.Env{})

	want := []string{"Colors", "Count: 0", "Inc", "Red", "Green", "Blue", "Add", "Reset", "Shuffle", "Retitle"}
	if got := rowTexts(tree); !slices.Equal(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
	if tree.Rows[0].Kind != nav.RowHeader {
		t.Error("section header should mount as a header row")
	}
	for i, l := range tree.Links {
		if l.ID() != nav.NamedLinkID(want[3+i]) {
			t.Errorf("list link %d id = %s, want name(%s)", i, l.ID(), want[3+i])
		}
	}

	d := tree.Declared
	if d == nil || d.Title.Text != "Home" || d.Title.Style != nav.TitleLarge {
		t.Fatalf("declared = %+v, want large title Home", d)
	}
	if len(d.Items) != 1 || d.Items[0].Kind() != nav.ItemMenu {
		t.Errorf("items = %v, want one overflow menu", d.Items)
	}
}

func TestActions_CounterAndTitle(t *testing.T) {
	c := New(mustParse(t, testCatalog), WithNewItem(func() string { return "Fresh" }))
	sidebar := c.Sidebar()

	pressButton(t, nav.Mount(sidebar, nav.Env{}), "Inc")
	pressButton(t, nav.Mount(sidebar, nav.Env{}), "Retitle")

	tree := nav.Mount(sidebar, nav.Env{})
	if c.Count() != 1 || tree.Rows[1].Text != "Count: 1" {
		t.Errorf("count = %d, row = %q", c.Count(), tree.Rows[1].Text)
	}
	if c.Title() != "Fresh" || tree.Declared.Title.Text != "Fresh" {
		t.Errorf("title = %q, declared %q", c.Title(), tree.Declared.Title.Text)
	}
}

func TestActions_Lists(t *testing.T) {
	c := New(mustParse(t, testCatalog),
		WithNewItem(func() string { return "Cyan" }),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	sidebar := c.Sidebar()

	pressButton(t, nav.Mount(sidebar, nav.Env{}), "Add")
	if got := c.List("colors"); !slices.Equal(got, []string{"Red", "Green", "Blue", "Cyan"}) {
		t.Fatalf("after add: %v", got)
	}
	if got := len(nav.Mount(sidebar, nav.Env{}).Links); got != 4 {
		t.Errorf("links after add = %d, want 4", got)
	}

	pressButton(t, nav.Mount(sidebar, nav.Env{}), "Shuffle")
	shuffled := c.List("colors")
	slices.Sort(shuffled)
	if !slices.Equal(shuffled, []string{"Blue", "Cyan", "Green", "Red"}) {
		t.Errorf("shuffle changed the elements: %v", shuffled)
	}

	pressButton(t, nav.Mount(sidebar, nav.Env{}), "Reset")
	if got := c.List("colors"); !slices.Equal(got, []string{"Red", "Green", "Blue"}) {
		t.Errorf("after reset: %v", got)
	}
}

func TestActions_ResetDoesNotAliasFile(t *testing.T) {
	f := mustParse(t, testCatalog)
	c := New(f, WithNewItem(func() string { return "Cyan" }))
	pressButton(t, nav.Mount(c.Sidebar(), nav.Env{}), "Reset")
	pressButton(t, nav.Mount(c.Sidebar(), nav.Env{}), "Add")
	if len(f.Lists["colors"]) != 3 {
		t.Errorf("file list mutated: %v", f.Lists["colors"])
	}
}

func TestScreen_BarItems(t *testing.T) {
	c := New(mustParse(t, testCatalog))
	tree := nav.Mount(c.Screen("color", "Red"), nav.Env{})

	d := tree.Declared
	if d.Title.Text != "Color Red" || d.Title.Style != nav.TitleInline {
		t.Errorf("title = %+v", d.Title)
	}
	kinds := make([]nav.ItemKind, 0, len(d.Items))
	for _, it := range d.Items {
		kinds = append(kinds, it.Kind())
	}
	want := []nav.ItemKind{nav.ItemReplacingBack, nav.ItemEdit, nav.ItemAdd, nav.ItemText}
	if !slices.Equal(kinds, want) {
		t.Fatalf("item kinds = %v, want %v", kinds, want)
	}
	rb := d.Items[0].(nav.ReplacingBackButton)
	if rb.Title.Symbol != "plus" || rb.Title.Text != "Create" {
		t.Errorf("replacing back title = %+v", rb.Title)
	}
	if rb.Editing {
		t.Error("replacing back button should not be editing before a toggle")
	}
	if tb := d.Items[3].(nav.TextButton); tb.Title != "Count 0" {
		t.Errorf("text button title = %q", tb.Title)
	}
}

func TestScreen_EditModePerInstance(t *testing.T) {
	c := New(mustParse(t, testCatalog))
	red := c.Screen("color", "Red")

	pressButton(t, nav.Mount(red, nav.Env{}), "Toggle")

	tree := nav.Mount(red, nav.Env{})
	if !tree.Declared.IsEditing() {
		t.Error("toggle-edit should switch the screen into editing")
	}
	if rb := tree.Declared.Items[0].(nav.ReplacingBackButton); !rb.Editing {
		t.Error("replacing back button should be declared while editing")
	}
	if got := tree.Rows[1].Text; got != "Edit: active" {
		t.Errorf("edit row = %q", got)
	}
	if nav.Mount(c.Screen("color", "Green"), nav.Env{}).Declared.IsEditing() {
		t.Error("edit mode should not leak to other instances")
	}
}

func TestScreen_LinkIDsStable(t *testing.T) {
	c := New(mustParse(t, testCatalog))
	first := nav.Mount(c.Screen("color", "Red"), nav.Env{}).Links[0]
	again := nav.Mount(c.Screen("color", "Red"), nav.Env{}).Links[0]
	other := nav.Mount(c.Screen("color", "Blue"), nav.Env{}).Links[0]

	if first.ID().Kind() != nav.LinkIDUUID {
		t.Fatalf("static link id kind = %v, want uuid", first.ID().Kind())
	}
	if first.ID() != again.ID() {
		t.Error("remounting should keep the link id")
	}
	if first.ID() == other.ID() {
		t.Error("different labels should get different ids")
	}
	if first.Label() != "Red detail" {
		t.Errorf("label = %q", first.Label())
	}
}

func TestScreen_Unknown(t *testing.T) {
	c := New(mustParse(t, testCatalog))
	tree := nav.Mount(c.Screen("nope", ""), nav.Env{})
	if len(tree.Rows) != 1 || tree.Declared != nil {
		t.Errorf("unknown screen rows = %v", rowTexts(tree))
	}
}

func TestCatalog_DrivesSplitContainer(t *testing.T) {
	c := New(mustParse(t, testCatalog))
	coord := nav.NewCoordinator()
	split := nav.NewSplitContainer(coord, c.Sidebar())
	split.Resize(160, 40)
	split.DidAppear()

	tap := func(column nav.Column, label string) {
		t.Helper()
		for _, l := range split.TopHost(column).Links() {
			if l.Label() == label {
				l.Tap()
				split.LayoutPass()
				return
			}
		}
		t.Fatalf("no link %q in %s", label, column)
	}

	tap(nav.ColumnPrimary, "Green")
	tap(nav.ColumnSupplementary, "Green detail")

	if got := split.TopHost(nav.ColumnSupplementary).Bar().Title.Text; got != "Color Green" {
		t.Errorf("supplementary title = %q", got)
	}
	if got := split.TopHost(nav.ColumnSecondary).Bar().Title.Text; got != "Green detail" {
		t.Errorf("secondary title = %q", got)
	}
	if len(coord.Layers()) != 2 {
		t.Errorf("layers = %d, want 2", len(coord.Layers()))
	}
}

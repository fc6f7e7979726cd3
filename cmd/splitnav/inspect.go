package main

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/smileynet/splitnav/internal/catalog"
	"github.com/smileynet/splitnav/internal/config"
	"github.com/smileynet/splitnav/internal/nav"
)

// InspectCmd walks the catalog headlessly by tapping links and prints the
// resulting columns.
type InspectCmd struct {
	Labels []string    `arg:"" optional:"" help:"Link labels to tap, in order."`
	Width  int         `help:"Window width in cells." default:"160"`
	Height int         `help:"Window height in cells." default:"40"`
	Layout LayoutFlags `embed:""`
}

// Run executes the inspect command.
func (c *InspectCmd) Run() error {
	cfg, err := loadConfig(c.Layout)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return c.inspect(os.Stdout, os.Stderr, cfg)
}

func (c *InspectCmd) inspect(stdout, stderr io.Writer, cfg *config.Config) error {
	logger := newConsoleLogger(stderr, cfg.LogLevel())

	file, err := loadCatalog(cfg.Demo.Catalog)
	if err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	cat := catalog.New(file, catalog.WithLogger(logger))

	coord := nav.NewCoordinator(nav.WithLogger(logger))
	defer coord.Close()
	split := newSplit(coord, cat, cfg)
	split.Resize(c.Width, c.Height)
	split.DidAppear()

	for _, label := range c.Labels {
		link, ok := findLink(split, label)
		if !ok {
			return fmt.Errorf("inspect: %w labeled %q", errNoLink, label)
		}
		link.Tap()
		split.Refresh()
		split.LayoutPass()
	}

	writeLayout(stdout, split, coord)
	return nil
}

// findLink searches the visible columns for a link, deepest column first.
func findLink(split *nav.SplitContainer, label string) (*nav.Link, bool) {
	columns := split.VisibleColumns()
	slices.Reverse(columns)
	for _, col := range columns {
		h := split.TopHost(col)
		if h == nil {
			continue
		}
		for _, l := range h.Links() {
			if l.Label() == label {
				return l, true
			}
		}
	}
	return nil, false
}

// writeLayout prints the size class, each visible column and the layers.
func writeLayout(w io.Writer, split *nav.SplitContainer, coord *nav.Coordinator) {
	_, _ = fmt.Fprintf(w, "size: %s\n", split.SizeClass())
	for _, col := range split.VisibleColumns() {
		h := split.TopHost(col)
		if h == nil {
			continue
		}
		_, _ = fmt.Fprintf(w, "\n[%s] %s\n", col, stackPath(split, col))
		if bar := barSummary(h); bar != "" {
			_, _ = fmt.Fprintf(w, "  bar: %s\n", bar)
		}
		for _, r := range h.Rows() {
			_, _ = fmt.Fprintf(w, "  %s\n", rowSummary(h, r))
		}
	}
	if _, rect, ok := split.Overlay(); ok {
		_, _ = fmt.Fprintf(w, "\noverlay: x=%d width=%d\n", rect.X, rect.Width)
	}

	labels := []string{}
	for _, l := range coord.Layers() {
		if link, ok := l.(*nav.Link); ok {
			labels = append(labels, link.Label())
		}
	}
	_, _ = fmt.Fprintf(w, "\nlayers: %s\n", strings.Join(labels, " > "))
}

// stackPath returns the titles of a column's stack, bottom to top.
func stackPath(split *nav.SplitContainer, col nav.Column) string {
	hosts := []*nav.ScreenHost{split.TopHost(col)}
	if st, ok := split.Stack(col); ok {
		hosts = st.Hosts()
	}
	titles := make([]string, 0, len(hosts))
	for _, h := range hosts {
		switch {
		case h.IsPlaceholder():
			titles = append(titles, "(empty)")
		case h.Bar().Title != nil:
			titles = append(titles, h.Bar().Title.Text)
		default:
			titles = append(titles, "(untitled)")
		}
	}
	return strings.Join(titles, " › ")
}

func barSummary(h *nav.ScreenHost) string {
	bar := h.Bar()
	var parts []string
	if st := h.Parent(); st != nil && st.Len() > 1 && !bar.HidesBackButton() {
		parts = append(parts, "<back>")
	}
	for _, b := range bar.Left {
		parts = append(parts, "<"+b.Title+">")
	}
	if len(bar.Right) > 0 {
		parts = append(parts, "|")
	}
	for _, b := range bar.Right {
		parts = append(parts, "<"+b.Title+">")
	}
	return strings.Join(parts, " ")
}

func rowSummary(h *nav.ScreenHost, r nav.Row) string {
	switch r.Kind {
	case nav.RowHeader:
		return "# " + r.Text
	case nav.RowButton:
		return "(" + r.Text + ")"
	case nav.RowLink:
		if h.Highlighted(r.Link) {
			return "* " + r.Text + " ›"
		}
		return "  " + r.Text + " ›"
	}
	return r.Text
}

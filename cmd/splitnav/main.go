package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/smileynet/splitnav"
	"github.com/smileynet/splitnav/internal/catalog"
	"github.com/smileynet/splitnav/internal/config"
	"github.com/smileynet/splitnav/internal/nav"
	"github.com/smileynet/splitnav/internal/splitview"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for splitnav.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Demo    DemoCmd          `cmd:"" help:"Browse the demo catalog in a three-column TUI."`
	Inspect InspectCmd       `cmd:"" help:"Tap links by label without a terminal and print the columns."`
}

// LayoutFlags override configuration for one invocation.
type LayoutFlags struct {
	CompactWidth int    `help:"Collapse to one column below this width (0 keeps the config value)." default:"0"`
	Overlay      string `help:"Overlay span: none, supplementary_secondary or secondary."`
	Catalog      string `help:"Catalog file to load instead of the embedded demo." type:"path"`
}

func (f LayoutFlags) apply(cfg *config.Config) {
	if f.CompactWidth > 0 {
		cfg.Layout.CompactWidth = f.CompactWidth
	}
	if f.Overlay != "" {
		cfg.Layout.Overlay = f.Overlay
	}
	if f.Catalog != "" {
		cfg.Demo.Catalog = f.Catalog
	}
}

// DemoCmd opens the demo catalog in the interactive TUI.
type DemoCmd struct {
	Layout LayoutFlags `embed:""`
}

// teaRunner abstracts Bubble Tea program execution for testing.
type teaRunner interface {
	Run() (tea.Model, error)
}

// Run builds the navigation root and launches the TUI.
func (d *DemoCmd) Run() error {
	isTTY := stdoutIsTerminal()
	if !isTTY {
		return d.run(false, nil)
	}

	cfg, err := loadConfig(d.Layout)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}

	// The terminal belongs to Bubble Tea, so logs only go to a file.
	logger, closeLog, err := newFileLogger(cfg.Log.File, cfg.LogLevel())
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	defer closeLog() //nolint:errcheck // best-effort close of the log file

	file, err := loadCatalog(cfg.Demo.Catalog)
	if err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	cat := catalog.New(file, catalog.WithLogger(logger))

	coord := nav.NewCoordinator(nav.WithLogger(logger))
	defer coord.Close()
	split := newSplit(coord, cat, cfg)

	m := splitview.NewModel(coord, split, splitview.WithLogger(logger))
	logger.Info("demo started", "compact_width", cfg.Layout.CompactWidth, "overlay", cfg.Layout.Overlay)
	return d.run(isTTY, tea.NewProgram(m, tea.WithAltScreen()))
}

// stdoutIsTerminal reports whether stdout is attached to a terminal.
var stdoutIsTerminal = func() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// run executes the TUI program when attached to a terminal.
func (d *DemoCmd) run(isTTY bool, prog teaRunner) error {
	if !isTTY {
		return fmt.Errorf("demo: requires a terminal (TTY)")
	}
	_, err := prog.Run()
	return err
}

// loadConfig loads layered config from user and project paths with env
// overrides, then applies flags and validates.
func loadConfig(flags LayoutFlags) (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/splitnav/config.yaml"),
		".splitnav/config.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	flags.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadCatalog reads the catalog at path, or the embedded demo when path is
// empty. A missing local file falls back to the embedded file of the same
// name.
func loadCatalog(path string) (*catalog.File, error) {
	if path == "" {
		return catalog.Load(splitnav.Demo, splitnav.DemoCatalog)
	}
	return catalog.Load(splitnav.OverlayFS(filepath.Dir(path), splitnav.Demo), filepath.Base(path))
}

// overlayContent is shown over columns that have nothing selected yet.
func overlayContent(nav.Env) *nav.Node {
	return nav.Group(
		nav.Text("Nothing selected"),
		nav.Text("Pick an item on the left."),
	)
}

// newSplit builds the split container around the catalog's sidebar.
func newSplit(coord *nav.Coordinator, cat *catalog.Catalog, cfg *config.Config) *nav.SplitContainer {
	return nav.NewSplitContainer(coord, cat.Sidebar(),
		nav.WithCompactWidth(cfg.Layout.CompactWidth),
		nav.WithLargeTitles(cfg.Layout.LargeTitles),
		nav.WithOverlay(cfg.OverlaySpan(), overlayContent),
	)
}

// Exit codes.
const (
	exitSuccess = 0
	exitRuntime = 1
	exitSetup   = 2
)

// errNoLink marks an inspect walk that could not find a label.
var errNoLink = errors.New("no visible link")

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, errNoLink) {
		return exitRuntime
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("splitnav"),
		kong.Description("Three-column navigation demo."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}

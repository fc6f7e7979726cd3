package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/smileynet/splitnav/internal/nav"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Layout.CompactWidth != nav.DefaultCompactWidth {
		t.Errorf("default compact width = %d, want %d", cfg.Layout.CompactWidth, nav.DefaultCompactWidth)
	}
	if cfg.OverlaySpan() != nav.OverlaySupplementaryAndSecondary {
		t.Errorf("default overlay = %q", cfg.Layout.Overlay)
	}
	if !cfg.Layout.LargeTitles {
		t.Error("large titles should default on")
	}
	if cfg.LogLevel() != log.InfoLevel {
		t.Errorf("default log level = %v, want info", cfg.LogLevel())
	}
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeConfig(t, `
layout:
  compact_width: 120
  overlay: secondary
  large_titles: false
log:
  level: debug
  file: /tmp/splitnav.log
demo:
  catalog: ./catalog.yaml
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	want := Config{
		Layout: Layout{CompactWidth: 120, Overlay: "secondary", LargeTitles: false},
		Log:    Log{Level: "debug", File: "/tmp/splitnav.log"},
		Demo:   Demo{Catalog: "./catalog.yaml"},
	}
	if *cfg != want {
		t.Errorf("Load() = %+v, want %+v", *cfg, want)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/splitnav.yaml")
	if err != nil {
		t.Fatalf("Load() should return defaults for missing file, got error: %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("Load(missing) = %+v, want defaults", *cfg)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	if _, err := Load(writeConfig(t, "{{invalid yaml")); err == nil {
		t.Fatal("Load(invalid YAML) should return error")
	}
}

func TestLoad_UnknownField(t *testing.T) {
	path := writeConfig(t, `
layout:
  compact_widht: 80
`)
	if _, err := Load(path); err == nil {
		t.Fatal("Load() should return error for unknown field 'compact_widht'")
	}
}

func TestLoad_CommentOnlyAndEmpty(t *testing.T) {
	for name, body := range map[string]string{"comment": "# just a comment\n", "empty": ""} {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, body))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if *cfg != DefaultConfig() {
				t.Errorf("Load() = %+v, want defaults", *cfg)
			}
		})
	}
}

func TestLoadLayered_Priority(t *testing.T) {
	// User config sets width and level, project config overrides the width.
	user := writeConfig(t, `
layout:
  compact_width: 90
log:
  level: warn
`)
	project := writeConfig(t, `
layout:
  compact_width: 140
  large_titles: false
`)

	cfg, err := LoadLayered(user, project)
	if err != nil {
		t.Fatalf("LoadLayered() error = %v", err)
	}
	if cfg.Layout.CompactWidth != 140 {
		t.Errorf("compact width = %d, want 140 from project", cfg.Layout.CompactWidth)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log level = %q, want warn from user", cfg.Log.Level)
	}
	if cfg.Layout.LargeTitles {
		t.Error("large_titles: false should survive the merge")
	}
	if cfg.Layout.Overlay != DefaultConfig().Layout.Overlay {
		t.Errorf("overlay = %q, want default", cfg.Layout.Overlay)
	}
}

func TestLoadLayered_AllMissing(t *testing.T) {
	cfg, err := LoadLayered("/no/user.yaml", "/no/project.yaml")
	if err != nil {
		t.Fatalf("LoadLayered(all missing) error = %v", err)
	}
	if *cfg != DefaultConfig() {
		t.Errorf("got %+v, want defaults", *cfg)
	}
}

func TestLoadLayered_BadLayer(t *testing.T) {
	good := writeConfig(t, "layout:\n  compact_width: 90\n")
	bad := writeConfig(t, "layout: [")
	if _, err := LoadLayered(good, bad); err == nil {
		t.Fatal("a malformed layer should fail the whole load")
	}
}

func TestApplyEnv(t *testing.T) {
	tests := []struct {
		name    string
		envs    map[string]string
		wantErr bool
		check   func(*testing.T, Config)
	}{
		{
			name: "SPLITNAV_COMPACT_WIDTH overrides compact width",
			envs: map[string]string{"SPLITNAV_COMPACT_WIDTH": "72"},
			check: func(t *testing.T, c Config) {
				if c.Layout.CompactWidth != 72 {
					t.Errorf("compact width = %d, want 72", c.Layout.CompactWidth)
				}
			},
		},
		{
			name: "SPLITNAV_OVERLAY overrides overlay",
			envs: map[string]string{"SPLITNAV_OVERLAY": "none"},
			check: func(t *testing.T, c Config) {
				if c.OverlaySpan() != nav.OverlayNone {
					t.Errorf("overlay = %q, want none", c.Layout.Overlay)
				}
			},
		},
		{
			name: "SPLITNAV_LOG_LEVEL and SPLITNAV_LOG_FILE override log",
			envs: map[string]string{"SPLITNAV_LOG_LEVEL": "debug", "SPLITNAV_LOG_FILE": "/tmp/x.log"},
			check: func(t *testing.T, c Config) {
				if c.LogLevel() != log.DebugLevel || c.Log.File != "/tmp/x.log" {
					t.Errorf("log = %+v", c.Log)
				}
			},
		},
		{
			name:    "invalid SPLITNAV_COMPACT_WIDTH returns error",
			envs:    map[string]string{"SPLITNAV_COMPACT_WIDTH": "wide"},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envs {
				t.Setenv(k, v)
			}
			cfg := DefaultConfig()
			err := cfg.ApplyEnv()

			if tt.wantErr {
				if err == nil {
					t.Fatal("ApplyEnv() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyEnv() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			modify: func(*Config) {},
		},
		{
			name:    "zero compact width",
			modify:  func(c *Config) { c.Layout.CompactWidth = 0 },
			wantErr: true,
		},
		{
			name:    "unknown overlay",
			modify:  func(c *Config) { c.Layout.Overlay = "everywhere" },
			wantErr: true,
		},
		{
			name:   "empty overlay means none",
			modify: func(c *Config) { c.Layout.Overlay = "" },
		},
		{
			name:    "unknown log level",
			modify:  func(c *Config) { c.Log.Level = "chatty" },
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rupor-github/gencfg"

	"jitcss/common"
	"jitcss/registry"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jitcss.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Build.Separator != ":" {
		t.Errorf("Default separator = %q, want \":\"", cfg.Build.Separator)
	}
	if cfg.Build.OutputStyle != common.OutputStyleExpanded {
		t.Errorf("Default output style = %s, want expanded", cfg.Build.OutputStyle)
	}
	if len(cfg.Theme.Screens) != 5 || cfg.Theme.Screens[1].Name != "md" {
		t.Errorf("Default screens = %v", cfg.Theme.Screens)
	}
	if cfg.Theme.DarkMode != DarkModeMedia {
		t.Errorf("Default dark mode = %s, want media", cfg.Theme.DarkMode)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("Default logging = %+v", cfg.Logging)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	path := writeConfig(t, `version: 1
build:
  content: ["src/**/*.html"]
  separator: "_"
  prefix: "tw-"
  important: true
  workers: 4
  core_plugins: [padding, margin]
  output_style: compact
theme:
  screens:
    - { name: tablet, min: 640px }
    - { name: desktop, min: 1280px }
  colors:
    brand: "#123456"
  dark_mode: class
variants:
  - { name: hocus, kind: compound, selector: "&:hover, &:focus" }
utilities:
  - name: content-auto
    declarations:
      - { property: content-visibility, value: auto }
logging:
  console:
    level: debug
`)

	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	b := cfg.Build
	if b.Separator != "_" || b.Prefix != "tw-" || !b.Important || b.Workers != 4 {
		t.Errorf("Build = %+v", b)
	}
	if len(b.Content) != 1 || b.Content[0] != "src/**/*.html" {
		t.Errorf("Content = %v, want file value to replace template list", b.Content)
	}
	if b.ContentBase != "." {
		t.Errorf("ContentBase = %q, want template default", b.ContentBase)
	}
	if b.OutputStyle != common.OutputStyleCompact {
		t.Errorf("OutputStyle = %s, want compact", b.OutputStyle)
	}
	if len(cfg.Theme.Screens) != 2 || cfg.Theme.Screens[0].Name != "tablet" {
		t.Errorf("Screens = %v", cfg.Theme.Screens)
	}
	if cfg.Theme.DarkMode != DarkModeClass {
		t.Errorf("DarkMode = %s, want class", cfg.Theme.DarkMode)
	}
	if len(cfg.Variants) != 1 || len(cfg.Utilities) != 1 {
		t.Errorf("Variants = %v, Utilities = %v", cfg.Variants, cfg.Utilities)
	}
	if cfg.Logging.ConsoleLogger.Level != "debug" {
		t.Errorf("Console level = %q, want debug", cfg.Logging.ConsoleLogger.Level)
	}
	if cfg.Logging.FileLogger.Mode != "overwrite" {
		t.Errorf("File mode = %q, want template default", cfg.Logging.FileLogger.Mode)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"invalid yaml", "version: 1\nbuild:\n  separator: \":\"\n  invalid indent\n", "decode"},
		{"unknown field", "version: 1\nunknown_field: value\n", "decode"},
		{"version", "version: 2\n", "Version"},
		{"empty separator", "version: 1\nbuild:\n  separator: \"\"\n", "Separator"},
		{"negative workers", "version: 1\nbuild:\n  workers: -1\n", "Workers"},
		{"output style", "version: 1\nbuild:\n  output_style: pretty\n", "OutputStyle"},
		{"dark mode", "version: 1\ntheme:\n  dark_mode: auto\n", "DarkMode"},
		{"duplicate screen", "version: 1\ntheme:\n  screens:\n    - { name: sm, min: 1px }\n    - { name: sm, min: 2px }\n", "Screens[1].Name"},
		{"screen without width", "version: 1\ntheme:\n  screens:\n    - { name: sm }\n", "Min"},
		{"variant kind", "version: 1\nvariants:\n  - { name: x, kind: magic }\n", "Kind"},
		{"utility without declarations", "version: 1\nutilities:\n  - { name: x }\n", "Declarations"},
		{"logging level", "version: 1\nlogging:\n  console:\n    level: loud\n", "Level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfiguration(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	if _, err := LoadConfiguration("/nonexistent/jitcss.yaml"); err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {}
	if _, err := LoadConfiguration("", option); err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if _, err := unmarshalConfig(data, &Config{}, true); err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Build.Prefix = "tw-"
	cfg.Theme.DarkMode = DarkModeClass

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	out := string(data)
	for _, want := range []string{"prefix: tw-", "dark_mode: class", "output_style: expanded"} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump() output missing %q:\n%s", want, out)
		}
	}

	// dumped configuration must load back
	back, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("unmarshalConfig() of dumped data error = %v", err)
	}
	if back.Build.Prefix != "tw-" || back.Theme.DarkMode != DarkModeClass {
		t.Errorf("round trip lost values: %+v", back.Build)
	}
}

func TestUnmarshalConfig_WrapsValidationError(t *testing.T) {
	_, err := unmarshalConfig([]byte("version: 3\n"), &Config{}, true)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if errors.Unwrap(err) == nil {
		t.Errorf("validation error is not wrapped: %v", err)
	}
}

func TestRegistryOptions(t *testing.T) {
	cfg, err := LoadConfiguration(writeConfig(t, `version: 1
build:
  prefix: "tw-"
  core_plugins: [padding]
theme:
  colors:
    brand: "#123456"
    red-500: "#ff0000"
  spacing:
    "13": "3.25rem"
  dark_mode: class
variants:
  - { name: hocus, kind: compound, selector: "&:hover, &:focus" }
utilities:
  - name: content-auto
    family: transform
    declarations:
      - { property: content-visibility, value: auto, important: true }
`))
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	opts := cfg.RegistryOptions()
	if opts.Prefix != "tw-" || opts.Separator != ":" || len(opts.CorePlugins) != 1 {
		t.Errorf("options = %+v", opts)
	}
	if opts.Theme.DarkMode != "class" {
		t.Errorf("DarkMode = %q, want class", opts.Theme.DarkMode)
	}
	if opts.Theme.Colors["brand"] != "#123456" || opts.Theme.Colors["red-500"] != "#ff0000" {
		t.Errorf("configured colors not applied")
	}
	if opts.Theme.Colors["blue-500"] != registry.DefaultColors()["blue-500"] {
		t.Errorf("default colors not kept")
	}
	if opts.Theme.Spacing["13"] != "3.25rem" || opts.Theme.Spacing["4"] != "1rem" {
		t.Errorf("spacing = %v", opts.Theme.Spacing)
	}
	if len(opts.Theme.Screens) != 5 || opts.Theme.Screens[4].Name != "2xl" {
		t.Errorf("screens = %v", opts.Theme.Screens)
	}
	if len(opts.Variants) != 1 || opts.Variants[0].Kind != "compound" {
		t.Errorf("variants = %+v", opts.Variants)
	}
	if len(opts.Utilities) != 1 || opts.Utilities[0].Family != "transform" ||
		len(opts.Utilities[0].Declarations) != 1 || !opts.Utilities[0].Declarations[0].Important {
		t.Errorf("utilities = %+v", opts.Utilities)
	}

	if _, err := registry.New(opts, nil); err != nil {
		t.Errorf("registry.New() error = %v", err)
	}
}

func TestDarkMode(t *testing.T) {
	for _, name := range DarkModeNames() {
		m, err := ParseDarkMode(name)
		if err != nil {
			t.Fatalf("ParseDarkMode(%q) error = %v", name, err)
		}
		if m.String() != name || !m.IsValid() {
			t.Errorf("DarkMode %q round trip = %s", name, m)
		}
	}
	if _, err := ParseDarkMode("auto"); !errors.Is(err, ErrInvalidDarkMode) {
		t.Errorf("ParseDarkMode(auto) error = %v", err)
	}
}

package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"maps"
	"os"

	validator "github.com/go-playground/validator/v10"
	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"jitcss/common"
	"jitcss/css"
	"jitcss/registry"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	BuildConfig struct {
		Input       string             `yaml:"input" sanitize:"assure_file_access" validate:"omitempty,filepath"`
		Output      string             `yaml:"output" validate:"omitempty,filepath"`
		Content     []string           `yaml:"content" validate:"dive,required"`
		ContentBase string             `yaml:"content_base"`
		ContentCP   string             `yaml:"content_cp"`
		Separator   string             `yaml:"separator"`
		Prefix      string             `yaml:"prefix"`
		Important   bool               `yaml:"important"`
		Workers     int                `yaml:"workers" validate:"gte=0"`
		CorePlugins []string           `yaml:"core_plugins" validate:"dive,required"`
		OutputStyle common.OutputStyle `yaml:"output_style" validate:"gte=0"`
	}

	ScreenConfig struct {
		Name string `yaml:"name" validate:"required"`
		Min  string `yaml:"min" validate:"required"`
	}

	// ThemeConfig extends built-in scales: colors and spacing entries are
	// added to (or replace) defaults, screens replace default breakpoints
	// entirely when present.
	ThemeConfig struct {
		Screens  []ScreenConfig    `yaml:"screens" validate:"dive"`
		Colors   map[string]string `yaml:"colors"`
		Spacing  map[string]string `yaml:"spacing"`
		DarkMode DarkMode          `yaml:"dark_mode" validate:"gte=0"`
	}

	VariantConfig struct {
		Name       string `yaml:"name" validate:"required"`
		Kind       string `yaml:"kind" validate:"required,oneof=compound ancestor at-rule pseudo-element"`
		Selector   string `yaml:"selector,omitempty"`
		Combinator string `yaml:"combinator,omitempty"`
		AtRule     string `yaml:"at_rule,omitempty"`
		Params     string `yaml:"params,omitempty"`
	}

	DeclarationConfig struct {
		Property  string `yaml:"property" validate:"required"`
		Value     string `yaml:"value" validate:"required"`
		Important bool   `yaml:"important,omitempty"`
	}

	UtilityConfig struct {
		Name         string              `yaml:"name" validate:"required"`
		Family       string              `yaml:"family,omitempty"`
		Declarations []DeclarationConfig `yaml:"declarations" validate:"required,dive"`
	}

	Config struct {
		Version   int             `yaml:"version" validate:"eq=1"`
		Build     BuildConfig     `yaml:"build"`
		Theme     ThemeConfig     `yaml:"theme"`
		Variants  []VariantConfig `yaml:"variants" validate:"dive"`
		Utilities []UtilityConfig `yaml:"utilities" validate:"dive"`
		Logging   LoggingConfig   `yaml:"logging"`
		Reporting ReporterConfig  `yaml:"reporting"`
	}
)

// checkConfig performs cross-field checks validator tags cannot express.
func checkConfig(sl validator.StructLevel) {
	cfg, ok := sl.Current().Interface().(Config)
	if !ok {
		return
	}
	if len(cfg.Build.Separator) == 0 {
		sl.ReportError(cfg.Build.Separator, "Build.Separator", "separator", "required", "")
	}
	seen := make(map[string]bool, len(cfg.Theme.Screens))
	for i, s := range cfg.Theme.Screens {
		if seen[s.Name] {
			sl.ReportError(s.Name, fmt.Sprintf("Theme.Screens[%d].Name", i), "name", "unique", s.Name)
		}
		seen[s.Name] = true
	}
}

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// We want to use only fields we defined so we cannot use yaml.Unmarshal
	// directly here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if process {
		if err := gencfg.Sanitize(cfg); err != nil {
			return nil, err
		}
		if err := gencfg.Validate(cfg, gencfg.WithAdditionalChecks(checkConfig)); err != nil {
			return nil, fmt.Errorf("configuration is not valid: %w", err)
		}
	}
	return cfg, nil
}

// LoadConfiguration expands configuration template to get defaults, then
// superimposes values from the file at the given path (if any) and validates
// the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// lists from the file replace template lists, maps are merged
	cfg, err = unmarshalConfig(data, cfg, haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare expands configuration template and returns it as a byte slice.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %v", err)
	}
	return data, nil
}

// RegistryOptions converts loaded configuration into registry definition.
// Registry performs its own semantic checks (unknown plugins, variant
// collisions, families) and reports them as *registry.ConfigurationError.
func (c *Config) RegistryOptions() registry.Options {
	opts := registry.Options{
		Theme: registry.Theme{
			Colors:   registry.DefaultColors(),
			Spacing:  registry.DefaultSpacing(),
			DarkMode: c.Theme.DarkMode.String(),
		},
		Separator:   c.Build.Separator,
		Prefix:      c.Build.Prefix,
		Important:   c.Build.Important,
		CorePlugins: c.Build.CorePlugins,
	}
	maps.Copy(opts.Theme.Colors, c.Theme.Colors)
	maps.Copy(opts.Theme.Spacing, c.Theme.Spacing)
	for _, s := range c.Theme.Screens {
		opts.Theme.Screens = append(opts.Theme.Screens, registry.Screen{Name: s.Name, Min: s.Min})
	}

	for _, v := range c.Variants {
		opts.Variants = append(opts.Variants, registry.VariantSpec{
			Name:       v.Name,
			Kind:       v.Kind,
			Selector:   v.Selector,
			Combinator: v.Combinator,
			AtRule:     v.AtRule,
			Params:     v.Params,
		})
	}
	for _, u := range c.Utilities {
		spec := registry.UtilitySpec{Name: u.Name, Family: u.Family}
		for _, d := range u.Declarations {
			spec.Declarations = append(spec.Declarations, css.Declaration{Property: d.Property, Value: d.Value, Important: d.Important})
		}
		opts.Utilities = append(opts.Utilities, spec)
	}
	return opts
}

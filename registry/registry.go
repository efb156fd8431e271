// Package registry holds immutable lookup tables the generator resolves
// candidates against: variants, utilities and composable families. Tables
// are produced once by New from core definitions and user configuration
// and are only read afterwards, so a Registry is safe for concurrent use.
package registry

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"jitcss/css"
)

// Variant describes a named selector or at-rule transformation.
type Variant struct {
	Name string
	Kind VariantKind
	// compound: pseudo-class, attribute selector or template with '&';
	// ancestor: marker compound with state (".group:hover");
	// pseudo-element: element (`::before`).
	Selector   string
	Combinator string // ancestor only: " " or "~", ">", "+"
	AtRule     string // at-rule only, name without '@'
	Params     string // at-rule only
	Content    bool   // pseudo-element rules receive content seed
	Order      int    // registration order, later variants sort after
}

// Value is an input to utility generator.
type Value struct {
	Key       string // theme key or arbitrary value content (underscores already replaced)
	Arbitrary bool
	Negative  bool
	Alpha     string // resolved opacity modifier, empty when there is none
}

// Generator produces declarations for value, false when value does not
// apply to the utility.
type Generator func(Value) ([]css.Declaration, bool)

// Utility is a named declaration generator.
type Utility struct {
	Root     string // class name part before value ("scale-x" for "scale-x-110")
	Plugin   string // core plugin name, used for allow-list
	Family   string // composable family tag
	Tail     string // intrinsic selector tail, e.g. " > :not([hidden]) ~ :not([hidden])"
	Negative bool   // allows '-' prefix
	Alpha    bool   // accepts opacity modifier
	Order    int    // registration order
	Generate Generator
}

// Family is a group of utilities sharing custom property pipeline and
// default (reset) declarations.
type Family struct {
	Name     string
	Defaults []css.Declaration
}

// VariantSpec is a user defined variant as it comes from configuration.
type VariantSpec struct {
	Name       string
	Kind       string
	Selector   string
	Combinator string
	AtRule     string
	Params     string
}

// UtilitySpec is a user defined static utility.
type UtilitySpec struct {
	Name         string
	Family       string
	Declarations []css.Declaration
}

// Options define registry contents.
type Options struct {
	Theme       Theme
	Separator   string
	Prefix      string
	Important   bool
	CorePlugins []string // allow-list, empty means all
	Variants    []VariantSpec
	Utilities   []UtilitySpec
}

// Registry is the immutable lookup table built from Options.
type Registry struct {
	separator string
	prefix    string
	important bool
	theme     Theme

	variants  map[string]*Variant
	slots     map[string]int // orders reserved for parameterized variants
	utilities map[string][]*Utility
	families  map[string]*Family
	plugins   map[string]bool
	count     int

	fingerprint uint64
}

// New validates options and produces registry. All problems are reported
// as *ConfigurationError.
func New(opts Options, log *zap.Logger) (*Registry, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("registry")

	if opts.Separator == "" {
		opts.Separator = ":"
	}
	if len(opts.Theme.Screens) == 0 {
		opts.Theme.Screens = DefaultScreens()
	}
	if opts.Theme.Colors == nil {
		opts.Theme.Colors = DefaultColors()
	}
	if opts.Theme.Spacing == nil {
		opts.Theme.Spacing = DefaultSpacing()
	}
	switch opts.Theme.DarkMode {
	case "":
		opts.Theme.DarkMode = "media"
	case "media", "class":
	default:
		return nil, confErr("theme", "dark_mode", "unknown mode %q, expected media or class", opts.Theme.DarkMode)
	}

	r := &Registry{
		separator: opts.Separator,
		prefix:    opts.Prefix,
		important: opts.Important,
		theme:     opts.Theme,
		variants:  make(map[string]*Variant),
		slots:     make(map[string]int),
		utilities: make(map[string][]*Utility),
		families:  make(map[string]*Family),
	}

	if len(opts.CorePlugins) > 0 {
		r.plugins = make(map[string]bool, len(opts.CorePlugins))
		known := corePluginNames()
		for _, name := range opts.CorePlugins {
			if !known[name] {
				return nil, confErr("core-plugin", name, "unknown core plugin")
			}
			r.plugins[name] = true
		}
	}

	for _, f := range coreFamilies() {
		r.families[f.Name] = f
	}

	if err := r.registerVariants(opts.Variants); err != nil {
		return nil, err
	}
	if err := r.registerUtilities(opts.Utilities); err != nil {
		return nil, err
	}
	r.fingerprint = r.computeFingerprint(opts)

	log.Debug("Registry prepared",
		zap.Int("variants", len(r.variants)),
		zap.Int("utility roots", len(r.utilities)),
		zap.Int("families", len(r.families)),
		zap.Uint64("fingerprint", r.fingerprint))
	return r, nil
}

// Separator returns variant separator.
func (r *Registry) Separator() string {
	return r.separator
}

// Prefix returns utility class prefix.
func (r *Registry) Prefix() string {
	return r.prefix
}

// Important reports whether all generated declarations are !important.
func (r *Registry) Important() bool {
	return r.important
}

// Theme returns theme registry was built with.
func (r *Registry) Theme() Theme {
	return r.theme
}

// Fingerprint identifies registry contents, equal options give equal
// fingerprints.
func (r *Registry) Fingerprint() uint64 {
	return r.fingerprint
}

// Utilities returns utilities registered under root in registration order.
func (r *Registry) Utilities(root string) []*Utility {
	return r.utilities[root]
}

// Family returns composable family by name.
func (r *Registry) Family(name string) (*Family, bool) {
	f, ok := r.families[name]
	return f, ok
}

// FamilyNames returns names of all known families sorted.
func (r *Registry) FamilyNames() []string {
	names := make([]string, 0, len(r.families))
	for name := range r.families {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (r *Registry) enabled(plugin string) bool {
	return r.plugins == nil || plugin == "" || r.plugins[plugin]
}

func (r *Registry) addUtility(u *Utility) {
	if !r.enabled(u.Plugin) {
		return
	}
	r.count++
	u.Order = r.count
	r.utilities[u.Root] = append(r.utilities[u.Root], u)
}

func (r *Registry) registerUtilities(specs []UtilitySpec) error {
	registerCoreUtilities(r)

	seen := make(map[string]bool, len(specs))
	for _, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		switch {
		case name == "":
			return confErr("utility", "<empty>", "name is required")
		case seen[name]:
			return confErr("utility", name, "defined more than once")
		case len(spec.Declarations) == 0:
			return confErr("utility", name, "no declarations")
		case strings.Contains(name, r.separator):
			return confErr("utility", name, "name contains variant separator %q", r.separator)
		}
		if spec.Family != "" {
			if _, ok := r.families[spec.Family]; !ok {
				return confErr("utility", name, "unknown family %q", spec.Family)
			}
		}
		for _, d := range spec.Declarations {
			if d.Property == "" {
				return confErr("utility", name, "declaration without property")
			}
		}
		seen[name] = true

		decls := slices.Clone(spec.Declarations)
		r.addUtility(&Utility{
			Root:     name,
			Family:   spec.Family,
			Generate: static(decls...),
		})
	}
	return nil
}

func (r *Registry) computeFingerprint(opts Options) uint64 {
	h := xxhash.New()
	fmt.Fprintf(h, "sep=%s|prefix=%s|important=%t|dark=%s\n", r.separator, r.prefix, r.important, r.theme.DarkMode)
	for _, s := range r.theme.Screens {
		fmt.Fprintf(h, "screen=%s:%s\n", s.Name, s.Min)
	}
	writeSorted(h, "color", r.theme.Colors)
	writeSorted(h, "spacing", r.theme.Spacing)
	plugins := slices.Clone(opts.CorePlugins)
	slices.Sort(plugins)
	fmt.Fprintf(h, "plugins=%s\n", strings.Join(plugins, ","))
	for _, v := range opts.Variants {
		fmt.Fprintf(h, "variant=%+v\n", v)
	}
	for _, u := range opts.Utilities {
		fmt.Fprintf(h, "utility=%s:%s:%v\n", u.Name, u.Family, u.Declarations)
	}
	return h.Sum64()
}

func writeSorted(h *xxhash.Digest, kind string, m map[string]string) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(h, "%s=%s:%s\n", kind, k, m[k])
	}
}

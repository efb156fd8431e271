// Package utility resolves base utility names into declaration blocks.
package utility

import (
	"errors"
	"fmt"
	"strings"

	"jitcss/css"
	"jitcss/registry"
)

var (
	// ErrUnrecognized is returned when no registered utility produces
	// declarations for the name.
	ErrUnrecognized = errors.New("unrecognized utility")
	// ErrInvalidModifier is returned when utility matched but modifier does
	// not apply to it.
	ErrInvalidModifier = errors.New("invalid modifier")
)

// ArbitraryPropertyOrder places arbitrary properties after all registered
// utilities.
const ArbitraryPropertyOrder = 1 << 30

// Result is a resolved utility.
type Result struct {
	Declarations []css.Declaration
	Family       *registry.Family // nil when utility is not part of composable family
	Tail         string           // intrinsic selector tail
	Order        int
}

// Resolver resolves names against registry.
type Resolver struct {
	reg *registry.Registry
}

// New creates resolver.
func New(reg *registry.Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve resolves base utility name (variants, "!", "-" and prefix already
// removed). Name may carry "/modifier" or bracketed arbitrary value.
func (r *Resolver) Resolve(name string, negative bool) (Result, error) {
	if prop, value, ok := arbitraryProperty(name); ok {
		if negative {
			return Result{}, fmt.Errorf("%w: negative arbitrary property %q", ErrUnrecognized, name)
		}
		return Result{
			Declarations: []css.Declaration{{Property: prop, Value: value}},
			Order:        ArbitraryPropertyOrder,
		}, nil
	}

	res, err := r.resolve(name, "", negative)
	if err == nil || errors.Is(err, ErrInvalidModifier) {
		return res, err
	}

	if i := lastTopLevel(name, '/'); i > 0 && i < len(name)-1 {
		return r.resolve(name[:i], name[i+1:], negative)
	}
	return Result{}, err
}

func (r *Resolver) resolve(name, modifier string, negative bool) (Result, error) {
	var alpha string
	if modifier != "" {
		key, arbitrary := unbracket(modifier)
		a, ok := registry.Opacity(key, arbitrary)
		if !ok {
			return Result{}, fmt.Errorf("%w: %q", ErrInvalidModifier, modifier)
		}
		alpha = a
	}

	invalidModifier := false
	for _, split := range splits(name) {
		utilities := r.reg.Utilities(split.root)
		if len(utilities) == 0 {
			continue
		}
		key, arbitrary := unbracket(split.value)
		if arbitrary && key == "" {
			continue
		}
		for _, u := range utilities {
			if negative && !u.Negative {
				continue
			}
			if alpha != "" && !u.Alpha {
				invalidModifier = true
				continue
			}
			decls, ok := u.Generate(registry.Value{Key: key, Arbitrary: arbitrary, Negative: negative, Alpha: alpha})
			if !ok {
				continue
			}
			res := Result{Declarations: decls, Tail: u.Tail, Order: u.Order}
			if u.Family != "" {
				if f, ok := r.reg.Family(u.Family); ok {
					res.Family = f
				}
			}
			return res, nil
		}
	}
	if invalidModifier {
		return Result{}, fmt.Errorf("%w: %q on %q", ErrInvalidModifier, modifier, name)
	}
	return Result{}, fmt.Errorf("%w: %q", ErrUnrecognized, name)
}

type split struct {
	root, value string
}

// splits returns root/value permutations of name, longest root first.
// Dashes inside brackets never split.
func splits(name string) []split {
	out := []split{{root: name}}
	depth := 0
	var dashes []int
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case '-':
			if depth == 0 && i > 0 && i < len(name)-1 {
				dashes = append(dashes, i)
			}
		}
	}
	for j := len(dashes) - 1; j >= 0; j-- {
		i := dashes[j]
		out = append(out, split{root: name[:i], value: name[i+1:]})
	}
	return out
}

// unbracket returns arbitrary value content when v is "[...]".
func unbracket(v string) (string, bool) {
	if len(v) >= 2 && v[0] == '[' && v[len(v)-1] == ']' {
		return registry.DecodeArbitrary(v[1 : len(v)-1]), true
	}
	return v, false
}

// arbitraryProperty parses "[property:value]".
func arbitraryProperty(name string) (string, string, bool) {
	inner, ok := unbracket(name)
	if !ok {
		return "", "", false
	}
	prop, value, ok := strings.Cut(inner, ":")
	if !ok || prop == "" || strings.TrimSpace(value) == "" {
		return "", "", false
	}
	for _, c := range prop {
		if !(c == '-' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return "", "", false
		}
	}
	return prop, value, true
}

func lastTopLevel(s string, c byte) int {
	depth := 0
	pos := -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case c:
			if depth == 0 {
				pos = i
			}
		}
	}
	return pos
}

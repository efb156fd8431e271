// Package common keeps enumerations shared by configuration, the generator
// and the CSS writer. Keeping them apart from config lets library packages
// use them without pulling configuration loading in.
package common

// Cascade layer a generated or authored rule belongs to. Authored rules outside
// of any @layer block are "unlayered".
// ENUM(unlayered, base, components, utilities)
type Layer int

// Generated returns true for layers which are populated by the generator.
func (l Layer) Generated() bool {
	return l == LayerBase || l == LayerComponents || l == LayerUtilities
}

// Formatting of produced stylesheet.
// ENUM(expanded, compact)
type OutputStyle int

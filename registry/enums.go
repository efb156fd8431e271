package registry

// Shape of selector transformation a variant performs.
// ENUM(compound, ancestor, at-rule, pseudo-element)
type VariantKind int

package registry

import (
	"fmt"
)

// ConfigurationError reports malformed registry entry. It is fatal and is
// returned before any candidate is processed.
type ConfigurationError struct {
	Entry  string // "variant:<name>", "utility:<name>", "core-plugin:<name>"...
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Entry, e.Reason)
}

func confErr(kind, name, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Entry: kind + ":" + name, Reason: fmt.Sprintf(format, args...)}
}

//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

// EnableColorOutput reports whether level colors may be written to stream.
func EnableColorOutput(stream *os.File) bool {
	return colorAllowed(os.LookupEnv) && term.IsTerminal(int(stream.Fd()))
}

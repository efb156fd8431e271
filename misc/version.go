// Package misc holds program identity information stamped at build time.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X jitcss/misc.version=... -X jitcss/misc.githash=..."
var (
	appName = "jitcss"
	version = "dev"
	githash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns hash stamped at link time or, when absent, VCS revision
// recorded by the toolchain.
func GetGitHash() string {
	if len(githash) > 0 {
		return githash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}

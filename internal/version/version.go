// Package version carries build metadata injected by ldflags.
package version

import (
	"fmt"
	"runtime/debug"
)

// Build-time variables set by ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const modulePath = "github.com/MeKo-Tech/scancode"

func init() {
	if Version != "dev" {
		return
	}
	// Without ldflags, fall back to the module version recorded by the
	// go tool when scancode is a dependency.
	if info, ok := debug.ReadBuildInfo(); ok {
		Version = moduleVersion(info)
	}
}

func moduleVersion(info *debug.BuildInfo) string {
	for _, dep := range info.Deps {
		if dep.Path == modulePath && dep.Version != "" {
			return dep.Version
		}
	}
	if info.Main.Path == modulePath && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// Info returns version information
func Info() (string, string, string) {
	return Version, GitCommit, BuildDate
}

// String formats the version information for logs.
func String() string {
	return fmt.Sprintf("scancode %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}

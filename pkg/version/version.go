// Package version exposes build metadata for unicheck binaries.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	Version string // Set via ldflags.

	Revision  = getRevision()
	GoVersion = runtime.Version()
)

// GetVersion returns the release version if one was linked in, and the VCS
// revision otherwise.
func GetVersion() string {
	if Version != "" {
		return Version
	}

	return Revision
}

// String returns a human-readable version line.
func String() string {
	return fmt.Sprintf("%s (%s %s/%s)", GetVersion(), GoVersion, runtime.GOOS, runtime.GOARCH)
}

func getRevision() string {
	rev := "unknown"

	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return rev
	}

	modified := false

	for _, v := range buildInfo.Settings {
		switch v.Key {
		case "vcs.revision":
			if len(v.Value) > 7 {
				rev = v.Value[:7]
			} else {
				rev = v.Value
			}

		case "vcs.modified":
			if v.Value == "true" {
				modified = true
			}
		}
	}

	if modified {
		return rev + "-dirty"
	}

	return rev
}

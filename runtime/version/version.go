// Package version returns the version string of the running binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// The value of these vars are set through linker options.
var (
	gitCommit = "Local build"
	buildDate = "Moments ago"
	gitTag    = "Unknown"
)

// Version returns the version string of this build.
func Version() string {
	return fmt.Sprintf("%s. Built at: %s", BuildData(), buildDate)
}

// BuildData returns the git tag and commit of the current build. Local builds
// fall back to the VCS revision recorded by the Go toolchain.
func BuildData() string {
	commit := gitCommit
	if commit == "Local build" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}
	return fmt.Sprintf("Cortex/%s/%s", gitTag, commit)
}

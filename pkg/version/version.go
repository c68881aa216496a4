// Package version reports the build version, set at link time with
//
//	-ldflags "-X github.com/contractlens/contractlens/pkg/version.version=v1.2.3"
package version

import "runtime/debug"

//nolint:gochecknoglobals // Set via -ldflags.
var (
	version = ""
	commit  = ""
)

// GetVersion returns the linked version, the module version when built with
// go install, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return "dev"
}

// GetCommit returns the linked commit hash, if any.
func GetCommit() string {
	return commit
}

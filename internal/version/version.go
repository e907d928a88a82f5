// Package version reports the stamper release.
package version

import (
	"runtime/debug"
	"strings"
)

// version is set at build time with -ldflags "-X".
var version = ""

// GetVersion returns the release version, the module version recorded in
// the build info, or "dev".
func GetVersion() string {
	if version != "" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return strings.TrimPrefix(info.Main.Version, "v")
	}
	return "dev"
}

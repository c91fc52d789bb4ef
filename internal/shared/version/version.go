// Package version reports the build version stamped at link time:
//
//	go build -ldflags "-X shelfwatch/internal/shared/version.Version=1.4.0"
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set by the linker; unstamped builds report "dev".
var Version = "dev"

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// String returns the canonical semver of the build, or "dev" when the
// stamped value is missing or not a valid semantic version.
func String() string {
	v := Normalize(Version)
	if !semver.IsValid(v) {
		return "dev"
	}
	return semver.Canonical(v)
}

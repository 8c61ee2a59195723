// Package version provides build version information embedding.
//
// Version is set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/mkarakas/authkit/version.Version=1.0.0"
package version

import (
	"fmt"
	"runtime/debug"
)

// Version is set at build time using -ldflags. Defaults to "dev".
var Version = "dev"

// String returns the resolved version: the ldflags value if set, otherwise
// the module version recorded in build info.
func String() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return Version
}

// UserAgent returns the User-Agent value sent on outbound provider calls.
func UserAgent() string {
	return fmt.Sprintf("authkit-go/%s", String())
}

package domain

import "runtime"

// KnownPlatforms is the set of platform tags recognized by skip specifiers.
var KnownPlatforms = NewStringSet(
	"linux-32", "linux-64",
	"osx-64", "osx-arm64",
	"win-32", "win-64",
)

// CurrentPlatform returns the platform tag of the running host.
func CurrentPlatform() string {
	switch runtime.GOOS {
	case "darwin":
		if runtime.GOARCH == "arm64" {
			return "osx-arm64"
		}
		return "osx-64"
	case "windows":
		if runtime.GOARCH == "386" {
			return "win-32"
		}
		return "win-64"
	default:
		if runtime.GOARCH == "386" {
			return "linux-32"
		}
		return "linux-64"
	}
}

package version

import (
	"fmt"
	"runtime/debug"

	"github.com/Masterminds/semver/v3"
)

// You can set the version at build time using something like:
// go build -ldflags "-X github.com/vsariola/wavedit/version.Version=$(git describe --dirty)"

var Version string

var Hash = func() string {
	if info, ok := debug.ReadBuildInfo(); ok {
		modified := false
		for _, setting := range info.Settings {
			if setting.Key == "vcs.modified" && setting.Value == "true" {
				modified = true
				break
			}
		}
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
				shortHash := setting.Value[:7]
				if modified {
					return shortHash + "-dirty"
				}
				return shortHash
			}
		}
	}
	return ""
}()

var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if Hash != "" {
		return Hash
	}
	return "devel"
}()

// Semver parses Version as a semantic version. It returns nil for development
// builds, whose version is a commit hash.
func Semver() *semver.Version {
	if Version == "" {
		return nil
	}
	v, err := semver.NewVersion(Version)
	if err != nil {
		return nil
	}
	return v
}

// Display is the version shown by the -v flag of the tools: the normalized
// semantic version plus the commit hash when both are known.
func Display() string {
	v := Semver()
	if v == nil {
		return VersionOrHash
	}
	if Hash != "" {
		return fmt.Sprintf("v%v (%v)", v, Hash)
	}
	return "v" + v.String()
}

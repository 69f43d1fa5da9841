package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Build-time identity, injected via -ldflags:
//
//	-X github.com/ternarybob/doctrina/internal/common.Version=...
var (
	Version   = "dev"
	Build     = "unknown"
	GitCommit = "unknown"
)

// versionFileName sits next to the binary and, when present, overrides
// the compiled-in version
const versionFileName = ".version"

// GetVersion returns the current version string
func GetVersion() string {
	return Version
}

// GetBuild returns the build timestamp
func GetBuild() string {
	return Build
}

// GetGitCommit returns the git commit hash
func GetGitCommit() string {
	return GitCommit
}

// GetFullVersion returns the version with build and commit detail, used
// in crash reports and the version endpoint
func GetFullVersion() string {
	return fmt.Sprintf("%s (build: %s, commit: %s)", Version, Build, GitCommit)
}

// LoadVersionFromFile replaces the compiled-in version with the contents
// of the .version file beside the executable, when one exists. Returns
// the effective version either way.
func LoadVersionFromFile() string {
	exePath, err := os.Executable()
	if err != nil {
		return Version
	}

	data, err := os.ReadFile(filepath.Join(filepath.Dir(exePath), versionFileName))
	if err != nil {
		return Version
	}

	if v := strings.TrimSpace(string(data)); v != "" {
		Version = v
	}

	return Version
}

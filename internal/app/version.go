package app

import (
	"fmt"

	fyneui "github.com/tejashwikalptaru/themetune/internal/adapter/ui/fyne"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/tejashwikalptaru/themetune/internal/app.Version=1.2.0" ./cmd
var (
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = ""
	BuildTime = "unknown"
)

// VersionInfo describes the running build.
type VersionInfo struct {
	Version   string
	GitCommit string
	GitTag    string
	BuildTime string
}

// GetVersionInfo returns the build variables.
func GetVersionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		GitTag:    GitTag,
		BuildTime: BuildTime,
	}
}

// Release is the tag when the build was tagged, otherwise the version.
func (v VersionInfo) Release() string {
	if v.GitTag != "" {
		return v.GitTag
	}
	return v.Version
}

// FullString is what --version prints and what startup logs.
func (v VersionInfo) FullString() string {
	return fmt.Sprintf("%s %s (commit: %s, built: %s)", fyneui.AppName, v.Release(), v.GitCommit, v.BuildTime)
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// AppBuildInfo is the version stamp injected into vaultd and vaultctl with
// -ldflags. The daemon reports BuildVersion over /api/version/.
type AppBuildInfo struct {
	buildVersion string
	buildDate    string
	buildCommit  string
}

// NewAppBuildInfo constructs [AppBuildInfo] from the provided build metadata.
func NewAppBuildInfo(buildVersion, buildDate, buildCommit string) AppBuildInfo {
	return AppBuildInfo{
		buildVersion: buildVersion,
		buildDate:    buildDate,
		buildCommit:  buildCommit,
	}
}

// BuildVersion returns the semantic version string of the build.
func (a AppBuildInfo) BuildVersion() string {
	return a.buildVersion
}

// BuildDate returns the build timestamp string.
func (a AppBuildInfo) BuildDate() string {
	return a.buildDate
}

// BuildCommit returns the source-control commit hash used for the build.
func (a AppBuildInfo) BuildCommit() string {
	return a.buildCommit
}

// String renders the stamp as "version (commit, date)", omitting empty parts.
func (a AppBuildInfo) String() string {
	switch {
	case a.buildCommit == "" && a.buildDate == "":
		return a.buildVersion
	case a.buildDate == "":
		return fmt.Sprintf("%s (%s)", a.buildVersion, a.buildCommit)
	case a.buildCommit == "":
		return fmt.Sprintf("%s (%s)", a.buildVersion, a.buildDate)
	}
	return fmt.Sprintf("%s (%s, %s)", a.buildVersion, a.buildCommit, a.buildDate)
}

/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package version reports the mishtanim build's version, from ldflags
// when the release build sets them, else from module build info.
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

var (
	// Set at build time via ldflags.
	Version   = "dev"
	GitCommit = "unknown"
	GitTag    = "unknown"
	BuildTime = "unknown"
	GitDirty  = ""
)

// Get returns the version string for the application.
func Get() string {
	if Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	if GitTag != "unknown" && GitCommit != "unknown" {
		return fromGit()
	}

	return "dev"
}

// fromGit assembles tag-commit[-dirty] from the ldflags values.
func fromGit() string {
	version := GitTag
	if GitCommit != "" {
		suffix := GitCommit
		if len(suffix) > 7 {
			suffix = suffix[:7]
		}
		if !strings.HasSuffix(GitTag, suffix) {
			version = fmt.Sprintf("%s-%s", GitTag, suffix)
		}
	}
	if GitDirty == "dirty" {
		version += "-dirty"
	}
	return version
}

// UserAgent returns the User-Agent header value outbound HTTP requests
// identify themselves with.
func UserAgent() string {
	return "mishtanim/" + Get()
}

// Full returns detailed version information.
func Full() string {
	version := Get()
	if GitCommit != "unknown" {
		return fmt.Sprintf("%s (commit: %s)", version, GitCommit)
	}
	return version
}

// Info returns detailed build information.
func Info() map[string]string {
	return map[string]string{
		"version":   Get(),
		"gitCommit": GitCommit,
		"gitTag":    GitTag,
		"buildTime": BuildTime,
		"gitDirty":  GitDirty,
	}
}

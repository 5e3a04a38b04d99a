package main

import (
	"runtime"

	"github.com/inferloop/tabclean/pkg/constants"
)

// GitCommit and BuildDate are stamped at build time through -ldflags.
var (
	Version   = constants.AppVersion
	GitCommit = "unknown"
	BuildDate = "unknown"
)

type BuildInfo struct {
	Version   string
	GitCommit string
	BuildDate string
	GoVersion string
	Platform  string
}

func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// Package provenance describes the software environment that produced
// an artifact.
package provenance

import (
	"runtime"
	"runtime/debug"
)

// Unknown marks values that could not be determined.
const Unknown = "unknown"

// KeyModules are dependencies whose versions affect produced artifacts.
var KeyModules = []string{
	"github.com/gnames/gnparser",
	"github.com/spf13/cobra",
	"github.com/jackc/pgx/v5",
	"modernc.org/sqlite",
}

// Environment is a snapshot of the runtime environment.
type Environment struct {
	GoVersion    string            `json:"go_version"`
	Platform     string            `json:"platform"`
	Dependencies map[string]string `json:"dependencies"`
}

// Collect returns the current environment. Versions of modules that
// are not found in build information are recorded as Unknown.
func Collect() Environment {
	res := Environment{
		GoVersion:    runtime.Version(),
		Platform:     runtime.GOOS + "/" + runtime.GOARCH,
		Dependencies: make(map[string]string, len(KeyModules)),
	}
	for _, v := range KeyModules {
		res.Dependencies[v] = Unknown
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return res
	}
	for _, dep := range info.Deps {
		if _, ok := res.Dependencies[dep.Path]; !ok {
			continue
		}
		if dep.Replace != nil && dep.Replace.Version != "" {
			res.Dependencies[dep.Path] = dep.Replace.Version
			continue
		}
		if dep.Version != "" {
			res.Dependencies[dep.Path] = dep.Version
		}
	}
	return res
}

// Package version contains build details, set at link time with
// -ldflags "-X github.com/ohsu-comp-bio/balancer/version.Version=...".
package version

import (
	"fmt"
	"strings"
)

// Build and version details
var (
	GitCommit   = ""
	GitBranch   = ""
	GitUpstream = ""
	BuildDate   = ""
	Version     = "unknown"
)

// Info describes a build.
type Info struct {
	GitCommit   string
	GitBranch   string
	GitUpstream string
	BuildDate   string
	Version     string
}

// Get returns the details of the running build.
func Get() Info {
	return Info{
		GitCommit:   GitCommit,
		GitBranch:   GitBranch,
		GitUpstream: GitUpstream,
		BuildDate:   BuildDate,
		Version:     Version,
	}
}

// String formats the build details, one per line. Unset details are skipped,
// except the version.
func (i Info) String() string {
	var lines []string
	add := func(name, val string) {
		if val != "" {
			lines = append(lines, fmt.Sprintf("%s: %s", name, val))
		}
	}
	add("git commit", i.GitCommit)
	add("git branch", i.GitBranch)
	add("git upstream", i.GitUpstream)
	add("build date", i.BuildDate)
	lines = append(lines, "version: "+i.Version)
	return strings.Join(lines, "\n")
}

// LogFields returns the build details as logger key/value pairs.
func (i Info) LogFields() []interface{} {
	return []interface{}{
		"GitCommit", i.GitCommit,
		"GitBranch", i.GitBranch,
		"BuildDate", i.BuildDate,
		"Version", i.Version,
	}
}

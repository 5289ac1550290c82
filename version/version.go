package version

import (
	"runtime"
	"runtime/debug"
	"strings"
)

// ModulePath identifies this module in build information.
const ModulePath = "github.com/kbukum/elevenlabs-stt"

// Set at build time with -ldflags. When Version is left at "dev" and the
// module is built as a dependency, the version recorded by the go tool is
// used instead.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	IsDirty   bool   `json:"is_dirty,omitempty"`
}

// Get returns the build information, falling back to what the go tool
// embedded for fields not set with -ldflags.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" {
		info.Version = moduleVersion(bi)
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		}
	}
	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	return info
}

func moduleVersion(bi *debug.BuildInfo) string {
	if bi.Main.Path == ModulePath && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	for _, dep := range bi.Deps {
		if dep.Path == ModulePath {
			return dep.Version
		}
	}
	return "dev"
}

// Short returns the version with the commit appended, e.g. "v1.2.0-abc1234".
func Short() string {
	info := Get()
	v := info.Version
	if info.GitCommit != "" && !strings.Contains(v, info.GitCommit) {
		v += "-" + info.GitCommit
	}
	if info.IsDirty {
		v += "-dirty"
	}
	return v
}

// UserAgent is sent with every API request.
func UserAgent() string {
	return "elevenlabs-stt-go/" + Get().Version
}

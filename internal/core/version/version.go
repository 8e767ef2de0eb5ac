// Package version reports build metadata and the sign table revision in use.
package version

import (
	"strconv"

	"akkadian/internal/core/signtable"
)

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Table   string `json:"sign_table,omitempty"`
}

// Info returns the build information. version, commit and date are set with
// -ldflags "-X 'akkadian/internal/core/version.version=v0.3.0' ..."
func Info() BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
		Table:   tableRevision(),
	}
}

// tableRevision is "<name>@v<schema>" for the embedded table, empty when it fails to load
func tableRevision() string {
	t, err := signtable.Default()
	if err != nil {
		return ""
	}
	name, _ := t.Meta["name"].(string)
	if name == "" {
		name = "signs"
	}
	return name + "@v" + strconv.Itoa(t.Version)
}

var (
	service = "akkadian-api"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

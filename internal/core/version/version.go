// Package version provides information about the build version of taupe.
package version

import (
	"fmt"
	"io"
)

// Project metadata shown by -version and the meta endpoint
const (
	Name        = "taupe"
	Description = "Taupe: extract the URLs from your personal Twitter archive"
	URL         = "https://github.com/mhucka/taupe"
	License     = "BSD 3-clause license"
)

// BuildInfo holds version information about the build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	URL     string `json:"url"`
	License string `json:"license"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'taupe/internal/core/version.version=v0.1.0'
	// -X 'taupe/internal/core/version.commit=abcd' -X 'taupe/internal/core/version.date=2026-10-19'"
	return BuildInfo{
		Service: Name,
		Version: version,
		Commit:  commit,
		Date:    date,
		URL:     URL,
		License: License,
	}
}

// For returns Info with the service renamed, for binaries other than the CLI
func For(service string) BuildInfo {
	bi := Info()
	if service != "" {
		bi.Service = service
	}
	return bi
}

// Print writes the human-readable version block
func Print(w io.Writer, bi BuildInfo) error {
	_, err := fmt.Fprintf(w, "%s version %s (commit %s, built %s)\nURL: %s\nLicense: %s\n",
		bi.Service, bi.Version, bi.Commit, bi.Date, bi.URL, bi.License)
	return err
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

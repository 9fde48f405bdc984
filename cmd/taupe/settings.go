package main

import (
	"flag"

	"taupe/internal/platform/config"
	pstrings "taupe/internal/platform/strings"
)

// settings is the optional YAML file read with -config (or TAUPE_CONFIG).
// Flags given on the command line win over the file
type settings struct {
	Extract   string `yaml:"extract"`
	Canonical *bool  `yaml:"canonical_urls"`
	Output    string `yaml:"output"`
	Debug     string `yaml:"debug"`
}

// options is the resolved invocation
type options struct {
	canonical bool
	extract   string
	output    string
	config    string
	debug     string
	version   bool
	archive   string
}

// settingsPath picks -config, else TAUPE_CONFIG
func settingsPath(o options, cfg config.Conf) string {
	return pstrings.Coalesce(o.config, cfg.MayString("CONFIG", ""))
}

// merge fills options not set on the command line from s
func merge(o options, s settings, set map[string]bool) options {
	if !set["extract"] && s.Extract != "" {
		o.extract = s.Extract
	}
	if !set["canonical"] && s.Canonical != nil {
		o.canonical = *s.Canonical
	}
	if !set["output"] && s.Output != "" {
		o.output = s.Output
	}
	if !set["debug"] && s.Debug != "" {
		o.debug = s.Debug
	}
	return o
}

// visited reports which options were given on the command line, folding
// short and long spellings together
func visited(flags *flag.FlagSet) map[string]bool {
	aliases := map[string]string{
		"c": "canonical", "canonical-urls": "canonical",
		"e": "extract", "extract": "extract",
		"o": "output", "output": "output",
		"debug": "debug",
	}
	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) {
		if name, ok := aliases[f.Name]; ok {
			set[name] = true
		}
	})
	return set
}

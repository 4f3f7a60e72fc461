// Package config loads the optional project configuration file and merges it
// into the effective scan settings. Merging is non-destructive: a file value
// is applied only where the caller (normally a CLI flag) left the default, so
// flags always win over the file and the file wins over built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/htmlentry/htmlentry/internal/entry"
	"github.com/htmlentry/htmlentry/internal/pathfilter"
)

// DefaultFileName is looked up in the project directory when no explicit
// config path is given.
const DefaultFileName = "htmlentry.yaml"

// Settings is everything the CLI needs for one run: the scan options plus
// where and how to write the result.
type Settings struct {
	Options entry.Options
	Out     string // output file path; empty means stdout
	Format  string // "json" or "yaml"; empty means json
}

// File mirrors the YAML configuration file. Absent fields keep defaults.
type File struct {
	Root       string   `yaml:"root"`
	Recursive  *bool    `yaml:"recursive"`
	Extensions []string `yaml:"extensions"`
	Exclude    []string `yaml:"exclude"`
	Verbose    *bool    `yaml:"verbose"`
	Out        string   `yaml:"out"`
	Format     string   `yaml:"format"`
}

// Load reads and parses a configuration file. Unknown keys are rejected so
// typos fail loudly instead of silently scanning the wrong thing.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if f.Format != "" && f.Format != "json" && f.Format != "yaml" {
		return nil, fmt.Errorf("%s: unsupported format %q", path, f.Format)
	}

	return &f, nil
}

// LoadProject looks for the default config file in projectDir. A missing file
// is not an error; there just is no file config.
func LoadProject(projectDir string) (*File, error) {
	f, err := Load(filepath.Join(projectDir, DefaultFileName))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return f, err
}

// Merge applies file values into dst wherever dst still holds its zero value.
// Exclusion rules from the file are appended after any rules already present,
// preserving the caller's ordering guarantees.
func (f *File) Merge(dst *Settings) error {
	if f == nil {
		return nil
	}

	if dst.Options.Root == "" && f.Root != "" {
		dst.Options.Root = f.Root
	}
	if !dst.Options.Recursive && f.Recursive != nil {
		dst.Options.Recursive = *f.Recursive
	}
	if len(dst.Options.Extensions) == 0 && len(f.Extensions) > 0 {
		dst.Options.Extensions = append([]string(nil), f.Extensions...)
	}
	if !dst.Options.Verbose && f.Verbose != nil {
		dst.Options.Verbose = *f.Verbose
	}
	if dst.Out == "" && f.Out != "" {
		dst.Out = f.Out
	}
	if dst.Format == "" && f.Format != "" {
		dst.Format = f.Format
	}

	for _, rule := range f.Exclude {
		p, err := pathfilter.Compile(rule)
		if err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", rule, err)
		}
		dst.Options.Exclude = append(dst.Options.Exclude, p)
	}

	return nil
}

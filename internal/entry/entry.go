// Package entry builds bundler entry-point mappings from the HTML files in a
// project directory.
package entry

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/htmlentry/htmlentry/internal/log"
	"github.com/htmlentry/htmlentry/internal/naming"
	"github.com/htmlentry/htmlentry/internal/pathfilter"
	"github.com/htmlentry/htmlentry/internal/rootdir"
)

// Options controls a scan. The zero value scans the project directory itself,
// non-recursively, with the default HTML extensions and no exclusions.
type Options struct {
	// Root is an optional folder override relative to the project directory.
	// It must not escape the project directory.
	Root string
	// Exclude holds ordered exclusion rules checked against each candidate's
	// slash-normalized path relative to the scan root.
	Exclude []pathfilter.Pattern
	// Extensions overrides the candidate extensions (default .html, .htm).
	Extensions []string
	// Format optionally rewrites derived entry names.
	Format naming.Formatter
	// Recursive descends into subdirectories of the scan root.
	Recursive bool
	// Verbose logs every keep/skip decision at debug level.
	Verbose bool
}

// Map is the entry mapping: unique entry name to absolute file path. It is
// built fresh on every scan and never persisted.
type Map map[string]string

// Names returns the entry names in sorted order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Decision records what the scanner did with one candidate file.
type Decision struct {
	RelPath  string `json:"path"`
	Name     string `json:"name,omitempty"`
	Excluded bool   `json:"excluded,omitempty"`
	Rule     string `json:"rule,omitempty"`
}

// Report is the full result of a scan: the mapping plus one decision per
// candidate, in scan order.
type Report struct {
	Root      string     `json:"root"`
	Entries   Map        `json:"entries"`
	Decisions []Decision `json:"decisions,omitempty"`
}

// Scan resolves the root, reads it, and returns the entry mapping.
func Scan(projectDir string, opts Options) (Map, error) {
	report, err := ScanReport(projectDir, opts)
	if err != nil {
		return nil, err
	}
	return report.Entries, nil
}

// ScanReport is Scan plus the per-file decisions, for diagnostics.
func ScanReport(projectDir string, opts Options) (Report, error) {
	root, err := rootdir.Resolve(projectDir, opts.Root)
	if err != nil {
		return Report{}, err
	}

	filter := pathfilter.New(&pathfilter.Config{
		Extensions: opts.Extensions,
		Exclude:    opts.Exclude,
	})

	candidates, err := collect(root, opts.Recursive, filter)
	if err != nil {
		return Report{}, err
	}
	sort.Strings(candidates)

	logger := log.WithComponent("scan")

	report := Report{
		Root:    root,
		Entries: make(Map, len(candidates)),
	}
	for _, rel := range candidates {
		if rule, excluded := filter.Excluded(rel); excluded {
			if opts.Verbose {
				logger.Debug().Str("path", rel).Str("rule", rule.String()).Msg("excluded")
			}
			report.Decisions = append(report.Decisions, Decision{
				RelPath:  rel,
				Excluded: true,
				Rule:     rule.String(),
			})
			continue
		}

		name := deriveName(rel, opts.Format)
		name = disambiguate(report.Entries, name, rel)

		report.Entries[name] = filepath.Join(root, rel)
		report.Decisions = append(report.Decisions, Decision{RelPath: rel, Name: name})
		if opts.Verbose {
			logger.Debug().Str("path", rel).Str("name", name).Msg("entry added")
		}
	}

	return report, nil
}

// collect gathers the candidate files under root as slash-relative paths.
func collect(root string, recursive bool, filter *pathfilter.Filter) ([]string, error) {
	var candidates []string

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("read scan root: %w", err)
		}
		for _, e := range entries {
			if !e.Type().IsRegular() {
				continue
			}
			if filter.IsCandidate(e.Name()) {
				candidates = append(candidates, e.Name())
			}
		}
		return candidates, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = strings.ReplaceAll(rel, string(filepath.Separator), "/")
		if filter.IsCandidate(rel) {
			candidates = append(candidates, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk scan root: %w", err)
	}
	return candidates, nil
}

func deriveName(rel string, format naming.Formatter) string {
	name := naming.FromPath(rel)
	if format != nil {
		if formatted := format(name, rel); formatted != "" {
			name = formatted
		}
	}
	return name
}

// disambiguate keeps entry names unique. Candidates are processed in sorted
// order, so suffix assignment is stable across runs.
func disambiguate(entries Map, name, rel string) string {
	if _, taken := entries[name]; !taken {
		return name
	}
	base := naming.Disambiguate(name, rel)
	if _, taken := entries[base]; !taken {
		return base
	}
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if _, taken := entries[candidate]; !taken {
			return candidate
		}
	}
}

// Package htmlentry scans a project directory for HTML files and wires each
// one as a named bundler entry point. The mapping merges into an esbuild
// build configuration without clobbering caller-supplied settings.
//
// The package is a facade over the internal scanner so that build scripts can
// depend on a single import:
//
//	entries, err := htmlentry.Scan("./site", htmlentry.Options{Recursive: true})
//	if err != nil {
//		return err
//	}
//	opts := htmlentry.MergeBuildOptions(api.BuildOptions{Bundle: true}, entries)
package htmlentry

import (
	"regexp"

	"github.com/evanw/esbuild/pkg/api"

	"github.com/htmlentry/htmlentry/internal/bundler"
	"github.com/htmlentry/htmlentry/internal/entry"
	"github.com/htmlentry/htmlentry/internal/naming"
	"github.com/htmlentry/htmlentry/internal/pathfilter"
)

// Options controls a scan. See the field documentation on entry.Options; the
// zero value scans the project directory itself with default settings.
type Options = entry.Options

// Map is the produced entry mapping: unique entry name to absolute file path.
type Map = entry.Map

// Pattern is one exclusion rule, exact path or regular expression.
type Pattern = pathfilter.Pattern

// Formatter rewrites a derived entry name.
type Formatter = naming.Formatter

// Scan builds the entry mapping for projectDir.
func Scan(projectDir string, opts Options) (Map, error) {
	return entry.Scan(projectDir, opts)
}

// Exclude returns an exact-match exclusion rule.
func Exclude(relPath string) Pattern {
	return pathfilter.Exact(relPath)
}

// ExcludeRegexp returns a regular-expression exclusion rule.
func ExcludeRegexp(re *regexp.Regexp) Pattern {
	return pathfilter.Regexp(re)
}

// MergeBuildOptions appends the mapping to an esbuild configuration. Caller
// settings always win; the build itself is the caller's to run.
func MergeBuildOptions(base api.BuildOptions, entries Map) api.BuildOptions {
	return bundler.MergeBuildOptions(base, entries)
}

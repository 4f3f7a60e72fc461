// Package pathfilter decides which files inside the scan root are entry-point
// candidates and which are excluded.
package pathfilter

import (
	"regexp"
	"strings"
)

// Pattern is a single exclusion rule: either an exact match against the
// slash-normalized relative path, or a regular expression tested against it.
type Pattern struct {
	exact string
	re    *regexp.Regexp
}

// Exact returns a pattern matching relPath exactly.
func Exact(relPath string) Pattern {
	return Pattern{exact: strings.ReplaceAll(relPath, "\\", "/")}
}

// Regexp returns a pattern matching paths against re.
func Regexp(re *regexp.Regexp) Pattern {
	return Pattern{re: re}
}

// Compile parses a textual rule. Rules prefixed with "re:" are compiled as
// regular expressions; everything else is an exact match.
func Compile(rule string) (Pattern, error) {
	if expr, ok := strings.CutPrefix(rule, "re:"); ok {
		re, err := regexp.Compile(expr)
		if err != nil {
			return Pattern{}, err
		}
		return Regexp(re), nil
	}
	return Exact(rule), nil
}

// Match reports whether the pattern matches the given relative path.
// Backslashes in the path are normalized before matching.
func (p Pattern) Match(relPath string) bool {
	relPath = strings.ReplaceAll(relPath, "\\", "/")
	if p.re != nil {
		return p.re.MatchString(relPath)
	}
	return p.exact == relPath
}

// String renders the pattern the way it was written, for logs and reports.
func (p Pattern) String() string {
	if p.re != nil {
		return "re:" + p.re.String()
	}
	return p.exact
}

// Config tunes a Filter beyond its defaults.
type Config struct {
	// Extensions replaces the default candidate extensions when non-empty.
	Extensions []string
	// IgnoredPatterns are extra glob patterns skipped during scanning.
	IgnoredPatterns []string
	// Exclude holds the caller's ordered exclusion rules.
	Exclude []Pattern
}

// Filter filters scanned paths down to entry-point candidates.
type Filter struct {
	extensions      []string
	ignoredPatterns []string
	exclude         []Pattern
}

// New creates a Filter. A nil config keeps the defaults: .html/.htm candidates
// and the usual metadata and dependency directories ignored.
func New(config *Config) *Filter {
	f := &Filter{
		extensions: []string{".html", ".htm"},
		ignoredPatterns: []string{
			".git/**",
			".hg/**",
			"node_modules/**",
			"dist/**",
			"build/**",
			".DS_Store",
			"Thumbs.db",
		},
	}

	if config != nil {
		if len(config.Extensions) > 0 {
			f.extensions = normalizeExtensions(config.Extensions)
		}
		f.ignoredPatterns = append(f.ignoredPatterns, config.IgnoredPatterns...)
		f.exclude = append(f.exclude, config.Exclude...)
	}

	return f
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// IsCandidate reports whether relPath looks like an entry-point source: right
// extension and not inside an ignored directory.
func (f *Filter) IsCandidate(relPath string) bool {
	normalized := strings.ReplaceAll(relPath, "\\", "/")

	for _, pattern := range f.ignoredPatterns {
		if f.globMatch(pattern, normalized) {
			return false
		}
	}

	lower := strings.ToLower(normalized)
	for _, ext := range f.extensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Excluded returns the first exclusion rule matching relPath, if any. Rules
// are checked in the order the caller supplied them.
func (f *Filter) Excluded(relPath string) (Pattern, bool) {
	normalized := strings.ReplaceAll(relPath, "\\", "/")
	for _, p := range f.exclude {
		if p.Match(normalized) {
			return p, true
		}
	}
	return Pattern{}, false
}

// globMatch converts a glob pattern to a regexp and tests it against the path.
func (f *Filter) globMatch(pattern, path string) bool {
	normalized := strings.ReplaceAll(pattern, "\\", "/")

	// Escape regexp metacharacters, then restore the glob operators.
	expr := regexp.QuoteMeta(normalized)
	expr = strings.ReplaceAll(expr, `\*\*`, ".*")
	expr = strings.ReplaceAll(expr, `\*`, "[^/]*")
	expr = strings.ReplaceAll(expr, `\?`, "[^/]")
	expr = "^" + expr + "$"

	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return re.MatchString(path)
}

// Package naming derives entry names from HTML file paths.
package naming

import (
	"crypto/sha1"
	"encoding/hex"
	"path"
	"strings"
	"unicode"
)

// Formatter rewrites a derived entry name. It receives the default name and
// the slash-normalized path relative to the scan root. Returning "" keeps the
// default name.
type Formatter func(name, relPath string) string

// FromPath derives the default entry name for a relative file path: the
// extension is stripped and every path segment is reduced to a slug, with the
// directory structure preserved. "Landing Page.html" becomes "landing-page",
// "admin/Index.html" becomes "admin/index".
func FromPath(relPath string) string {
	normalized := strings.ReplaceAll(relPath, "\\", "/")
	normalized = strings.TrimSuffix(normalized, path.Ext(normalized))

	segments := strings.Split(normalized, "/")
	for i, seg := range segments {
		segments[i] = slugify(seg)
	}
	return strings.Join(segments, "/")
}

// slugify reduces a path segment to lowercase letters and digits separated
// by single dashes.
func slugify(segment string) string {
	s := strings.ToLower(segment)

	var b strings.Builder
	lastWasDash := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastWasDash = false
		} else if !lastWasDash {
			b.WriteRune('-')
			lastWasDash = true
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "entry"
	}
	return slug
}

// Disambiguate appends a short stable suffix derived from relPath, used when
// two files map to the same entry name. The suffix depends only on the
// relative path, so output is identical across runs and hosts.
func Disambiguate(name, relPath string) string {
	sum := sha1.Sum([]byte(strings.ReplaceAll(relPath, "\\", "/")))
	return name + "-" + hex.EncodeToString(sum[:])[:6]
}

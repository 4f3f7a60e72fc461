// Package rootdir validates the optional root-folder override against the
// project directory. The override must stay inside the project, survive
// symlink resolution, and point at an existing directory.
package rootdir

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrEscape is returned when an override leaves the project directory.
	ErrEscape = errors.New("root override escapes project directory")
	// ErrNotDir is returned when the resolved root is not a directory.
	ErrNotDir = errors.New("root is not a directory")
)

// Resolve joins the optional override onto projectDir and returns the absolute
// root to scan. An empty override means the project directory itself.
func Resolve(projectDir, override string) (string, error) {
	absProject, err := filepath.Abs(projectDir)
	if err != nil {
		return "", fmt.Errorf("invalid project directory: %w", err)
	}

	realProject, err := filepath.EvalSymlinks(absProject)
	if err != nil {
		return "", fmt.Errorf("resolve project directory: %w", err)
	}

	if override == "" {
		return checkDir(realProject)
	}

	// Backslashes are rejected outright so that generic parsing cannot be
	// bypassed with OS-specific separators.
	if strings.Contains(override, "\\") {
		return "", fmt.Errorf("%w: backslash in %q", ErrEscape, override)
	}
	if filepath.IsAbs(override) {
		return "", fmt.Errorf("%w: absolute path %q", ErrEscape, override)
	}

	cleaned := filepath.Clean(override)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrEscape, override)
	}

	full := filepath.Join(realProject, cleaned)

	// The override may pass through symlinks: resolve and re-check that the
	// physical location is still under the project directory.
	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("root %q: %w", override, err)
		}
		return "", fmt.Errorf("resolve root %q: %w", override, err)
	}

	rel, err := filepath.Rel(realProject, resolved)
	if err != nil {
		return "", fmt.Errorf("resolve root %q: %w", override, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q resolves to %s", ErrEscape, override, resolved)
	}

	return checkDir(resolved)
}

func checkDir(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDir, path)
	}
	return path, nil
}

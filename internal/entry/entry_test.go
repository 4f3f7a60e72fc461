package entry

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/htmlentry/htmlentry/internal/pathfilter"
	"github.com/htmlentry/htmlentry/internal/rootdir"
)

func setupProject(t *testing.T, files ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("<!doctype html>"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScan_TopLevel(t *testing.T) {
	dir := setupProject(t, "index.html", "about.html", "notes.txt", "sub/page.html")

	entries, err := Scan(dir, Options{})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	want := []string{"about", "index"}
	got := entries.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Names() = %v, want %v", got, want)
		}
	}

	for name, path := range entries {
		if !filepath.IsAbs(path) {
			t.Errorf("entry %q path %q is not absolute", name, path)
		}
		if _, err := os.Stat(path); err != nil {
			t.Errorf("entry %q path %q: %v", name, path, err)
		}
	}
}

func TestScan_Recursive(t *testing.T) {
	dir := setupProject(t, "index.html", "admin/index.html", "admin/users.html", "node_modules/pkg/index.html")

	entries, err := Scan(dir, Options{Recursive: true})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	for _, name := range []string{"index", "admin/index", "admin/users"} {
		if _, ok := entries[name]; !ok {
			t.Errorf("missing entry %q, got %v", name, entries.Names())
		}
	}
	if len(entries) != 3 {
		t.Errorf("len(entries) = %d, want 3 (node_modules must be ignored): %v", len(entries), entries.Names())
	}
}

func TestScan_RootOverride(t *testing.T) {
	dir := setupProject(t, "index.html", "src/page.html")

	entries, err := Scan(dir, Options{Root: "src"})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1: %v", len(entries), entries.Names())
	}
	path, ok := entries["page"]
	if !ok {
		t.Fatalf("missing entry %q, got %v", "page", entries.Names())
	}
	if !strings.HasSuffix(path, filepath.FromSlash("src/page.html")) {
		t.Errorf("entry path = %q, want suffix src/page.html", path)
	}
}

func TestScan_RootEscapeRejected(t *testing.T) {
	dir := setupProject(t, "index.html")

	_, err := Scan(dir, Options{Root: "../elsewhere"})
	if !errors.Is(err, rootdir.ErrEscape) {
		t.Errorf("Scan() error = %v, want rootdir.ErrEscape", err)
	}
}

func TestScan_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	entries, err := Scan(dir, Options{})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("len(entries) = %d, want 0", len(entries))
	}
}

func TestScan_Exclusions(t *testing.T) {
	dir := setupProject(t, "index.html", "404.html", "drafts/wip.html")

	re, err := pathfilter.Compile("re:^drafts/")
	if err != nil {
		t.Fatal(err)
	}

	entries, err := Scan(dir, Options{
		Recursive: true,
		Exclude:   []pathfilter.Pattern{pathfilter.Exact("404.html"), re},
	})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1: %v", len(entries), entries.Names())
	}
	if _, ok := entries["index"]; !ok {
		t.Errorf("missing entry %q", "index")
	}
}

func TestScan_Formatter(t *testing.T) {
	dir := setupProject(t, "index.html", "about.html")

	entries, err := Scan(dir, Options{
		Format: func(name, relPath string) string {
			if name == "index" {
				return "main"
			}
			return "" // keep the default
		},
	})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if _, ok := entries["main"]; !ok {
		t.Errorf("formatter rename missing, got %v", entries.Names())
	}
	if _, ok := entries["about"]; !ok {
		t.Errorf("default name missing after empty formatter result, got %v", entries.Names())
	}
}

func TestScan_NameCollisions(t *testing.T) {
	dir := setupProject(t, "a.html", "b.html")

	entries, err := Scan(dir, Options{
		Format: func(name, relPath string) string { return "page" },
	})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2 after collision handling: %v", len(entries), entries.Names())
	}
	if _, ok := entries["page"]; !ok {
		t.Fatalf("first colliding entry should keep the plain name, got %v", entries.Names())
	}

	// Candidates are processed in sorted order, so a.html wins the plain name.
	if !strings.HasSuffix(entries["page"], "a.html") {
		t.Errorf("entries[page] = %q, want a.html", entries["page"])
	}
	for _, name := range entries.Names() {
		if name == "page" {
			continue
		}
		if !strings.HasPrefix(name, "page-") {
			t.Errorf("disambiguated name = %q, want page-<suffix>", name)
		}
	}

	// Same inputs, same names.
	again, err := Scan(dir, Options{
		Format: func(name, relPath string) string { return "page" },
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range entries.Names() {
		if _, ok := again[name]; !ok {
			t.Errorf("collision handling is not deterministic: %v vs %v", entries.Names(), again.Names())
		}
	}
}

func TestScanReport_Decisions(t *testing.T) {
	dir := setupProject(t, "index.html", "404.html")

	report, err := ScanReport(dir, Options{
		Exclude: []pathfilter.Pattern{pathfilter.Exact("404.html")},
	})
	if err != nil {
		t.Fatalf("ScanReport() error: %v", err)
	}

	if len(report.Decisions) != 2 {
		t.Fatalf("len(Decisions) = %d, want 2", len(report.Decisions))
	}

	byPath := make(map[string]Decision)
	for _, d := range report.Decisions {
		byPath[d.RelPath] = d
	}

	if d := byPath["404.html"]; !d.Excluded || d.Rule != "404.html" {
		t.Errorf("404.html decision = %+v, want excluded by rule 404.html", d)
	}
	if d := byPath["index.html"]; d.Excluded || d.Name != "index" {
		t.Errorf("index.html decision = %+v, want included as index", d)
	}
}

// Package bundler feeds a scanned entry mapping into an esbuild build
// configuration. The merge is non-destructive: everything the caller set on
// the options survives, and caller-supplied entry points win name conflicts.
// Running the build is the host tool's job; nothing here bundles.
package bundler

import (
	"github.com/evanw/esbuild/pkg/api"

	"github.com/htmlentry/htmlentry/internal/entry"
	"github.com/htmlentry/htmlentry/internal/log"
)

// DefaultOutdir is used only when the caller configured no output location.
const DefaultOutdir = "dist"

// MergeBuildOptions returns base with the entry mapping appended as named
// entry points. Caller-supplied entry points are never removed or renamed; a
// derived entry whose name or input path collides with one of them is dropped.
func MergeBuildOptions(base api.BuildOptions, entries entry.Map) api.BuildOptions {
	logger := log.WithComponent("bundler")

	takenNames := make(map[string]bool, len(base.EntryPointsAdvanced))
	takenInputs := make(map[string]bool, len(base.EntryPoints)+len(base.EntryPointsAdvanced))
	for _, ep := range base.EntryPointsAdvanced {
		takenNames[ep.OutputPath] = true
		takenInputs[ep.InputPath] = true
	}
	for _, input := range base.EntryPoints {
		takenInputs[input] = true
	}

	merged := base
	for _, name := range entries.Names() {
		input := entries[name]
		if takenNames[name] {
			logger.Debug().Str("name", name).Msg("entry name already configured, keeping caller's")
			continue
		}
		if takenInputs[input] {
			logger.Debug().Str("input", input).Msg("input already configured, skipping")
			continue
		}
		merged.EntryPointsAdvanced = append(merged.EntryPointsAdvanced, api.EntryPoint{
			InputPath:  input,
			OutputPath: name,
		})
		takenNames[name] = true
		takenInputs[input] = true
	}

	// Fill output defaults only when the caller configured neither form.
	if merged.Outdir == "" && merged.Outfile == "" {
		merged.Outdir = DefaultOutdir
	}

	return merged
}

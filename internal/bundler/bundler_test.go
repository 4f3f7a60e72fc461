package bundler

import (
	"testing"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/htmlentry/htmlentry/internal/entry"
)

func TestMergeBuildOptions_AppendsEntries(t *testing.T) {
	entries := entry.Map{
		"index": "/proj/index.html",
		"about": "/proj/about.html",
	}

	merged := MergeBuildOptions(api.BuildOptions{}, entries)

	require.Len(t, merged.EntryPointsAdvanced, 2)
	// entry.Map.Names() is sorted, so the order is stable.
	want := []api.EntryPoint{
		{InputPath: "/proj/about.html", OutputPath: "about"},
		{InputPath: "/proj/index.html", OutputPath: "index"},
	}
	if diff := cmp.Diff(want, merged.EntryPointsAdvanced); diff != "" {
		t.Errorf("EntryPointsAdvanced mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, DefaultOutdir, merged.Outdir)
}

func TestMergeBuildOptions_CallerEntryWinsNameConflict(t *testing.T) {
	base := api.BuildOptions{
		EntryPointsAdvanced: []api.EntryPoint{
			{InputPath: "src/app.ts", OutputPath: "index"},
		},
	}
	entries := entry.Map{
		"index": "/proj/index.html",
		"about": "/proj/about.html",
	}

	merged := MergeBuildOptions(base, entries)

	require.Len(t, merged.EntryPointsAdvanced, 2)
	assert.Equal(t, "src/app.ts", merged.EntryPointsAdvanced[0].InputPath,
		"caller's entry must survive untouched")
	assert.Equal(t, "about", merged.EntryPointsAdvanced[1].OutputPath)
}

func TestMergeBuildOptions_SkipsDuplicateInputs(t *testing.T) {
	base := api.BuildOptions{
		EntryPoints: []string{"/proj/index.html"},
	}
	entries := entry.Map{"index": "/proj/index.html"}

	merged := MergeBuildOptions(base, entries)

	assert.Empty(t, merged.EntryPointsAdvanced)
	assert.Equal(t, base.EntryPoints, merged.EntryPoints)
}

func TestMergeBuildOptions_PreservesCallerSettings(t *testing.T) {
	base := api.BuildOptions{
		Outdir:            "public",
		Bundle:            true,
		MinifyWhitespace:  true,
		MinifyIdentifiers: true,
	}

	merged := MergeBuildOptions(base, entry.Map{"index": "/proj/index.html"})

	assert.Equal(t, "public", merged.Outdir, "caller's Outdir must not be clobbered")
	assert.True(t, merged.Bundle)
	assert.True(t, merged.MinifyWhitespace)
	assert.True(t, merged.MinifyIdentifiers)
}

func TestMergeBuildOptions_NoOutdirDefaultWithOutfile(t *testing.T) {
	base := api.BuildOptions{Outfile: "bundle.js"}

	merged := MergeBuildOptions(base, entry.Map{"index": "/proj/index.html"})

	assert.Empty(t, merged.Outdir, "Outfile is an output location, Outdir must stay empty")
}

func TestMergeBuildOptions_EmptyMapping(t *testing.T) {
	base := api.BuildOptions{Outdir: "public"}

	merged := MergeBuildOptions(base, entry.Map{})

	assert.Empty(t, merged.EntryPointsAdvanced)
	assert.Equal(t, "public", merged.Outdir)
}

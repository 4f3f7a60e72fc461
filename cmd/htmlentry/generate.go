package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/htmlentry/htmlentry/internal/emit"
	"github.com/htmlentry/htmlentry/internal/entry"
	"github.com/htmlentry/htmlentry/internal/log"
)

func newGenerateCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "generate [project-dir]",
		Short: "Scan and write the entry mapping to a file",
		Long: `generate scans the project and writes the entry mapping to a file.
The write is atomic: the target either keeps its previous content or
holds the complete new mapping, never a partial one.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := projectDirArg(args)
			if err != nil {
				return err
			}
			settings, err := buildSettings(projectDir)
			if err != nil {
				return err
			}
			if out == "" {
				out = settings.Out
			}
			if format == "" {
				format = settings.Format
			}

			entries, err := entry.Scan(projectDir, settings.Options)
			if err != nil {
				return err
			}

			if out == "" {
				return emit.Render(os.Stdout, format, entries)
			}
			if err := emit.WriteFile(out, format, entries); err != nil {
				return err
			}
			logger := log.WithComponent("generate")
			logger.Info().
				Str("out", out).
				Int("entries", len(entries)).
				Msg("entry mapping written")
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries to %s\n", len(entries), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json or yaml (default json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default from config file, else stdout)")
	return cmd
}

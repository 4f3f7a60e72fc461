package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/htmlentry/htmlentry/internal/emit"
	"github.com/htmlentry/htmlentry/internal/entry"
)

func newScanCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan [project-dir]",
		Short: "Scan for HTML entry points and print the mapping",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectDir, err := projectDirArg(args)
			if err != nil {
				return err
			}
			settings, err := buildSettings(projectDir)
			if err != nil {
				return err
			}
			if format == "" {
				format = settings.Format
			}

			entries, err := entry.Scan(projectDir, settings.Options)
			if err != nil {
				return err
			}
			return emit.Render(os.Stdout, format, entries)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json or yaml (default json)")
	return cmd
}

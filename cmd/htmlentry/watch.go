package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/htmlentry/htmlentry/internal/emit"
	"github.com/htmlentry/htmlentry/internal/entry"
	"github.com/htmlentry/htmlentry/internal/watch"
)

func newWatchCmd() *cobra.Command {
	var (
		format string
		out    string
	)

	cmd := &cobra.Command{
		Use:   "watch [project-dir]",
		Short: "Keep the entry mapping fresh while files change",
		Long: `watch scans the project, then rescans whenever files under the scan
root change. Each new mapping is printed, or rewritten atomically when
--out is given. A failed rescan keeps the last good mapping.`,
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

			holder, err := watch.NewHolder(projectDir, settings.Options)
			if err != nil {
				return err
			}

			updates := make(chan entry.Map, 1)
			holder.Subscribe(updates)

			publish := func(entries entry.Map) error {
				if out != "" {
					return emit.WriteFile(out, format, entries)
				}
				return emit.Render(os.Stdout, format, entries)
			}
			if err := publish(holder.Get()); err != nil {
				return err
			}

			go func() {
				for entries := range updates {
					if err := publish(entries); err != nil {
						cmd.PrintErrln(err)
					}
				}
			}()

			return holder.Watch(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: json or yaml (default json)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "rewrite this file on every change instead of printing")
	return cmd
}

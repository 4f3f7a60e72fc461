// Package main implements the htmlentry CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"

	"github.com/htmlentry/htmlentry/internal/config"
	"github.com/htmlentry/htmlentry/internal/log"
	"github.com/htmlentry/htmlentry/internal/pathfilter"
)

var (
	flagConfig    string
	flagRoot      string
	flagExclude   []string
	flagExt       []string
	flagRecursive bool
	flagVerbose   bool
)

func main() {
	cmd := &cobra.Command{
		Use:   "htmlentry",
		Short: "Wire HTML files as bundler entry points",
		Long: `htmlentry scans a project directory for HTML files and wires each one
as a named bundler entry point. The resulting mapping can be printed,
written to a file, kept fresh while you edit, or merged into an esbuild
build configuration without clobbering anything you configured yourself.`,
		Example: `  htmlentry scan ./site
  htmlentry generate --out entries.json ./site
  htmlentry watch --recursive ./site`,
	}

	cmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "config file (default: htmlentry.yaml in the project directory)")
	cmd.PersistentFlags().StringVar(&flagRoot, "root", "", "folder to scan, relative to the project directory")
	cmd.PersistentFlags().StringArrayVarP(&flagExclude, "exclude", "e", nil, "exclusion rule, exact path or re:<regexp> (repeatable)")
	cmd.PersistentFlags().StringArrayVar(&flagExt, "ext", nil, "candidate file extension (repeatable, default .html and .htm)")
	cmd.PersistentFlags().BoolVarP(&flagRecursive, "recursive", "r", false, "descend into subdirectories")
	cmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "log every keep/skip decision")

	cmd.AddCommand(newScanCmd(), newGenerateCmd(), newWatchCmd(), newMCPCmd())

	if err := fang.Execute(
		context.Background(),
		cmd,
		fang.WithVersion(version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	); err != nil {
		os.Exit(1)
	}
}

// projectDirArg resolves the optional positional project directory.
func projectDirArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return dir, nil
}

// buildSettings combines flags with the optional config file. Flags win over
// file values, file values win over defaults.
func buildSettings(projectDir string) (config.Settings, error) {
	var s config.Settings
	s.Options.Root = flagRoot
	s.Options.Extensions = flagExt
	s.Options.Recursive = flagRecursive
	s.Options.Verbose = flagVerbose

	for _, rule := range flagExclude {
		p, err := pathfilter.Compile(rule)
		if err != nil {
			return config.Settings{}, fmt.Errorf("invalid --exclude pattern %q: %w", rule, err)
		}
		s.Options.Exclude = append(s.Options.Exclude, p)
	}

	var (
		file *config.File
		err  error
	)
	if flagConfig != "" {
		file, err = config.Load(flagConfig)
	} else {
		file, err = config.LoadProject(projectDir)
	}
	if err != nil {
		return config.Settings{}, err
	}
	if err := file.Merge(&s); err != nil {
		return config.Settings{}, err
	}

	log.Configure(log.Config{Verbose: s.Options.Verbose})
	return s, nil
}

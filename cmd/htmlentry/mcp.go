package main

import (
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/htmlentry/htmlentry/internal/config"
)

var (
	mcpProjectDir string
	mcpSettings   config.Settings
)

func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp [project-dir]",
		Short: "Serve the scanner over the Model Context Protocol",
		Long: `mcp runs a Model Context Protocol server over stdio so MCP-compatible
tooling can scan the project for entry points and ask why a given file
was included or excluded. Flags and the config file set the baseline;
each tool call may override scan options.`,
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
			mcpProjectDir = projectDir
			mcpSettings = settings

			server := mcp.NewServer(&mcp.Implementation{
				Name:    "htmlentry",
				Version: version,
			}, nil)

			registerTools(server)

			if err := server.Run(cmd.Context(), &mcp.StdioTransport{}); err != nil {
				return fmt.Errorf("error running server: %w", err)
			}
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/htmlentry/htmlentry/internal/entry"
	"github.com/htmlentry/htmlentry/internal/pathfilter"
)

// callOptions applies per-call overrides onto the server's baseline options.
func callOptions(input ScanInput) (entry.Options, error) {
	opts := mcpSettings.Options
	if input.Root != "" {
		opts.Root = input.Root
	}
	if len(input.Extensions) > 0 {
		opts.Extensions = input.Extensions
	}
	if input.Recursive {
		opts.Recursive = true
	}
	for _, rule := range input.Exclude {
		p, err := pathfilter.Compile(rule)
		if err != nil {
			return entry.Options{}, fmt.Errorf("invalid exclude pattern %q: %w", rule, err)
		}
		opts.Exclude = append(opts.Exclude, p)
	}
	return opts, nil
}

func handleScan(ctx context.Context, req *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, ScanOutput, error) {
	opts, err := callOptions(input)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ScanOutput{}, err
	}

	report, err := entry.ScanReport(mcpProjectDir, opts)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ScanOutput{}, err
	}

	return nil, ScanOutput{
		Root:    report.Root,
		Entries: report.Entries,
		Total:   len(report.Entries),
	}, nil
}

func handleExplain(ctx context.Context, req *mcp.CallToolRequest, input ExplainInput) (*mcp.CallToolResult, ExplainOutput, error) {
	path := strings.TrimSpace(input.Path)
	if path == "" {
		return &mcp.CallToolResult{IsError: true}, ExplainOutput{},
			fmt.Errorf("path must not be empty")
	}

	opts, err := callOptions(input.ScanInput)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ExplainOutput{}, err
	}

	report, err := entry.ScanReport(mcpProjectDir, opts)
	if err != nil {
		return &mcp.CallToolResult{IsError: true}, ExplainOutput{}, err
	}

	normalized := strings.ReplaceAll(path, "\\", "/")
	for _, d := range report.Decisions {
		if d.RelPath != normalized {
			continue
		}
		out := ExplainOutput{Path: normalized, Included: !d.Excluded, Name: d.Name}
		if d.Excluded {
			out.Reason = fmt.Sprintf("excluded by rule %q", d.Rule)
		} else {
			out.Reason = fmt.Sprintf("included as entry %q", d.Name)
		}
		return nil, out, nil
	}

	return nil, ExplainOutput{
		Path:   normalized,
		Reason: "not a candidate: wrong extension, ignored directory, or outside the scan root",
	}, nil
}

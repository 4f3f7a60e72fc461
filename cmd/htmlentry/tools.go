package main

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	// ScanInput contains per-call overrides for scanning the project.
	ScanInput struct {
		Root       string   `json:"root,omitempty" jsonschema:"Folder to scan relative to the project directory (default: configured root)"`
		Exclude    []string `json:"exclude,omitempty" jsonschema:"Exclusion rules, exact path or re:<regexp>, applied after configured rules"`
		Extensions []string `json:"extensions,omitempty" jsonschema:"Candidate file extensions (default: .html and .htm)"`
		Recursive  bool     `json:"recursive,omitempty" jsonschema:"Descend into subdirectories (default: configured value)"`
	}

	// ScanOutput contains the entry mapping produced by a scan.
	ScanOutput struct {
		Root    string            `json:"root"`
		Entries map[string]string `json:"entries"`
		Total   int               `json:"total"`
	}

	// ExplainInput identifies the file whose scan decision should be explained.
	ExplainInput struct {
		Path string `json:"path" jsonschema:"Path relative to the scan root"`
		ScanInput
	}

	// ExplainOutput describes what the scanner did with the file.
	ExplainOutput struct {
		Path     string `json:"path"`
		Included bool   `json:"included"`
		Name     string `json:"name,omitempty"`
		Reason   string `json:"reason"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "scan",
		Description: "Scan the project for HTML entry points. Returns the mapping from entry name to absolute file path.",
	}, handleScan)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "explain",
		Description: "Explain what the scanner did with one file: whether it was included, which exclusion rule hit, and what entry name it received.",
	}, handleExplain)
}

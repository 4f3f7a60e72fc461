// Package emit renders entry mappings to JSON or YAML and writes them to
// stdout or, atomically, to a file.
package emit

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/renameio/v2"
	"gopkg.in/yaml.v3"

	"github.com/htmlentry/htmlentry/internal/log"
)

// Render writes v to w in the requested format. An empty format means JSON.
func Render(w io.Writer, format string, v any) error {
	switch format {
	case "", "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile renders v to path atomically. The file either keeps its previous
// content or holds the complete new rendering; readers never see a partial
// write.
func WriteFile(path, format string, v any) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending file: %w", err)
	}
	defer func() {
		if err := pending.Cleanup(); err != nil {
			logger := log.WithComponent("emit")
			logger.Debug().Err(err).Msg("cleanup pending file")
		}
	}()

	if err := Render(pending, format, v); err != nil {
		return fmt.Errorf("render %s: %w", path, err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

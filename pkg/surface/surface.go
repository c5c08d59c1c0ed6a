// Package surface defines output rendering for catalog results.
// Implementations handle different output targets: terminal, JSON,
// Markdown.
package surface

import (
	"fmt"
	"io"
)

// Renderer produces formatted output for one result value.
type Renderer interface {
	// Render writes the formatted value to the writer.
	Render(w io.Writer, v any) error
}

// New picks the renderer for an output format flag. The empty format
// means terminal output.
func New(format string) (Renderer, error) {
	switch format {
	case "", "table", "text":
		return &TerminalRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (want table, json or markdown)", format)
}

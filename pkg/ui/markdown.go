package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/vanderheijden86/ahkam/pkg/debug"
)

// RenderMarkdown renders md for a terminal of the given width. style is one
// of auto, dark, light or notty; anything else falls back to auto.
func RenderMarkdown(md string, width int, style string) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}
	switch strings.ToLower(strings.TrimSpace(style)) {
	case "dark", "light", "notty":
		opts = append(opts, glamour.WithStylePath(style))
	default:
		opts = append(opts, glamour.WithAutoStyle())
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", err
	}
	return r.Render(md)
}

// renderMarkdownOrRaw is RenderMarkdown that degrades to the raw text.
func renderMarkdownOrRaw(md string, width int, style string) string {
	out, err := RenderMarkdown(md, width, style)
	if err != nil {
		debug.Log("glamour render failed: %v", err)
		return md
	}
	return out
}

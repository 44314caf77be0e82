package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/ahkam/pkg/content"
	"github.com/vanderheijden86/ahkam/pkg/debug"
	"github.com/vanderheijden86/ahkam/pkg/metrics"
)

// Rendered is the laid-out page.
type Rendered struct {
	Text string
	// Anchors maps a chapter id to the line its title starts on.
	Anchors map[string]int
	Lines   int
}

// RenderDocument lays out doc for a terminal of the given width. Chapters are
// rendered concurrently and joined in document order.
func RenderDocument(doc content.Document, t Theme, width int) (Rendered, error) {
	defer metrics.Timer(metrics.DocumentRender)()
	start := time.Now()

	w := contentWidth(width)
	chapters := make([]string, len(doc.Chapters))

	var g errgroup.Group
	for i, ch := range doc.Chapters {
		g.Go(func() error {
			defer metrics.Timer(metrics.ChapterRender)()
			out, err := renderChapter(t, ch, w)
			if err != nil {
				return fmt.Errorf("chapter %q: %w", ch.ID, err)
			}
			chapters[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Rendered{}, err
	}

	var sb strings.Builder
	anchors := make(map[string]int, len(doc.Chapters))
	line := 0
	add := func(s string) {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
			line += 2
		}
		sb.WriteString(s)
		line += strings.Count(s, "\n")
	}

	add(renderHeader(t, doc, w))
	for i, ch := range doc.Chapters {
		add("")
		anchors[ch.ID] = line + 2
		add(chapters[i])
	}
	add(renderFooter(t, doc.Footer, w))

	text := sb.String()
	if width > w {
		text = lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
	}
	debug.LogTiming("render document", time.Since(start))
	return Rendered{Text: text, Anchors: anchors, Lines: line + 1}, nil
}

func renderChapter(t Theme, ch content.Chapter, w int) (string, error) {
	parts := []string{renderChapterTitle(t, ch, w)}
	for j, b := range ch.Blocks {
		out, err := renderBlock(t, b, w)
		if err != nil {
			return "", fmt.Errorf("block %d: %w", j+1, err)
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n\n"), nil
}

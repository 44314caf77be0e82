package export

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/ahkam/pkg/content"
)

// ChapterSummary is one entry of the machine-readable chapter index.
type ChapterSummary struct {
	ID      string            `json:"id"`
	Label   string            `json:"label"`
	Icon    string            `json:"icon"`
	Heading content.Bilingual `json:"heading"`
	Anchor  string            `json:"anchor"`
	Blocks  int               `json:"blocks"`
	Kinds   map[string]int    `json:"kinds"`
}

// Index is the document-level wrapper written by WriteChapterIndex.
type Index struct {
	Title    content.Bilingual `json:"title"`
	Chapters []ChapterSummary  `json:"chapters"`
}

// ChapterIndex summarizes every chapter in document order.
func ChapterIndex(doc content.Document) []ChapterSummary {
	anchors := chapterAnchors(doc)
	out := make([]ChapterSummary, len(doc.Chapters))
	for i, ch := range doc.Chapters {
		kinds := make(map[string]int)
		for _, b := range ch.Blocks {
			kinds[string(b.Kind)]++
		}
		out[i] = ChapterSummary{
			ID:      ch.ID,
			Label:   ch.Label,
			Icon:    ch.Icon,
			Heading: ch.Heading,
			Anchor:  anchors[i],
			Blocks:  len(ch.Blocks),
			Kinds:   kinds,
		}
	}
	return out
}

// WriteChapterIndex writes the index as indented JSON.
func WriteChapterIndex(w io.Writer, doc content.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Index{Title: doc.Title, Chapters: ChapterIndex(doc)}); err != nil {
		return fmt.Errorf("encoding chapter index: %w", err)
	}
	return nil
}

// Package export renders the notes document as Markdown and as a JSON
// chapter index.
package export

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gosimple/slug"

	"github.com/vanderheijden86/ahkam/pkg/content"
	"github.com/vanderheijden86/ahkam/pkg/metrics"
)

// ErrUnknownChapter is returned for a chapter id the document does not have.
var ErrUnknownChapter = errors.New("unknown chapter")

// Fixed captions printed with hadith and vocabulary blocks.
const (
	translationLabel = "Terjemahan:"
	takhrijLabel     = "تخريج الحديث (Sumber):"
	meaningLabel     = "Maksud:"
)

// GenerateMarkdown renders the whole document with a table of contents.
func GenerateMarkdown(doc content.Document) string {
	defer metrics.Timer(metrics.MarkdownExport)()

	var sb strings.Builder
	writeTitle(&sb, doc)

	anchors := chapterAnchors(doc)
	sb.WriteString("## Kandungan | المحتويات\n\n")
	for i, ch := range doc.Chapters {
		fmt.Fprintf(&sb, "- [%s](#%s)\n", ch.Label, anchors[i])
	}
	sb.WriteString("\n---\n\n")

	for _, ch := range doc.Chapters {
		writeChapter(&sb, ch)
		sb.WriteString("---\n\n")
	}

	if doc.Footer.Closing != "" {
		fmt.Fprintf(&sb, "**%s**\n\n", doc.Footer.Closing)
	}
	if doc.Footer.Note != "" {
		fmt.Fprintf(&sb, "_%s_\n", doc.Footer.Note)
	}
	return sb.String()
}

// ChapterMarkdown renders a single chapter.
func ChapterMarkdown(doc content.Document, id string) (string, error) {
	ch, ok := doc.Chapter(id)
	if !ok {
		return "", fmt.Errorf("%q: %w", id, ErrUnknownChapter)
	}
	defer metrics.Timer(metrics.MarkdownExport)()

	var sb strings.Builder
	writeChapter(&sb, ch)
	return strings.TrimRight(sb.String(), "\n") + "\n", nil
}

// SaveMarkdownToFile writes GenerateMarkdown output to path.
func SaveMarkdownToFile(doc content.Document, path string) error {
	if err := os.WriteFile(path, []byte(GenerateMarkdown(doc)), 0o644); err != nil {
		return fmt.Errorf("writing markdown: %w", err)
	}
	return nil
}

// ChapterAnchor returns the Markdown anchor of a chapter heading.
func ChapterAnchor(ch content.Chapter) string {
	base := ch.Heading.Malay
	if base == "" {
		base = ch.ID
	}
	return slug.Make(base)
}

// chapterAnchors returns unique anchors in document order.
func chapterAnchors(doc content.Document) []string {
	counts := make(map[string]int, len(doc.Chapters))
	out := make([]string, len(doc.Chapters))
	for i, ch := range doc.Chapters {
		out[i] = uniqueSlug(ChapterAnchor(ch), counts)
	}
	return out
}

func uniqueSlug(base string, counts map[string]int) string {
	if base == "" {
		base = "section"
	}
	if count, ok := counts[base]; ok {
		count++
		counts[base] = count
		return fmt.Sprintf("%s-%d", base, count)
	}
	counts[base] = 0
	return base
}

func writeTitle(sb *strings.Builder, doc content.Document) {
	fmt.Fprintf(sb, "# %s\n\n", firstNonEmpty(doc.Title.Malay, doc.Title.Arabic))
	if doc.Title.Arabic != "" && doc.Title.Malay != "" {
		fmt.Fprintf(sb, "**%s**\n\n", doc.Title.Arabic)
	}
	if doc.Subtitle != "" {
		fmt.Fprintf(sb, "_%s_\n\n", doc.Subtitle)
	}
}

func writeChapter(sb *strings.Builder, ch content.Chapter) {
	fmt.Fprintf(sb, "## %s\n\n", firstNonEmpty(ch.Heading.Malay, ch.Label))
	if ch.Heading.Arabic != "" {
		fmt.Fprintf(sb, "**%s**\n\n", ch.Heading.Arabic)
	}
	for _, b := range ch.Blocks {
		writeBlock(sb, b)
	}
}

func writeBlock(sb *strings.Builder, b content.Block) {
	switch b.Kind {
	case content.BlockSubsection:
		fmt.Fprintf(sb, "### %s\n\n", b.Arabic)
		if b.Malay != "" {
			fmt.Fprintf(sb, "_%s_\n\n", b.Malay)
		}

	case content.BlockHadith:
		fmt.Fprintf(sb, "> %s\n>\n", b.Text)
		if b.Translation != "" {
			fmt.Fprintf(sb, "> _%s %s_\n>\n", translationLabel, b.Translation)
		}
		if b.Takhrij != "" {
			fmt.Fprintf(sb, "> **%s** %s\n", takhrijLabel, b.Takhrij)
		}
		sb.WriteString("\n")

	case content.BlockVocabulary:
		if b.Heading != "" {
			fmt.Fprintf(sb, "#### %s\n\n", b.Heading)
		}
		for _, v := range b.Vocabulary {
			fmt.Fprintf(sb, "- **%s:** %s\n", v.Word, v.Meaning)
			if v.Translation != "" {
				fmt.Fprintf(sb, "  _%s %s_\n", meaningLabel, v.Translation)
			}
		}
		sb.WriteString("\n")

	case content.BlockRulings:
		if b.Heading != "" {
			fmt.Fprintf(sb, "#### %s\n\n", b.Heading)
		}
		for _, r := range b.Rulings {
			fmt.Fprintf(sb, "##### %s | %s\n\n", r.Title, r.TitleMalay)
			fmt.Fprintf(sb, "%s\n\n", r.Content)
			if r.Translation != "" {
				fmt.Fprintf(sb, "> _%s_\n\n", r.Translation)
			}
		}

	case content.BlockDefinitions:
		for _, d := range b.Terms {
			fmt.Fprintf(sb, "- **%s** %s\n", d.Term, d.Text)
		}
		sb.WriteString("\n")
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

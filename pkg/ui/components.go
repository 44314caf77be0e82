package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/ahkam/pkg/content"
)

// Fixed captions of the notes.
const (
	translationCaption = "Terjemahan:"
	takhrijCaption     = "تخريج الحديث (Sumber):"
	meaningCaption     = "Maksud:"
)

// renderHeader draws the page title block.
func renderHeader(t Theme, doc content.Document, w int) string {
	lines := []string{
		alignCenter(t, w, t.HeaderTitle.Render(doc.Title.Arabic)),
		alignCenter(t, w, t.HeaderSubtitle.Render(doc.Title.Malay)),
	}
	if doc.Subtitle != "" {
		lines = append(lines, "", alignCenter(t, w, t.HeaderNote.Render(doc.Subtitle)))
	}
	lines = append(lines, RenderRule(t, w))
	return strings.Join(lines, "\n")
}

// renderChapterTitle draws the chapter heading. Its first line is the
// chapter's anchor.
func renderChapterTitle(t Theme, ch content.Chapter, w int) string {
	arabic := ch.Heading.Arabic
	if arabic == "" {
		arabic, _ = splitLabel(ch.Label)
	}
	lines := []string{
		alignRight(t, w, t.ChapterArabic.Render(arabic+" "+IconGlyph(ch.Icon))),
	}
	if ch.Heading.Malay != "" {
		lines = append(lines, alignRight(t, w, t.ChapterMalay.Render(ch.Heading.Malay)))
	}
	lines = append(lines, RenderRule(t, w))
	return strings.Join(lines, "\n")
}

func renderSubsection(t Theme, b content.Block, w int) string {
	var lines []string
	if b.Arabic != "" {
		lines = append(lines, alignRight(t, w, t.SubArabic.Render(b.Arabic)+" "+t.SubIcon.Render(subsectionMark)))
	}
	if b.Malay != "" {
		lines = append(lines, alignRight(t, w, t.SubMalay.Render(b.Malay)))
	}
	return strings.Join(lines, "\n")
}

func renderHadith(t Theme, b content.Block, w int) string {
	inner := w - sideFrame - boxPadding
	parts := []string{alignRight(t, inner, t.HadithText.Render(b.Text))}
	if b.Translation != "" {
		parts = append(parts, "", t.HadithTrans.Width(inner).Render(translationCaption+" "+b.Translation))
	}
	if b.Takhrij != "" {
		parts = append(parts, "", alignRight(t, inner, t.HadithTakhrij.Render(takhrijCaption+" "+b.Takhrij)))
	}
	return t.HadithBox.Width(w - sideFrame).Render(strings.Join(parts, "\n"))
}

func renderVocabulary(t Theme, b content.Block, w int) string {
	inner := w - boxFrame - boxPadding
	var parts []string
	if b.Heading != "" {
		parts = append(parts, alignRight(t, inner, t.BoxHeading.Render(b.Heading)))
	}
	for _, v := range b.Vocabulary {
		word := t.VocabWord.Render(v.Word + ":")
		parts = append(parts, alignRight(t, inner, t.VocabMeaning.Render(v.Meaning)+" "+word))
		if v.Translation != "" {
			parts = append(parts, t.VocabTrans.Width(inner).Render(meaningCaption+" "+v.Translation))
		}
	}
	return t.VocabBox.Width(w - boxFrame).Render(strings.Join(parts, "\n"))
}

func renderRulings(t Theme, b content.Block, w int) string {
	var parts []string
	if b.Heading != "" {
		parts = append(parts, alignRight(t, w, t.BoxHeading.Render(b.Heading)))
	}
	for _, r := range b.Rulings {
		parts = append(parts, renderRuling(t, r, w))
	}
	return strings.Join(parts, "\n")
}

func renderRuling(t Theme, r content.Ruling, w int) string {
	inner := w - boxFrame - boxPadding
	title := r.Title
	if r.TitleMalay != "" {
		title = fmt.Sprintf("%s | %s", r.Title, r.TitleMalay)
	}
	parts := []string{
		alignRight(t, inner, t.RulingTitle.Render(title)+" "+t.RulingBullet.Render(rulingBullet)),
		alignRight(t, inner, t.RulingBody.Render(r.Content)),
	}
	if r.Translation != "" {
		trans := t.RulingTrans.Width(inner - sideFrame).Render(r.Translation)
		parts = append(parts, lipgloss.PlaceHorizontal(inner, lipgloss.Right, trans))
	}
	return t.RulingBox.Width(w - boxFrame).Render(strings.Join(parts, "\n"))
}

func renderDefinitions(t Theme, b content.Block, w int) string {
	inner := w - boxFrame - boxPadding
	parts := make([]string, 0, len(b.Terms))
	for _, d := range b.Terms {
		parts = append(parts, alignRight(t, inner, t.RulingBody.Render(d.Text)+" "+t.DefinitionTerm.Render(d.Term)))
	}
	return t.DefinitionBox.Width(w - boxFrame).Render(strings.Join(parts, "\n"))
}

func renderFooter(t Theme, f content.Footer, w int) string {
	lines := []string{RenderRule(t, w)}
	if f.Closing != "" {
		lines = append(lines, alignCenter(t, w, t.FooterClosing.Render(f.Closing)))
	}
	if f.Note != "" {
		lines = append(lines, alignCenter(t, w, t.FooterNote.Render(f.Note)))
	}
	return strings.Join(lines, "\n")
}

// renderBlock dispatches on the block kind.
func renderBlock(t Theme, b content.Block, w int) (string, error) {
	switch b.Kind {
	case content.BlockSubsection:
		return renderSubsection(t, b, w), nil
	case content.BlockHadith:
		return renderHadith(t, b, w), nil
	case content.BlockVocabulary:
		return renderVocabulary(t, b, w), nil
	case content.BlockRulings:
		return renderRulings(t, b, w), nil
	case content.BlockDefinitions:
		return renderDefinitions(t, b, w), nil
	default:
		return "", fmt.Errorf("%q: %w", b.Kind, content.ErrUnknownBlock)
	}
}

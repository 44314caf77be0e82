package ui

import (
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/ahkam/pkg/content"
)

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// chapterOptions lists every chapter as a picker option keyed by id.
func chapterOptions(doc content.Document) []huh.Option[string] {
	opts := make([]huh.Option[string], len(doc.Chapters))
	for i, ch := range doc.Chapters {
		opts[i] = huh.NewOption(IconGlyph(ch.Icon)+" "+ch.Label, ch.ID)
	}
	return opts
}

// PickChapter asks which chapter to open. It returns huh.ErrUserAborted if
// the user cancels.
func PickChapter(doc content.Document, current string) (string, error) {
	selected := current
	if _, ok := doc.Chapter(selected); !ok && len(doc.Chapters) > 0 {
		selected = doc.Chapters[0].ID
	}
	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Pilih bab | Choose a chapter").
				Options(chapterOptions(doc)...).
				Value(&selected),
		),
	)
	if err := form.Run(); err != nil {
		return "", err
	}
	return selected, nil
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/ahkam/pkg/version"
)

// helpMarkdown builds the help overlay text from the live key map.
func helpMarkdown(k KeyMap) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# ahkam %s\n\n", version.Version)
	sb.WriteString("Reader for the notes on the rulings of Hajj.\n\n")

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Scrolling", []key.Binding{k.Up, k.Down, k.PageUp, k.PageDown, k.HalfUp, k.HalfDown, k.Top, k.Bottom}},
		{"Chapters", []key.Binding{k.Next, k.Prev, k.Chapter, k.Menu, k.Select, k.Close}},
		{"Other", []key.Binding{k.ScrollTop, k.Copy, k.Help, k.Quit}},
	}
	for _, s := range sections {
		fmt.Fprintf(&sb, "## %s\n\n| Key | Action |\n|---|---|\n", s.title)
		for _, b := range s.bindings {
			h := b.Help()
			fmt.Fprintf(&sb, "| `%s` | %s |\n", h.Key, h.Desc)
		}
		sb.WriteString("\n")
	}
	sb.WriteString("The chapter bar is shown on wide terminals. On narrow ones, press `m` for the chapter menu.\n\n")
	sb.WriteString("Mouse: the wheel scrolls, clicking a chapter opens it.\n")
	return sb.String()
}

// helpOverlay is the scrollable help screen.
type helpOverlay struct {
	vp viewport.Model
}

func newHelpOverlay(k KeyMap, style string, width, height int) helpOverlay {
	w := clamp(width-4, 20, 80)
	vp := viewport.New(w, max(1, height-4))
	vp.SetContent(renderMarkdownOrRaw(helpMarkdown(k), w, style))
	return helpOverlay{vp: vp}
}

func (h *helpOverlay) scroll(delta int) {
	h.vp.SetYOffset(h.vp.YOffset + delta)
}

func (h helpOverlay) view(t Theme, width, height int) string {
	box := t.Menu.Render(h.vp.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

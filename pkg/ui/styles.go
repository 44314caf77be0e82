package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/ahkam/pkg/content"
)

// Spacing constants for consistent layout (in characters)
const (
	SpaceXS = 1
	SpaceSM = 2
)

// Content column limits. The page never grows wider than maxContentWidth so
// long Arabic lines stay readable on wide terminals.
const (
	minContentWidth = 24
	maxContentWidth = 100
)

// Box frame widths: a rounded or normal border costs two columns, the
// single-sided hadith border one.
const (
	boxFrame   = 2
	boxPadding = 2
	sideFrame  = 1
)

// IconGlyph maps a chapter icon name to the glyph shown in the terminal.
func IconGlyph(icon string) string {
	switch icon {
	case content.IconBook:
		return "📖"
	case content.IconShieldCheck:
		return "🛡"
	case content.IconCompass:
		return "🧭"
	default:
		return "•"
	}
}

// Symbols used by the block components.
const (
	subsectionMark = "✦"
	rulingBullet   = "●"
	menuCursor     = "▸"
	scrollTopMark  = "▲"
)

// RenderRule draws a horizontal divider of width w.
func RenderRule(t Theme, w int) string {
	if w <= 0 {
		return ""
	}
	return t.ChapterRule.Render(strings.Repeat("─", w))
}

// RenderBadge renders a compact badge.
func RenderBadge(t Theme, label string) string {
	return t.Badge.Render(label)
}

// RenderScrollTopBadge renders the back-to-top affordance.
func RenderScrollTopBadge(t Theme) string {
	return t.ScrollTop.Render(scrollTopMark + " t")
}

// contentWidth clamps the terminal width to the readable column width.
func contentWidth(width int) int {
	w := width - 2
	if w > maxContentWidth {
		w = maxContentWidth
	}
	if w < minContentWidth {
		w = minContentWidth
	}
	return w
}

// alignRight right-aligns rendered text inside w columns, wrapping as needed.
func alignRight(t Theme, w int, s string) string {
	return t.Renderer.NewStyle().Width(w).Align(lipgloss.Right).Render(s)
}

func alignCenter(t Theme, w int, s string) string {
	return t.Renderer.NewStyle().Width(w).Align(lipgloss.Center).Render(s)
}

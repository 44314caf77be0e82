package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile, computed once at
// package init so style helpers can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeBg returns hex for TrueColor terminals and lipgloss.NoColor{}
// otherwise, so 16/256-color terminals keep their own background.
func ThemeBg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.TrueColor {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(hex)
}

// ThemeFg returns hex for ANSI256+ terminals and ANSI white otherwise.
func ThemeFg(hex string) lipgloss.TerminalColor {
	if TermProfile < colorprofile.ANSI256 {
		return lipgloss.ANSIColor(7)
	}
	return lipgloss.Color(hex)
}

// Theme is the emerald and amber palette of the notes, with every component
// style pre-computed once.
type Theme struct {
	Renderer *lipgloss.Renderer

	Emerald     lipgloss.AdaptiveColor
	EmeraldDeep lipgloss.AdaptiveColor
	EmeraldSoft lipgloss.AdaptiveColor
	Amber       lipgloss.AdaptiveColor
	AmberDeep   lipgloss.AdaptiveColor
	Text        lipgloss.AdaptiveColor
	Subtext     lipgloss.AdaptiveColor
	Muted       lipgloss.AdaptiveColor
	Border      lipgloss.AdaptiveColor

	Base lipgloss.Style

	// Page header and footer.
	HeaderTitle    lipgloss.Style
	HeaderSubtitle lipgloss.Style
	HeaderNote     lipgloss.Style
	FooterClosing  lipgloss.Style
	FooterNote     lipgloss.Style

	// Chapter and subsection titles.
	ChapterArabic lipgloss.Style
	ChapterMalay  lipgloss.Style
	ChapterRule   lipgloss.Style
	SubArabic     lipgloss.Style
	SubMalay      lipgloss.Style
	SubIcon       lipgloss.Style

	// Hadith box.
	HadithBox     lipgloss.Style
	HadithText    lipgloss.Style
	HadithTrans   lipgloss.Style
	HadithTakhrij lipgloss.Style

	// Vocabulary and rulings.
	BoxHeading     lipgloss.Style
	VocabBox       lipgloss.Style
	VocabWord      lipgloss.Style
	VocabMeaning   lipgloss.Style
	VocabTrans     lipgloss.Style
	RulingBox      lipgloss.Style
	RulingTitle    lipgloss.Style
	RulingBody     lipgloss.Style
	RulingTrans    lipgloss.Style
	RulingBullet   lipgloss.Style
	DefinitionBox  lipgloss.Style
	DefinitionTerm lipgloss.Style

	// Navigation chrome.
	NavItem       lipgloss.Style
	NavItemActive lipgloss.Style
	NavBar        lipgloss.Style
	Menu          lipgloss.Style
	MenuItem      lipgloss.Style
	MenuCursor    lipgloss.Style
	Badge         lipgloss.Style
	ScrollTop     lipgloss.Style
	Status        lipgloss.Style
	StatusError   lipgloss.Style
}

// DefaultTheme returns the adaptive emerald/amber theme.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	t := Theme{
		Renderer: r,

		Emerald:     lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"}, // emerald-700 / emerald-400
		EmeraldDeep: lipgloss.AdaptiveColor{Light: "#064E3B", Dark: "#A7F3D0"}, // emerald-900 / emerald-200
		EmeraldSoft: lipgloss.AdaptiveColor{Light: "#059669", Dark: "#6EE7B7"}, // emerald-600 / emerald-300
		Amber:       lipgloss.AdaptiveColor{Light: "#B45309", Dark: "#FBBF24"}, // amber-700 / amber-400
		AmberDeep:   lipgloss.AdaptiveColor{Light: "#78350F", Dark: "#FDE68A"}, // amber-900 / amber-200
		Text:        lipgloss.AdaptiveColor{Light: "#1F2937", Dark: "#F3F4F6"},
		Subtext:     lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#D1D5DB"},
		Muted:       lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"},
		Border:      lipgloss.AdaptiveColor{Light: "#A7F3D0", Dark: "#065F46"},
	}

	t.Base = r.NewStyle().Foreground(t.Text)

	t.HeaderTitle = r.NewStyle().Foreground(t.EmeraldDeep).Bold(true)
	t.HeaderSubtitle = r.NewStyle().Foreground(t.EmeraldSoft).Bold(true)
	t.HeaderNote = r.NewStyle().Foreground(t.Subtext).Italic(true)
	t.FooterClosing = r.NewStyle().Foreground(t.EmeraldDeep).Bold(true)
	t.FooterNote = r.NewStyle().Foreground(t.Muted)

	t.ChapterArabic = r.NewStyle().Foreground(t.Emerald).Bold(true)
	t.ChapterMalay = r.NewStyle().Foreground(t.EmeraldSoft).Bold(true)
	t.ChapterRule = r.NewStyle().Foreground(t.Amber)
	t.SubArabic = r.NewStyle().Foreground(t.AmberDeep).Bold(true)
	t.SubMalay = r.NewStyle().Foreground(t.Amber).Bold(true)
	t.SubIcon = r.NewStyle().Foreground(t.Amber)

	t.HadithBox = r.NewStyle().
		Border(lipgloss.ThickBorder(), false, true, false, false).
		BorderForeground(t.EmeraldSoft).
		Padding(0, 1)
	t.HadithText = r.NewStyle().Foreground(t.EmeraldDeep).Bold(true)
	t.HadithTrans = r.NewStyle().Foreground(t.Emerald).Italic(true)
	t.HadithTakhrij = r.NewStyle().Foreground(t.Emerald).Italic(true).Faint(true)

	t.BoxHeading = r.NewStyle().Foreground(t.EmeraldDeep).Bold(true).Underline(true)
	t.VocabBox = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Amber).
		Padding(0, 1)
	t.VocabWord = r.NewStyle().Foreground(t.AmberDeep).Bold(true)
	t.VocabMeaning = r.NewStyle().Foreground(t.Text)
	t.VocabTrans = r.NewStyle().Foreground(t.Amber).Italic(true)
	t.RulingBox = r.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.RulingTitle = r.NewStyle().Foreground(t.Text).Bold(true)
	t.RulingBody = r.NewStyle().Foreground(t.Text)
	t.RulingTrans = r.NewStyle().
		Foreground(t.Subtext).
		Italic(true).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(t.Amber).
		PaddingRight(1)
	t.RulingBullet = r.NewStyle().Foreground(t.EmeraldSoft)
	t.DefinitionBox = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"}).
		Padding(0, 1)
	t.DefinitionTerm = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#1E3A8A", Dark: "#BFDBFE"}).Bold(true)

	t.NavItem = r.NewStyle().Foreground(t.Emerald).Bold(true).Padding(0, 1)
	t.NavItemActive = r.NewStyle().
		Foreground(ThemeFg("#FFFFFF")).
		Background(ThemeBg("#059669")).
		Bold(true).
		Underline(true).
		Padding(0, 1)
	t.NavBar = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)
	t.Menu = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.EmeraldSoft).
		Padding(0, 1)
	t.MenuItem = r.NewStyle().Foreground(t.Emerald).Bold(true)
	t.MenuCursor = r.NewStyle().Foreground(t.Amber).Bold(true)
	t.Badge = r.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#022C22"}).
		Background(t.Emerald).
		Bold(true).
		Padding(0, 1)
	t.ScrollTop = r.NewStyle().
		Foreground(ThemeFg("#451A03")).
		Background(t.Amber).
		Bold(true).
		Padding(0, 1)
	t.Status = r.NewStyle().Foreground(t.Muted)
	t.StatusError = r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}).Bold(true)

	return t
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Footer zone ids.
const (
	zoneMenu      = "menu"
	zoneScrollTop = "scroll-top"
)

// zone is a clickable screen rectangle, one row high.
type zone struct {
	id     string
	x0, x1 int // [x0, x1)
	y      int
}

func hit(zones []zone, x, y int) (string, bool) {
	for _, z := range zones {
		if y == z.y && x >= z.x0 && x < z.x1 {
			return z.id, true
		}
	}
	return "", false
}

// chapterBar renders the wide-layout navigation bar and its click zones.
// Labels fall back to their short form, then get truncated, when the full
// labels do not fit.
func (m Model) chapterBar() (string, []zone) {
	t := m.theme
	chapters := m.ctrl.Chapters()
	avail := m.width - boxFrame - boxPadding

	label := func(i int) string {
		return IconGlyph(chapters[i].Icon) + " " + chapters[i].Label
	}
	total := func(f func(int) string) int {
		w := len(chapters) - 1
		for i := range chapters {
			w += lipgloss.Width(t.NavItem.Render(f(i)))
		}
		return w
	}
	if total(label) > avail {
		label = func(i int) string {
			return IconGlyph(chapters[i].Icon) + " " + shortLabel(chapters[i].Label)
		}
	}
	if total(label) > avail {
		share := max(1, avail/len(chapters)-SpaceSM-1)
		short := label
		label = func(i int) string { return truncate(short(i), share) }
	}

	items := make([]string, len(chapters))
	zones := make([]zone, len(chapters))
	x := sideFrame + SpaceXS
	for i, ch := range chapters {
		style := t.NavItem
		if m.ctrl.IsActive(ch.ID) {
			style = t.NavItemActive
		}
		items[i] = style.Render(label(i))
		w := lipgloss.Width(items[i])
		zones[i] = zone{id: ch.ID, x0: x, x1: x + w, y: 1}
		x += w + 1
	}
	bar := t.NavBar.Width(m.width - boxFrame).Render(strings.Join(items, " "))
	return bar, zones
}

func (m Model) barZones() []zone {
	_, zones := m.chapterBar()
	return zones
}

// renderMenu renders the chapter menu drawer.
func (m Model) renderMenu() string {
	t := m.theme
	chapters := m.ctrl.Chapters()
	items := make([]string, len(chapters))
	widest := 0
	for i, ch := range chapters {
		items[i] = truncate(IconGlyph(ch.Icon)+" "+ch.Label, max(1, m.width-boxFrame-boxPadding-SpaceSM))
		widest = max(widest, lipgloss.Width(items[i]))
	}
	lines := make([]string, len(chapters))
	for i, ch := range chapters {
		cursor := "  "
		if i == m.menuCursor {
			cursor = t.MenuCursor.Render(menuCursor) + " "
		}
		style := t.MenuItem
		if m.ctrl.IsActive(ch.ID) {
			style = style.Underline(true)
		}
		lines[i] = cursor + style.Render(padRight(items[i], widest))
	}
	return t.Menu.Render(strings.Join(lines, "\n"))
}

// menuZones are the visible menu rows in screen coordinates. Rows that fall
// below the body are cut off by the overlay and get no zone.
func (m Model) menuZones() []zone {
	width := lipgloss.Width(m.renderMenu())
	top := m.bodyTop() + 1
	bottom := m.bodyTop() + m.bodyHeight()
	var zones []zone
	for i, ch := range m.ctrl.Chapters() {
		y := top + i
		if y >= bottom {
			break
		}
		zones = append(zones, zone{id: ch.ID, x0: 0, x1: width, y: y})
	}
	return zones
}

// footerBadges renders the left footer badges and their zones.
func (m Model) footerBadges() (string, []zone) {
	t := m.theme
	var parts []string
	var zones []zone
	x := 0
	y := m.height - footerHeight

	add := func(id, s string) {
		parts = append(parts, s)
		w := lipgloss.Width(s)
		zones = append(zones, zone{id: id, x0: x, x1: x + w, y: y})
		x += w + 1
	}
	if m.compact() {
		active, _ := m.doc.Chapter(m.ctrl.State().ActiveChapterID)
		add(zoneMenu, RenderBadge(t, "☰ "+shortLabel(active.Label)))
	}
	if m.ctrl.State().ScrollTopVisible {
		add(zoneScrollTop, RenderScrollTopBadge(t))
	}
	return strings.Join(parts, " "), zones
}

func (m Model) footerZones() []zone {
	_, zones := m.footerBadges()
	return zones
}

func (m *Model) renderFooter() string {
	t := m.theme
	badges, _ := m.footerBadges()
	percent := t.Status.Render(fmt.Sprintf("%3.f%%", m.surface.ScrollPercent()*100))

	var middle string
	if m.statusMsg != "" {
		prefix := "✓ "
		style := t.Status
		if m.statusIsError {
			prefix = "✗ "
			style = t.StatusError
		}
		middle = style.Render(prefix + m.statusMsg)
	} else {
		m.help.Width = max(0, m.width-lipgloss.Width(badges)-lipgloss.Width(percent)-SpaceSM*2)
		middle = m.help.View(m.keys)
	}

	left := badges
	if left != "" {
		left += strings.Repeat(" ", SpaceSM)
	}
	left += middle
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(percent))
	return left + strings.Repeat(" ", gap) + percent
}

package ui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/ahkam/pkg/config"
	"github.com/vanderheijden86/ahkam/pkg/content"
	"github.com/vanderheijden86/ahkam/pkg/debug"
	"github.com/vanderheijden86/ahkam/pkg/export"
	"github.com/vanderheijden86/ahkam/pkg/metrics"
	"github.com/vanderheijden86/ahkam/pkg/nav"
	"github.com/vanderheijden86/ahkam/pkg/watcher"
)

// Default terminal size used until the first WindowSizeMsg arrives.
const (
	defaultWidth  = 100
	defaultHeight = 30
)

// Chrome heights: the bordered chapter bar and the one-line footer.
const (
	barHeight    = 3
	footerHeight = 1
)

// wheelLines is how far one mouse wheel notch scrolls.
const wheelLines = 3

// writeClipboard is swapped out in tests.
var writeClipboard = clipboard.WriteAll

// FileChangedMsg is sent when the content file changes on disk
type FileChangedMsg struct{}

// WatchErrorMsg reports a watcher failure.
type WatchErrorMsg struct {
	Err error
}

// WatchFileCmd returns a command that waits for file changes and sends FileChangedMsg
func WatchFileCmd(w *watcher.Watcher) tea.Cmd {
	return func() tea.Msg {
		<-w.Changed()
		return FileChangedMsg{}
	}
}

// Options configures NewModel.
type Options struct {
	Config config.Config
	// ContentPath is reloaded on FileChangedMsg. Empty means the embedded
	// document, which never changes.
	ContentPath string
	Watcher     *watcher.Watcher
	// StartChapter is selected once the terminal size is known.
	StartChapter string
}

// mount tracks the live scroll subscription across Model copies.
type mount struct {
	release func()
}

// Model is the main Bubble Tea model for ahkam.
type Model struct {
	doc   content.Document
	cfg   config.Config
	theme Theme
	keys  KeyMap
	help  help.Model

	surface  *Surface
	ctrl     *nav.Controller
	mount    *mount
	rendered Rendered

	width  int
	height int

	contentPath    string
	watcher        *watcher.Watcher
	pendingChapter string

	menuCursor int
	showHelp   bool
	helpView   helpOverlay
	ticking    bool

	statusMsg     string
	statusIsError bool
}

// NewModel lays out doc and mounts the navigation controller on the page.
func NewModel(doc content.Document, opts Options) (Model, error) {
	if len(doc.Chapters) == 0 {
		return Model{}, content.ErrNoChapters
	}
	cfg := opts.Config
	if cfg == (config.Config{}) {
		cfg = config.DefaultConfig()
	}

	m := Model{
		doc:            doc,
		cfg:            cfg,
		theme:          DefaultTheme(lipgloss.DefaultRenderer()),
		keys:           DefaultKeyMap(),
		help:           help.New(),
		width:          defaultWidth,
		height:         defaultHeight,
		contentPath:    opts.ContentPath,
		watcher:        opts.Watcher,
		pendingChapter: opts.StartChapter,
		mount:          &mount{release: func() {}},
	}
	m.surface = NewSurface(m.width, m.bodyHeight(), cfg.UI.LineHeight, cfg.UI.SmoothScroll)

	if err := m.render(); err != nil {
		return Model{}, err
	}
	if err := m.attach(doc.Chapters[0].ID); err != nil {
		return Model{}, err
	}
	if m.pendingChapter != "" && m.ctrl.ChapterIndex(m.pendingChapter) < 0 {
		return Model{}, fmt.Errorf("start chapter %q: %w", m.pendingChapter, nav.ErrUnknownChapter)
	}
	return m, nil
}

// attach builds a controller for the current document, starting on active,
// and subscribes it to the surface.
func (m *Model) attach(active string) error {
	ctrl, err := nav.NewController(m.doc.NavChapters(), m.surface,
		nav.WithScrollTopThreshold(m.cfg.UI.ScrollTopThreshold),
		nav.WithActiveChapter(active),
		nav.WithOnChange(func(s nav.State) {
			debug.Log("nav: active=%s menu=%v scroll-top=%v", s.ActiveChapterID, s.MobileMenuOpen, s.ScrollTopVisible)
		}),
	)
	if err != nil {
		return err
	}
	m.mount.release()
	m.ctrl = ctrl
	m.mount.release = ctrl.Mount()
	ctrl.OnScroll()
	m.menuCursor = ctrl.ActiveIndex()
	return nil
}

// render lays the document out for the current width.
func (m *Model) render() error {
	r, err := RenderDocument(m.doc, m.theme, m.width)
	if err != nil {
		return err
	}
	m.rendered = r
	m.surface.SetContent(r.Text, r.Anchors)
	return nil
}

// Stop releases the scroll subscription and stops the watcher.
func (m Model) Stop() {
	if m.mount != nil {
		m.mount.release()
	}
	if m.watcher != nil {
		m.watcher.Stop()
	}
}

// NavState returns the navigation state.
func (m Model) NavState() nav.State {
	return m.ctrl.State()
}

// Surface returns the scroll surface.
func (m Model) Surface() *Surface {
	return m.surface
}

// Document returns the document being shown.
func (m Model) Document() content.Document {
	return m.doc
}

func (m Model) compact() bool {
	return m.width < m.cfg.UI.CompactWidth
}

func (m Model) bodyHeight() int {
	h := m.height - footerHeight
	if !m.compact() {
		h -= barHeight
	}
	return max(1, h)
}

func (m Model) bodyTop() int {
	if m.compact() {
		return 0
	}
	return barHeight
}

func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	if m.watcher != nil {
		cmds = append(cmds, WatchFileCmd(m.watcher))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		if id := m.pendingChapter; id != "" {
			m.pendingChapter = ""
			m.selectChapter(id)
			m.surface.Finish()
		}

	case scrollTickMsg:
		m.ticking = false
		m.surface.Step()

	case FileChangedMsg:
		m.reload()
		if m.watcher != nil {
			cmds = append(cmds, WatchFileCmd(m.watcher))
		}

	case WatchErrorMsg:
		m.statusMsg = fmt.Sprintf("Watch error: %v", msg.Err)
		m.statusIsError = true

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKey(msg)
		if cmd != nil {
			return m, cmd
		}

	case tea.MouseMsg:
		m = m.handleMouse(msg)
	}

	if cmd := m.ensureTick(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// ensureTick starts the animation clock when a smooth scroll is pending.
func (m *Model) ensureTick() tea.Cmd {
	if !m.surface.Animating() || m.ticking {
		return nil
	}
	m.ticking = true
	return scrollTicker()
}

// resize re-lays the page for a new terminal size, keeping the reading
// position proportionally.
func (m *Model) resize(width, height int) {
	oldLine, oldLines := m.surface.Line(), m.surface.Lines()
	animating := m.surface.Animating()
	m.width, m.height = width, height
	m.surface.SetSize(width, m.bodyHeight())
	if err := m.render(); err != nil {
		m.statusMsg = err.Error()
		m.statusIsError = true
		return
	}
	if !m.retarget(animating) && oldLines > 0 && oldLine > 0 {
		m.surface.ScrollToLine(oldLine * m.surface.Lines() / oldLines)
	}
	if m.showHelp {
		m.helpView = newHelpOverlay(m.keys, m.cfg.UI.GlamourStyle, m.width, m.height-footerHeight)
	}
}

// reload re-reads the content file. On failure the current document stays.
func (m *Model) reload() {
	if m.contentPath == "" {
		return
	}
	defer debug.LogEnterExit("reload")()

	doc, err := content.LoadFile(m.contentPath)
	if err != nil {
		m.statusMsg = fmt.Sprintf("Reload failed: %v", err)
		m.statusIsError = true
		return
	}
	keep := m.ctrl.State().ActiveChapterID
	animating := m.surface.Animating()
	m.doc = doc
	if err := m.render(); err != nil {
		m.statusMsg = fmt.Sprintf("Reload failed: %v", err)
		m.statusIsError = true
		return
	}
	if err := m.attach(keep); err != nil {
		m.statusMsg = fmt.Sprintf("Reload failed: %v", err)
		m.statusIsError = true
		return
	}
	m.retarget(animating)
	m.statusMsg = fmt.Sprintf("Reloaded %d chapters", len(doc.Chapters))
	m.statusIsError = false
}

// retarget points an in-flight smooth scroll at the active chapter's section
// in the new layout, since a re-layout moves every anchor. It reports whether
// the scroll was re-issued.
func (m *Model) retarget(animating bool) bool {
	if !animating {
		return false
	}
	offset, ok := m.surface.SectionOffset(m.ctrl.State().ActiveChapterID)
	if !ok {
		return false
	}
	m.surface.SmoothScrollTo(offset)
	return true
}

func (m *Model) selectChapter(id string) {
	if err := m.ctrl.SelectChapter(id); err != nil {
		m.statusMsg = err.Error()
		m.statusIsError = true
		return
	}
	m.menuCursor = m.ctrl.ActiveIndex()
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.showHelp {
		return m.handleHelpKeys(msg), nil
	}
	if m.ctrl.State().MobileMenuOpen {
		return m.handleMenuKeys(msg)
	}

	m.statusMsg = ""
	m.statusIsError = false
	page := m.surface.Height()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.surface.ScrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.surface.ScrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.surface.ScrollBy(-page)
	case key.Matches(msg, m.keys.PageDown):
		m.surface.ScrollBy(page)
	case key.Matches(msg, m.keys.HalfUp):
		m.surface.ScrollBy(-page / 2)
	case key.Matches(msg, m.keys.HalfDown):
		m.surface.ScrollBy(page / 2)
	case key.Matches(msg, m.keys.Top):
		m.surface.ScrollToLine(0)
	case key.Matches(msg, m.keys.Bottom):
		m.surface.GotoBottom()
	case key.Matches(msg, m.keys.Next):
		m.ctrl.Step(1)
	case key.Matches(msg, m.keys.Prev):
		m.ctrl.Step(-1)
	case key.Matches(msg, m.keys.Chapter):
		m.selectNumbered(msg)
	case key.Matches(msg, m.keys.Menu):
		m.ctrl.ToggleMobileMenu()
		m.menuCursor = m.ctrl.ActiveIndex()
	case key.Matches(msg, m.keys.ScrollTop):
		if m.ctrl.State().ScrollTopVisible {
			m.ctrl.ScrollToTop()
		}
	case key.Matches(msg, m.keys.Copy):
		m.copyActiveChapter()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpView = newHelpOverlay(m.keys, m.cfg.UI.GlamourStyle, m.width, m.height-footerHeight)
	}
	return m, nil
}

func (m Model) handleMenuKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := len(m.doc.Chapters)
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Down):
		m.menuCursor = (m.menuCursor + 1) % n
	case key.Matches(msg, m.keys.Up):
		m.menuCursor = (m.menuCursor - 1 + n) % n
	case key.Matches(msg, m.keys.Select):
		m.selectChapter(m.doc.Chapters[m.menuCursor].ID)
	case key.Matches(msg, m.keys.Chapter):
		m.selectNumbered(msg)
	case key.Matches(msg, m.keys.Close), key.Matches(msg, m.keys.Menu):
		m.ctrl.CloseMobileMenu()
	}
	return m, nil
}

// handleHelpKeys handles keyboard input when the help overlay is shown
func (m Model) handleHelpKeys(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.helpView.scroll(1)
	case key.Matches(msg, m.keys.Up):
		m.helpView.scroll(-1)
	case key.Matches(msg, m.keys.HalfDown), key.Matches(msg, m.keys.PageDown):
		m.helpView.scroll(10)
	case key.Matches(msg, m.keys.HalfUp), key.Matches(msg, m.keys.PageUp):
		m.helpView.scroll(-10)
	default:
		// Any other key dismisses help
		m.showHelp = false
	}
	return m
}

func (m *Model) selectNumbered(msg tea.KeyMsg) {
	i, ok := chapterNumber(msg)
	if !ok || i >= len(m.doc.Chapters) {
		return
	}
	m.selectChapter(m.doc.Chapters[i].ID)
}

func (m *Model) copyActiveChapter() {
	id := m.ctrl.State().ActiveChapterID
	md, err := export.ChapterMarkdown(m.doc, id)
	if err == nil {
		err = writeClipboard(md)
	}
	if err != nil {
		m.statusMsg = fmt.Sprintf("Clipboard error: %v", err)
		m.statusIsError = true
		return
	}
	ch, _ := m.doc.Chapter(id)
	m.statusMsg = fmt.Sprintf("📋 Copied %s to clipboard", shortLabel(ch.Label))
	m.statusIsError = false
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	if m.showHelp {
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.helpView.scroll(-wheelLines)
		case tea.MouseButtonWheelDown:
			m.helpView.scroll(wheelLines)
		}
		return m
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.surface.ScrollBy(-wheelLines)
		return m
	case tea.MouseButtonWheelDown:
		m.surface.ScrollBy(wheelLines)
		return m
	case tea.MouseButtonLeft:
	default:
		return m
	}
	if msg.Action != tea.MouseActionPress {
		return m
	}

	if m.ctrl.State().MobileMenuOpen {
		if id, ok := hit(m.menuZones(), msg.X, msg.Y); ok {
			m.selectChapter(id)
		} else {
			m.ctrl.CloseMobileMenu()
		}
		return m
	}
	if !m.compact() {
		if id, ok := hit(m.barZones(), msg.X, msg.Y); ok {
			m.selectChapter(id)
			return m
		}
	}
	if id, ok := hit(m.footerZones(), msg.X, msg.Y); ok {
		switch id {
		case zoneMenu:
			m.ctrl.ToggleMobileMenu()
			m.menuCursor = m.ctrl.ActiveIndex()
		case zoneScrollTop:
			m.ctrl.ScrollToTop()
		}
	}
	return m
}

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	footer := lipgloss.NewStyle().MaxWidth(m.width).Render(m.renderFooter())
	finalStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height)

	if m.showHelp {
		body := m.helpView.view(m.theme, m.width, m.height-footerHeight)
		return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
	}

	body := m.surface.View()
	if m.ctrl.State().MobileMenuOpen {
		body = overlayTop(body, m.renderMenu(), m.width)
	}
	if m.compact() {
		return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
	}
	bar, _ := m.chapterBar()
	return finalStyle.Render(lipgloss.JoinVertical(lipgloss.Left, bar, body, footer))
}

// overlayTop replaces the first lines of body with overlay.
func overlayTop(body, overlay string, width int) string {
	lines := strings.Split(body, "\n")
	for i, l := range strings.Split(overlay, "\n") {
		if i >= len(lines) {
			break
		}
		lines[i] = lipgloss.PlaceHorizontal(width, lipgloss.Left, l)
	}
	return strings.Join(lines, "\n")
}

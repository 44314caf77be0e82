package ui

import (
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/ahkam/pkg/config"
)

// scrollFrame is the smooth-scroll animation interval (60 fps).
const scrollFrame = time.Second / 60

// scrollEase divides the remaining distance on each animation frame.
const scrollEase = 5

type scrollTickMsg struct{}

func scrollTicker() tea.Cmd {
	return tea.Tick(scrollFrame, func(time.Time) tea.Msg {
		return scrollTickMsg{}
	})
}

// Surface is the scrollable page. It implements nav.Host over a viewport,
// reporting offsets as line × lineHeight so thresholds stay in pixel units.
// Scroll listeners run synchronously on every line change.
type Surface struct {
	vp         viewport.Model
	lineHeight int
	smooth     bool
	anchors    map[string]int

	listeners map[int]func()
	nextID    int

	target    int
	animating bool
}

// NewSurface creates an empty surface.
func NewSurface(width, height, lineHeight int, smooth bool) *Surface {
	if lineHeight <= 0 {
		lineHeight = config.DefaultLineHeight
	}
	return &Surface{
		vp:         viewport.New(width, height),
		lineHeight: lineHeight,
		smooth:     smooth,
		anchors:    map[string]int{},
		listeners:  map[int]func(){},
	}
}

// ScrollOffset implements nav.Host.
func (s *Surface) ScrollOffset() int {
	return s.vp.YOffset * s.lineHeight
}

// SectionOffset implements nav.Host.
func (s *Surface) SectionOffset(id string) (int, bool) {
	line, ok := s.anchors[id]
	if !ok {
		return 0, false
	}
	return line * s.lineHeight, true
}

// SmoothScrollTo implements nav.Host. With smooth scrolling off the surface
// jumps immediately; otherwise Step moves it toward the target.
func (s *Surface) SmoothScrollTo(offset int) {
	line := s.clampLine(offset / s.lineHeight)
	if !s.smooth {
		s.animating = false
		s.setLine(line)
		return
	}
	s.target = line
	s.animating = line != s.vp.YOffset
}

// Subscribe implements nav.Host.
func (s *Surface) Subscribe(fn func()) func() {
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	return func() {
		delete(s.listeners, id)
	}
}

// Listeners returns the number of active scroll subscriptions.
func (s *Surface) Listeners() int {
	return len(s.listeners)
}

// Animating reports whether a smooth scroll is in progress.
func (s *Surface) Animating() bool {
	return s.animating
}

// Target returns the line a smooth scroll is heading to.
func (s *Surface) Target() int {
	return s.target
}

// Step advances the animation by one ease-out frame and reports whether it
// is still running.
func (s *Surface) Step() bool {
	if !s.animating {
		return false
	}
	s.target = s.clampLine(s.target)
	diff := s.target - s.vp.YOffset
	step := diff / scrollEase
	if step == 0 {
		switch {
		case diff > 0:
			step = 1
		case diff < 0:
			step = -1
		}
	}
	s.setLine(s.vp.YOffset + step)
	if s.vp.YOffset == s.target {
		s.animating = false
	}
	return s.animating
}

// Finish jumps to the animation target.
func (s *Surface) Finish() {
	if !s.animating {
		return
	}
	s.animating = false
	s.setLine(s.target)
}

// ScrollBy moves by delta lines, cancelling any animation.
func (s *Surface) ScrollBy(delta int) {
	s.animating = false
	s.setLine(s.vp.YOffset + delta)
}

// ScrollToLine jumps to line, cancelling any animation.
func (s *Surface) ScrollToLine(line int) {
	s.animating = false
	s.setLine(line)
}

// GotoBottom jumps to the last page.
func (s *Surface) GotoBottom() {
	s.ScrollToLine(s.maxLine())
}

// Line returns the first visible line.
func (s *Surface) Line() int {
	return s.vp.YOffset
}

// Lines returns the total number of content lines.
func (s *Surface) Lines() int {
	return s.vp.TotalLineCount()
}

// Height returns the visible height in lines.
func (s *Surface) Height() int {
	return s.vp.Height
}

// ScrollPercent returns how far down the page the view is.
func (s *Surface) ScrollPercent() float64 {
	return s.vp.ScrollPercent()
}

// SetContent replaces the page text and its anchors. The offset is kept,
// clamped to the new content.
func (s *Surface) SetContent(text string, anchors map[string]int) {
	prev := s.vp.YOffset
	s.vp.SetContent(text)
	s.anchors = anchors
	s.restore(prev)
}

// SetSize resizes the visible area.
func (s *Surface) SetSize(width, height int) {
	prev := s.vp.YOffset
	s.vp.Width = width
	s.vp.Height = height
	s.restore(prev)
}

// restore re-applies prev after a content or size change and notifies
// listeners if clamping moved the view.
func (s *Surface) restore(prev int) {
	line := s.clampLine(prev)
	s.vp.SetYOffset(line)
	s.target = s.clampLine(s.target)
	if line != prev {
		s.dispatch()
	}
}

// View renders the visible lines.
func (s *Surface) View() string {
	return s.vp.View()
}

func (s *Surface) maxLine() int {
	return max(0, s.vp.TotalLineCount()-s.vp.Height)
}

func (s *Surface) clampLine(line int) int {
	return clamp(line, 0, s.maxLine())
}

// setLine moves the viewport and notifies listeners when the line changed.
func (s *Surface) setLine(line int) {
	line = s.clampLine(line)
	if line == s.vp.YOffset {
		return
	}
	s.vp.SetYOffset(line)
	s.dispatch()
}

func (s *Surface) dispatch() {
	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := s.listeners[id]; ok {
			fn()
		}
	}
}

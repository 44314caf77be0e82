// Package nav keeps the reader's navigation state in step with scroll and
// chapter selection events.
//
// The Controller owns three fields: the active chapter, whether the chapter
// menu (the compact-layout menu) is open, and whether the "back to top"
// affordance is visible. It never touches the screen directly; all scrolling
// goes through a Host supplied by the rendering layer.
package nav

import (
	"errors"
	"sync"

	"github.com/vanderheijden86/ahkam/pkg/debug"
)

// DefaultScrollTopThreshold is the offset above which the scroll-to-top
// affordance becomes visible.
const DefaultScrollTopThreshold = 400

// Errors returned by NewController and SelectChapter.
var (
	ErrNoChapters       = errors.New("nav: no chapters")
	ErrDuplicateChapter = errors.New("nav: duplicate chapter id")
	ErrUnknownChapter   = errors.New("nav: unknown chapter id")
)

// Chapter is a navigation entry.
type Chapter struct {
	ID    string
	Label string
	Icon  string // opaque icon reference, resolved by the renderer
}

// State is the navigation UI state.
type State struct {
	ActiveChapterID  string
	MobileMenuOpen   bool
	ScrollTopVisible bool
}

// Host is the scroll surface the controller drives.
type Host interface {
	// ScrollOffset returns the current vertical scroll offset.
	ScrollOffset() int
	// SectionOffset returns the offset of the section element with the given
	// id, or false when the surface has no such element.
	SectionOffset(id string) (int, bool)
	// SmoothScrollTo requests an animated scroll to offset. It does not block.
	SmoothScrollTo(offset int)
	// Subscribe registers fn for scroll events and returns a function that
	// removes it.
	Subscribe(fn func()) (unsubscribe func())
}

// Option configures a Controller.
type Option func(*Controller)

// WithScrollTopThreshold overrides DefaultScrollTopThreshold.
func WithScrollTopThreshold(px int) Option {
	return func(c *Controller) {
		c.threshold = px
	}
}

// WithOnChange registers a callback invoked after every state change.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) {
		c.onChange = fn
	}
}

// WithActiveChapter starts the controller on id instead of the first
// chapter. An unknown id is ignored. No scroll is requested.
func WithActiveChapter(id string) Option {
	return func(c *Controller) {
		if _, ok := c.index[id]; ok {
			c.state.ActiveChapterID = id
		}
	}
}

// Controller is the page controller. It is not safe for concurrent use; all
// calls are expected from the UI event loop.
type Controller struct {
	chapters  []Chapter
	index     map[string]int
	host      Host
	threshold int
	onChange  func(State)

	state State
}

// NewController creates a controller in its initial state: first chapter
// active, menu closed, scroll-to-top hidden.
func NewController(chapters []Chapter, host Host, opts ...Option) (*Controller, error) {
	if len(chapters) == 0 {
		return nil, ErrNoChapters
	}
	index := make(map[string]int, len(chapters))
	for i, ch := range chapters {
		if _, dup := index[ch.ID]; dup {
			return nil, ErrDuplicateChapter
		}
		index[ch.ID] = i
	}

	c := &Controller{
		chapters:  append([]Chapter(nil), chapters...),
		index:     index,
		host:      host,
		threshold: DefaultScrollTopThreshold,
		onChange:  func(State) {},
		state: State{
			ActiveChapterID: chapters[0].ID,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Mount subscribes OnScroll to the host's scroll events. The returned release
// function unsubscribes; calling it more than once is harmless.
func (c *Controller) Mount() (release func()) {
	unsubscribe := c.host.Subscribe(c.OnScroll)
	var once sync.Once
	return func() {
		once.Do(unsubscribe)
	}
}

// OnScroll re-derives scroll-to-top visibility from the host's offset.
func (c *Controller) OnScroll() {
	visible := c.host.ScrollOffset() > c.threshold
	if visible == c.state.ScrollTopVisible {
		return
	}
	c.state.ScrollTopVisible = visible
	c.onChange(c.state)
}

// SelectChapter makes id the active chapter, scrolls its section into view
// when the host has one, and closes the chapter menu. A chapter whose section
// is missing from the surface still becomes active; only the scroll is skipped.
func (c *Controller) SelectChapter(id string) error {
	if _, ok := c.index[id]; !ok {
		return ErrUnknownChapter
	}

	c.state.ActiveChapterID = id
	if offset, ok := c.host.SectionOffset(id); ok {
		c.host.SmoothScrollTo(offset)
	} else {
		debug.Log("nav: no section element for chapter %q, scroll skipped", id)
	}
	c.state.MobileMenuOpen = false
	c.onChange(c.state)
	return nil
}

// ToggleMobileMenu flips the chapter menu.
func (c *Controller) ToggleMobileMenu() {
	c.state.MobileMenuOpen = !c.state.MobileMenuOpen
	c.onChange(c.state)
}

// CloseMobileMenu closes the chapter menu, as a click on the backdrop does.
func (c *Controller) CloseMobileMenu() {
	if !c.state.MobileMenuOpen {
		return
	}
	c.state.MobileMenuOpen = false
	c.onChange(c.state)
}

// ScrollToTop requests a smooth scroll to offset 0.
func (c *Controller) ScrollToTop() {
	c.host.SmoothScrollTo(0)
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	return c.state
}

// Chapters returns the fixed chapter list.
func (c *Controller) Chapters() []Chapter {
	return append([]Chapter(nil), c.chapters...)
}

// IsActive reports whether id is the active chapter.
func (c *Controller) IsActive(id string) bool {
	return c.state.ActiveChapterID == id
}

// ChapterIndex returns the position of id in the chapter list, or -1.
func (c *Controller) ChapterIndex(id string) int {
	if i, ok := c.index[id]; ok {
		return i
	}
	return -1
}

// ActiveIndex returns the position of the active chapter.
func (c *Controller) ActiveIndex() int {
	return c.index[c.state.ActiveChapterID]
}

// Step selects the chapter delta positions away from the active one,
// wrapping around the ends.
func (c *Controller) Step(delta int) {
	n := len(c.chapters)
	i := ((c.ActiveIndex()+delta)%n + n) % n
	_ = c.SelectChapter(c.chapters[i].ID)
}

package testutil

import "sort"

// FakeHost is a scriptable scroll surface. Offsets are plain integers; smooth
// scroll requests are recorded and applied instantly unless Deferred is set.
type FakeHost struct {
	Offset   int
	Sections map[string]int
	Deferred bool

	// Scrolls records every SmoothScrollTo target in call order.
	Scrolls []int

	listeners map[int]func()
	nextID    int
}

// NewFakeHost creates a host with one section per id, spaced 1000 apart.
func NewFakeHost(ids ...string) *FakeHost {
	h := &FakeHost{Sections: make(map[string]int, len(ids))}
	for i, id := range ids {
		h.Sections[id] = i * 1000
	}
	return h
}

// ScrollOffset implements nav.Host.
func (h *FakeHost) ScrollOffset() int {
	return h.Offset
}

// SectionOffset implements nav.Host.
func (h *FakeHost) SectionOffset(id string) (int, bool) {
	off, ok := h.Sections[id]
	return off, ok
}

// SmoothScrollTo implements nav.Host.
func (h *FakeHost) SmoothScrollTo(offset int) {
	h.Scrolls = append(h.Scrolls, offset)
	if !h.Deferred {
		h.ScrollTo(offset)
	}
}

// Subscribe implements nav.Host.
func (h *FakeHost) Subscribe(fn func()) func() {
	if h.listeners == nil {
		h.listeners = make(map[int]func())
	}
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		delete(h.listeners, id)
	}
}

// ScrollTo moves the surface and dispatches a scroll event, as the user
// scrolling would.
func (h *FakeHost) ScrollTo(offset int) {
	h.Offset = offset
	ids := make([]int, 0, len(h.listeners))
	for id := range h.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		h.listeners[id]()
	}
}

// Listeners returns the number of active scroll subscriptions.
func (h *FakeHost) Listeners() int {
	return len(h.listeners)
}

package ui

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func linesOf(n int) string {
	return strings.TrimSuffix(strings.Repeat("line\n", n), "\n")
}

func newTestSurface(smooth bool) *Surface {
	s := NewSurface(80, 20, 16, smooth)
	s.SetContent(linesOf(200), map[string]int{"a": 0, "b": 50, "c": 190})
	return s
}

func settleSurface(t *testing.T, s *Surface) int {
	t.Helper()
	steps := 0
	for s.Animating() {
		s.Step()
		steps++
		if steps > 1000 {
			t.Fatal("animation did not converge")
		}
	}
	return steps
}

func TestSurface_Offsets(t *testing.T) {
	s := newTestSurface(true)
	if s.ScrollOffset() != 0 {
		t.Errorf("initial offset = %d", s.ScrollOffset())
	}
	if off, ok := s.SectionOffset("b"); !ok || off != 800 {
		t.Errorf("SectionOffset(b) = %d, %v; want 800, true", off, ok)
	}
	if _, ok := s.SectionOffset("missing"); ok {
		t.Error("missing section reported present")
	}
	s.ScrollToLine(10)
	if s.ScrollOffset() != 160 {
		t.Errorf("offset at line 10 = %d, want 160", s.ScrollOffset())
	}
}

func TestSurface_SmoothScrollConverges(t *testing.T) {
	s := newTestSurface(true)
	s.SmoothScrollTo(800)
	if !s.Animating() {
		t.Fatal("expected animation to start")
	}
	if s.Line() != 0 {
		t.Error("smooth scroll must not jump")
	}
	steps := settleSurface(t, s)
	if s.Line() != 50 {
		t.Errorf("line = %d, want 50", s.Line())
	}
	if steps < 2 {
		t.Errorf("expected several frames, got %d", steps)
	}
}

func TestSurface_SmoothScrollClampsTarget(t *testing.T) {
	s := newTestSurface(true)
	off, _ := s.SectionOffset("c")
	s.SmoothScrollTo(off)
	settleSurface(t, s)
	if s.Line() != 180 {
		t.Errorf("line = %d, want last page start 180", s.Line())
	}
}

func TestSurface_InstantWhenSmoothOff(t *testing.T) {
	s := newTestSurface(false)
	s.SmoothScrollTo(800)
	if s.Animating() || s.Line() != 50 {
		t.Errorf("expected instant jump to 50, line=%d animating=%v", s.Line(), s.Animating())
	}
}

func TestSurface_SubscribeDispatchesOnChange(t *testing.T) {
	s := newTestSurface(false)
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	s.ScrollBy(1)
	s.ScrollBy(0)
	s.ScrollToLine(-5) // clamps to 0
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}

	unsubscribe()
	s.ScrollBy(5)
	if calls != 2 || s.Listeners() != 0 {
		t.Errorf("listener still active after unsubscribe (calls=%d)", calls)
	}
}

func TestSurface_ManualScrollCancelsAnimation(t *testing.T) {
	s := newTestSurface(true)
	s.SmoothScrollTo(800)
	s.Step()
	s.ScrollBy(1)
	if s.Animating() {
		t.Error("manual scroll should cancel the animation")
	}
}

func TestSurface_FinishJumpsToTarget(t *testing.T) {
	s := newTestSurface(true)
	s.SmoothScrollTo(800)
	s.Finish()
	if s.Animating() || s.Line() != 50 {
		t.Errorf("Finish: line=%d animating=%v", s.Line(), s.Animating())
	}
}

func TestSurface_SetContentClamps(t *testing.T) {
	s := newTestSurface(false)
	s.GotoBottom()
	calls := 0
	s.Subscribe(func() { calls++ })

	s.SetContent(linesOf(30), map[string]int{"a": 0})
	if s.Line() != 10 {
		t.Errorf("line = %d, want 10", s.Line())
	}
	if calls != 1 {
		t.Errorf("clamping should notify once, got %d", calls)
	}

	s.SetContent(linesOf(30), map[string]int{"a": 0})
	if calls != 1 {
		t.Errorf("unchanged offset should not notify, got %d", calls)
	}
}

func TestSurface_SetSize(t *testing.T) {
	s := newTestSurface(false)
	s.GotoBottom()
	s.SetSize(80, 50)
	if s.Line() != 150 || s.Height() != 50 {
		t.Errorf("after resize line=%d height=%d", s.Line(), s.Height())
	}
}

func TestProperty_SmoothScrollReachesClampedTarget(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lines := rapid.IntRange(1, 400).Draw(rt, "lines")
		height := rapid.IntRange(1, 60).Draw(rt, "height")
		s := NewSurface(80, height, 16, true)
		s.SetContent(linesOf(lines), nil)
		s.ScrollToLine(rapid.IntRange(0, lines).Draw(rt, "start"))

		offset := rapid.IntRange(-1000, 10000).Draw(rt, "offset")
		s.SmoothScrollTo(offset)
		for i := 0; s.Animating(); i++ {
			if i > 1000 {
				rt.Fatal("animation did not converge")
			}
			s.Step()
		}
		want := clamp(offset/16, 0, max(0, lines-height))
		if s.Line() != want {
			rt.Fatalf("line = %d, want %d", s.Line(), want)
		}
	})
}

package nav_test

import (
	"errors"
	"testing"

	"pgregory.net/rapid"

	"github.com/vanderheijden86/ahkam/pkg/nav"
	"github.com/vanderheijden86/ahkam/pkg/testutil"
)

var testChapters = []nav.Chapter{
	{ID: "chap1", Label: "الباب الأول | Bab 1", Icon: "book"},
	{ID: "chap2", Label: "الباب الثاني | Bab 2", Icon: "shield-check"},
	{ID: "chap3", Label: "الباب الثالث | Bab 3", Icon: "compass"},
}

func newTestController(t *testing.T, opts ...nav.Option) (*nav.Controller, *testutil.FakeHost) {
	t.Helper()
	host := testutil.NewFakeHost("chap1", "chap2", "chap3")
	c, err := nav.NewController(testChapters, host, opts...)
	if err != nil {
		t.Fatalf("NewController: %v", err)
	}
	return c, host
}

func TestNewController_InitialState(t *testing.T) {
	c, _ := newTestController(t)
	testutil.AssertState(t, c.State(), nav.State{ActiveChapterID: "chap1"})
}

func TestNewController_WithActiveChapter(t *testing.T) {
	c, host := newTestController(t, nav.WithActiveChapter("chap3"))
	testutil.AssertState(t, c.State(), nav.State{ActiveChapterID: "chap3"})
	if len(host.Scrolls) != 0 {
		t.Errorf("initial chapter must not scroll, got %v", host.Scrolls)
	}

	c, _ = newTestController(t, nav.WithActiveChapter("missing"))
	if got := c.State().ActiveChapterID; got != "chap1" {
		t.Errorf("unknown initial chapter should fall back to chap1, got %q", got)
	}
}

func TestNewController_Errors(t *testing.T) {
	host := testutil.NewFakeHost()
	if _, err := nav.NewController(nil, host); !errors.Is(err, nav.ErrNoChapters) {
		t.Errorf("expected ErrNoChapters, got %v", err)
	}
	dup := []nav.Chapter{{ID: "a"}, {ID: "a"}}
	if _, err := nav.NewController(dup, host); !errors.Is(err, nav.ErrDuplicateChapter) {
		t.Errorf("expected ErrDuplicateChapter, got %v", err)
	}
}

func TestOnScroll_Threshold(t *testing.T) {
	tests := []struct {
		offset int
		want   bool
	}{
		{0, false},
		{100, false},
		{399, false},
		{400, false},
		{401, true},
		{500, true},
		{10000, true},
	}
	for _, tt := range tests {
		c, host := newTestController(t)
		host.Offset = tt.offset
		c.OnScroll()
		if got := c.State().ScrollTopVisible; got != tt.want {
			t.Errorf("offset %d: ScrollTopVisible = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestOnScroll_CustomThreshold(t *testing.T) {
	c, host := newTestController(t, nav.WithScrollTopThreshold(10))
	host.Offset = 11
	c.OnScroll()
	if !c.State().ScrollTopVisible {
		t.Error("expected visible above custom threshold")
	}
}

func TestScrollScenario_ShowThenHide(t *testing.T) {
	c, host := newTestController(t)
	release := c.Mount()
	defer release()

	host.ScrollTo(500)
	if !c.State().ScrollTopVisible {
		t.Fatal("expected scroll-top visible after scrolling to 500")
	}
	host.ScrollTo(100)
	if c.State().ScrollTopVisible {
		t.Error("expected scroll-top hidden after scrolling back to 100")
	}
}

func TestSelectChapter_EveryChapter(t *testing.T) {
	for _, ch := range testChapters {
		c, host := newTestController(t)
		c.ToggleMobileMenu()

		if err := c.SelectChapter(ch.ID); err != nil {
			t.Fatalf("SelectChapter(%q): %v", ch.ID, err)
		}
		st := c.State()
		if st.ActiveChapterID != ch.ID {
			t.Errorf("ActiveChapterID = %q, want %q", st.ActiveChapterID, ch.ID)
		}
		if st.MobileMenuOpen {
			t.Errorf("menu should be closed after selecting %q", ch.ID)
		}
		if len(host.Scrolls) != 1 || host.Scrolls[0] != host.Sections[ch.ID] {
			t.Errorf("expected one scroll to %d, got %v", host.Sections[ch.ID], host.Scrolls)
		}
	}
}

func TestSelectChapter_WhileMenuOpen(t *testing.T) {
	c, _ := newTestController(t)
	c.ToggleMobileMenu()
	if !c.State().MobileMenuOpen {
		t.Fatal("menu should be open")
	}

	if err := c.SelectChapter("chap2"); err != nil {
		t.Fatal(err)
	}
	testutil.AssertState(t, c.State(), nav.State{ActiveChapterID: "chap2"})
}

func TestSelectChapter_MissingSectionSkipsScroll(t *testing.T) {
	c, host := newTestController(t)
	delete(host.Sections, "chap3")
	c.ToggleMobileMenu()

	if err := c.SelectChapter("chap3"); err != nil {
		t.Fatalf("missing section must not be an error: %v", err)
	}
	testutil.AssertState(t, c.State(), nav.State{ActiveChapterID: "chap3"})
	if len(host.Scrolls) != 0 {
		t.Errorf("expected no scroll, got %v", host.Scrolls)
	}
}

func TestSelectChapter_UnknownIDLeavesState(t *testing.T) {
	c, host := newTestController(t)
	c.ToggleMobileMenu()

	err := c.SelectChapter("nope")
	if !errors.Is(err, nav.ErrUnknownChapter) {
		t.Fatalf("expected ErrUnknownChapter, got %v", err)
	}
	testutil.AssertState(t, c.State(), nav.State{ActiveChapterID: "chap1", MobileMenuOpen: true})
	if len(host.Scrolls) != 0 {
		t.Errorf("expected no scroll, got %v", host.Scrolls)
	}
}

func TestToggleMobileMenu_Twice(t *testing.T) {
	c, _ := newTestController(t)
	c.ToggleMobileMenu()
	c.ToggleMobileMenu()
	if c.State().MobileMenuOpen {
		t.Error("two toggles should restore the closed menu")
	}
}

func TestCloseMobileMenu(t *testing.T) {
	c, _ := newTestController(t)
	c.CloseMobileMenu()
	if c.State().MobileMenuOpen {
		t.Error("close on a closed menu should keep it closed")
	}
	c.ToggleMobileMenu()
	c.CloseMobileMenu()
	if c.State().MobileMenuOpen {
		t.Error("expected menu closed")
	}
}

func TestScrollToTop_Unconditional(t *testing.T) {
	c, host := newTestController(t)
	c.ScrollToTop()
	host.Offset = 2000
	c.ScrollToTop()
	if len(host.Scrolls) != 2 || host.Scrolls[0] != 0 || host.Scrolls[1] != 0 {
		t.Errorf("expected two scrolls to 0, got %v", host.Scrolls)
	}
}

func TestMount_ReleaseIsSymmetricAndIdempotent(t *testing.T) {
	c, host := newTestController(t)
	release := c.Mount()
	if host.Listeners() != 1 {
		t.Fatalf("expected 1 listener after mount, got %d", host.Listeners())
	}
	release()
	release()
	if host.Listeners() != 0 {
		t.Errorf("expected 0 listeners after release, got %d", host.Listeners())
	}

	host.ScrollTo(1000)
	if c.State().ScrollTopVisible {
		t.Error("released controller should not observe scrolling")
	}
}

func TestOnChange_Notified(t *testing.T) {
	var seen []nav.State
	c, _ := newTestController(t, nav.WithOnChange(func(s nav.State) { seen = append(seen, s) }))
	c.ToggleMobileMenu()
	_ = c.SelectChapter("chap2")
	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(seen))
	}
	if seen[1].ActiveChapterID != "chap2" || seen[1].MobileMenuOpen {
		t.Errorf("unexpected final notification %+v", seen[1])
	}
}

func TestStep_Wraps(t *testing.T) {
	c, _ := newTestController(t)
	c.Step(-1)
	if got := c.State().ActiveChapterID; got != "chap3" {
		t.Errorf("Step(-1) from first = %q, want chap3", got)
	}
	c.Step(1)
	if got := c.State().ActiveChapterID; got != "chap1" {
		t.Errorf("Step(1) from last = %q, want chap1", got)
	}
	if c.ChapterIndex("chap2") != 1 || c.ChapterIndex("x") != -1 {
		t.Error("ChapterIndex mismatch")
	}
}

func TestProperty_ScrollTopVisibility(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		host := testutil.NewFakeHost("chap1", "chap2", "chap3")
		c, err := nav.NewController(testChapters, host)
		if err != nil {
			rt.Fatal(err)
		}
		offset := rapid.IntRange(-100, 5000).Draw(rt, "offset")
		host.Offset = offset
		c.OnScroll()
		if got, want := c.State().ScrollTopVisible, offset > nav.DefaultScrollTopThreshold; got != want {
			rt.Fatalf("offset %d: visible=%v want %v", offset, got, want)
		}
	})
}

func TestProperty_ActiveChapterAlwaysValid(t *testing.T) {
	ids := []string{"chap1", "chap2", "chap3", "missing", ""}
	rapid.Check(t, func(rt *rapid.T) {
		host := testutil.NewFakeHost("chap1", "chap2", "chap3")
		if rapid.Bool().Draw(rt, "dropSection") {
			delete(host.Sections, "chap2")
		}
		c, err := nav.NewController(testChapters, host)
		if err != nil {
			rt.Fatal(err)
		}
		release := c.Mount()
		defer release()

		steps := rapid.IntRange(1, 40).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				id := rapid.SampledFrom(ids).Draw(rt, "id")
				err := c.SelectChapter(id)
				if c.ChapterIndex(id) >= 0 {
					if err != nil {
						rt.Fatalf("valid id %q rejected: %v", id, err)
					}
					if c.State().ActiveChapterID != id || c.State().MobileMenuOpen {
						rt.Fatalf("select %q left state %+v", id, c.State())
					}
				}
			case 1:
				before := c.State().MobileMenuOpen
				c.ToggleMobileMenu()
				c.ToggleMobileMenu()
				if c.State().MobileMenuOpen != before {
					rt.Fatal("toggle pair is not an involution")
				}
			case 2:
				c.ToggleMobileMenu()
			case 3:
				host.ScrollTo(rapid.IntRange(0, 3000).Draw(rt, "offset"))
			case 4:
				c.ScrollToTop()
			}
			if c.ChapterIndex(c.State().ActiveChapterID) < 0 {
				rt.Fatalf("active chapter %q outside chapter list", c.State().ActiveChapterID)
			}
			if got, want := c.State().ScrollTopVisible, host.Offset > nav.DefaultScrollTopThreshold; got != want {
				rt.Fatalf("visibility %v out of sync with offset %d", got, host.Offset)
			}
		}
	})
}

package testutil

import (
	"reflect"
	"testing"

	"github.com/vanderheijden86/ahkam/pkg/content"
)

func TestGenerator_Deterministic(t *testing.T) {
	a := New(DefaultConfig()).Document()
	b := New(DefaultConfig()).Document()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce identical documents")
	}
}

func TestGenerator_DifferentSeeds(t *testing.T) {
	cfg := DefaultConfig()
	a := New(cfg).Document()
	cfg.Seed = 7
	b := New(cfg).Document()
	if reflect.DeepEqual(a, b) {
		t.Error("different seeds should produce different text")
	}
}

func TestGenerator_ProducesValidDocuments(t *testing.T) {
	for _, n := range []int{1, 3, 9} {
		cfg := DefaultConfig()
		cfg.Chapters = n
		cfg.BlocksPerChap = 5
		doc := New(cfg).Document()

		AssertChapterCount(t, doc, n)
		AssertNoDuplicateIDs(t, doc)
		if err := doc.Validate(); err != nil {
			t.Errorf("chapters=%d: generated document invalid: %v", n, err)
		}
	}
}

func TestGenerator_CoversEveryBlockKind(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Chapters = 1
	cfg.BlocksPerChap = 5
	doc := New(cfg).Document()

	kinds := make(map[content.BlockKind]bool)
	for _, b := range doc.Chapters[0].Blocks {
		kinds[b.Kind] = true
	}
	for _, k := range []content.BlockKind{
		content.BlockSubsection, content.BlockHadith, content.BlockVocabulary,
		content.BlockRulings, content.BlockDefinitions,
	} {
		if !kinds[k] {
			t.Errorf("missing block kind %q", k)
		}
	}
}

func TestFakeHost_SubscribeAndRelease(t *testing.T) {
	h := NewFakeHost("a", "b")
	calls := 0
	unsubscribe := h.Subscribe(func() { calls++ })

	h.ScrollTo(10)
	if calls != 1 {
		t.Fatalf("expected 1 scroll event, got %d", calls)
	}

	unsubscribe()
	h.ScrollTo(20)
	if calls != 1 {
		t.Errorf("listener called after unsubscribe")
	}
	if h.Listeners() != 0 {
		t.Errorf("expected no listeners, got %d", h.Listeners())
	}
}

func TestFakeHost_DeferredScroll(t *testing.T) {
	h := NewFakeHost("a")
	h.Deferred = true
	h.SmoothScrollTo(500)
	if h.Offset != 0 {
		t.Errorf("deferred host should not move, offset=%d", h.Offset)
	}
	if len(h.Scrolls) != 1 || h.Scrolls[0] != 500 {
		t.Errorf("expected recorded scroll to 500, got %v", h.Scrolls)
	}
}

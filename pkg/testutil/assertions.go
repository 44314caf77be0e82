package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/ahkam/pkg/content"
	"github.com/vanderheijden86/ahkam/pkg/nav"
)

// AssertChapterCount verifies the expected number of chapters.
func AssertChapterCount(t *testing.T, doc content.Document, expected int) {
	t.Helper()
	if len(doc.Chapters) != expected {
		t.Errorf("expected %d chapters, got %d", expected, len(doc.Chapters))
	}
}

// AssertNoDuplicateIDs verifies all chapter IDs are unique.
func AssertNoDuplicateIDs(t *testing.T, doc content.Document) {
	t.Helper()
	seen := make(map[string]bool)
	for _, ch := range doc.Chapters {
		if seen[ch.ID] {
			t.Errorf("duplicate chapter ID: %s", ch.ID)
		}
		seen[ch.ID] = true
	}
}

// AssertState compares a navigation state field by field.
func AssertState(t *testing.T, got, want nav.State) {
	t.Helper()
	if got.ActiveChapterID != want.ActiveChapterID {
		t.Errorf("ActiveChapterID = %q, want %q", got.ActiveChapterID, want.ActiveChapterID)
	}
	if got.MobileMenuOpen != want.MobileMenuOpen {
		t.Errorf("MobileMenuOpen = %v, want %v", got.MobileMenuOpen, want.MobileMenuOpen)
	}
	if got.ScrollTopVisible != want.ScrollTopVisible {
		t.Errorf("ScrollTopVisible = %v, want %v", got.ScrollTopVisible, want.ScrollTopVisible)
	}
}

// AssertContainsAll fails for every needle missing from haystack.
func AssertContainsAll(t *testing.T, haystack string, needles ...string) {
	t.Helper()
	for _, n := range needles {
		if !strings.Contains(haystack, n) {
			t.Errorf("expected output to contain %q", n)
		}
	}
}

// WriteContentFile marshals doc to YAML at dir/name and returns the path.
func WriteContentFile(t *testing.T, dir, name string, doc content.Document) string {
	t.Helper()
	data, err := yaml.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal content: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write content: %v", err)
	}
	return path
}

// ChapterIDs returns the chapter IDs in document order.
func ChapterIDs(doc content.Document) []string {
	ids := make([]string, len(doc.Chapters))
	for i, ch := range doc.Chapters {
		ids[i] = ch.ID
	}
	return ids
}

// Package testutil provides deterministic document fixtures and a scriptable
// scroll host for tests.
package testutil

import (
	"fmt"
	"math/rand"

	"github.com/vanderheijden86/ahkam/pkg/content"
)

// GeneratorConfig controls document generation.
type GeneratorConfig struct {
	Seed          int64  // Random seed for determinism (0 = 42)
	IDPrefix      string // Prefix for chapter IDs (default: "chap")
	Chapters      int    // Number of chapters (default: 3)
	BlocksPerChap int    // Blocks per chapter (default: 4)
}

// DefaultConfig returns a config suitable for most tests.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Seed:          42,
		IDPrefix:      "chap",
		Chapters:      3,
		BlocksPerChap: 4,
	}
}

// Generator creates content fixtures.
type Generator struct {
	cfg GeneratorConfig
	rng *rand.Rand
}

// New creates a Generator with the given config.
func New(cfg GeneratorConfig) *Generator {
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.IDPrefix == "" {
		cfg.IDPrefix = "chap"
	}
	if cfg.Chapters <= 0 {
		cfg.Chapters = 3
	}
	if cfg.BlocksPerChap <= 0 {
		cfg.BlocksPerChap = 4
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
}

var icons = []string{content.IconBook, content.IconShieldCheck, content.IconCompass}

var arabicWords = []string{"الحج", "الإحرام", "الزاد", "الراحلة", "عرفة", "الفدية", "المحرم", "الصيد"}

var malayWords = []string{"haji", "ihram", "bekalan", "kenderaan", "wukuf", "fidyah", "mahram", "buruan"}

// Document builds a valid document. The same config always yields the same
// document.
func (g *Generator) Document() content.Document {
	doc := content.Document{
		Title:    content.Bilingual{Arabic: "أحكام الحج", Malay: "Hukum-Hukum Haji"},
		Subtitle: "Test notes",
		Footer:   content.Footer{Closing: "تم", Note: "fixture"},
	}
	for i := 0; i < g.cfg.Chapters; i++ {
		doc.Chapters = append(doc.Chapters, g.chapter(i))
	}
	return doc
}

func (g *Generator) chapter(i int) content.Chapter {
	ch := content.Chapter{
		ID:    ChapterID(g.cfg.IDPrefix, i),
		Label: fmt.Sprintf("الباب %d | Bab %d", i+1, i+1),
		Icon:  icons[i%len(icons)],
		Heading: content.Bilingual{
			Arabic: "الباب " + g.arabic(3),
			Malay:  fmt.Sprintf("Bab %d: %s", i+1, g.malay(3)),
		},
	}
	for j := 0; j < g.cfg.BlocksPerChap; j++ {
		ch.Blocks = append(ch.Blocks, g.block(j))
	}
	return ch
}

func (g *Generator) block(j int) content.Block {
	switch j % 5 {
	case 0:
		return content.Block{Kind: content.BlockSubsection, Arabic: g.arabic(2), Malay: g.malay(2)}
	case 1:
		return content.Block{
			Kind:        content.BlockHadith,
			Text:        g.arabic(12),
			Translation: g.malay(14),
			Takhrij:     g.arabic(3),
		}
	case 2:
		return content.Block{
			Kind:    content.BlockVocabulary,
			Heading: "المفردات | Perbendaharaan Kata:",
			Vocabulary: []content.VocabItem{
				{Word: g.arabic(1), Meaning: g.arabic(6), Translation: g.malay(6)},
				{Word: g.arabic(1), Meaning: g.arabic(5), Translation: g.malay(5)},
			},
		}
	case 3:
		return content.Block{
			Kind:    content.BlockRulings,
			Heading: "استنباط المسائل والأحكام | Kesimpulan Masalah & Hukum:",
			Rulings: []content.Ruling{
				{Title: "المسألة الأولى", TitleMalay: "Masalah Pertama", Content: g.arabic(20), Translation: g.malay(20)},
			},
		}
	default:
		return content.Block{
			Kind:  content.BlockDefinitions,
			Terms: []content.Definition{{Term: g.arabic(1) + ":", Text: g.malay(8)}},
		}
	}
}

func (g *Generator) arabic(n int) string {
	return g.words(arabicWords, n)
}

func (g *Generator) malay(n int) string {
	return g.words(malayWords, n)
}

func (g *Generator) words(pool []string, n int) string {
	out := make([]byte, 0, n*8)
	for i := 0; i < n; i++ {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, pool[g.rng.Intn(len(pool))]...)
	}
	return string(out)
}

// ChapterID returns the id the generator assigns to chapter index i.
func ChapterID(prefix string, i int) string {
	return fmt.Sprintf("%s%d", prefix, i+1)
}

// SampleDocument returns the default three-chapter fixture.
func SampleDocument() content.Document {
	return New(DefaultConfig()).Document()
}

// Package content holds the bilingual Hajj rulings document and its loader.
//
// The document ships embedded in the binary (ahkam.yaml). An alternate YAML
// file with the same schema can be loaded with LoadFile.
package content

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanderheijden86/ahkam/pkg/debug"
	"github.com/vanderheijden86/ahkam/pkg/metrics"
	"github.com/vanderheijden86/ahkam/pkg/nav"
)

//go:embed ahkam.yaml
var embedded []byte

// Validation errors.
var (
	ErrNoChapters       = errors.New("document has no chapters")
	ErrEmptyChapterID   = errors.New("chapter id is empty")
	ErrDuplicateChapter = errors.New("duplicate chapter id")
	ErrEmptyLabel       = errors.New("chapter label is empty")
	ErrUnknownIcon      = errors.New("unknown chapter icon")
	ErrUnknownBlock     = errors.New("unknown block kind")
	ErrIncompleteBlock  = errors.New("block is missing required text")
)

// BlockKind identifies the component a block renders as.
type BlockKind string

const (
	BlockSubsection  BlockKind = "subsection"
	BlockHadith      BlockKind = "hadith"
	BlockVocabulary  BlockKind = "vocabulary"
	BlockRulings     BlockKind = "rulings"
	BlockDefinitions BlockKind = "definitions"
)

// Icons known to the renderer.
const (
	IconBook        = "book"
	IconShieldCheck = "shield-check"
	IconCompass     = "compass"
)

var knownIcons = map[string]bool{
	IconBook:        true,
	IconShieldCheck: true,
	IconCompass:     true,
}

// Bilingual is a pair of Arabic text and its Malay rendering.
type Bilingual struct {
	Arabic string `yaml:"arabic" json:"arabic"`
	Malay  string `yaml:"malay" json:"malay"`
}

// VocabItem explains a single Arabic word.
type VocabItem struct {
	Word        string `yaml:"word" json:"word"`
	Meaning     string `yaml:"meaning" json:"meaning"`
	Translation string `yaml:"translation" json:"translation"`
}

// Ruling is one derived ruling (mas'alah) with its translation.
type Ruling struct {
	Title       string `yaml:"title" json:"title"`
	TitleMalay  string `yaml:"title_malay" json:"title_malay"`
	Content     string `yaml:"content" json:"content"`
	Translation string `yaml:"translation" json:"translation"`
}

// Definition is a term with a short explanation.
type Definition struct {
	Term string `yaml:"term" json:"term"`
	Text string `yaml:"text" json:"text"`
}

// Block is one renderable element of a chapter. Which fields are used
// depends on Kind.
type Block struct {
	Kind BlockKind `yaml:"kind" json:"kind"`

	// subsection
	Arabic string `yaml:"arabic,omitempty" json:"arabic,omitempty"`
	Malay  string `yaml:"malay,omitempty" json:"malay,omitempty"`

	// hadith
	Text        string `yaml:"text,omitempty" json:"text,omitempty"`
	Translation string `yaml:"translation,omitempty" json:"translation,omitempty"`
	Takhrij     string `yaml:"takhrij,omitempty" json:"takhrij,omitempty"`

	// vocabulary, rulings
	Heading    string       `yaml:"heading,omitempty" json:"heading,omitempty"`
	Vocabulary []VocabItem  `yaml:"-" json:"vocabulary,omitempty"`
	Rulings    []Ruling     `yaml:"-" json:"rulings,omitempty"`
	Terms      []Definition `yaml:"-" json:"definitions,omitempty"`
}

// UnmarshalYAML decodes the kind-dependent "items" list into the matching
// typed slice.
func (b *Block) UnmarshalYAML(value *yaml.Node) error {
	type plain Block
	var raw struct {
		plain `yaml:",inline"`
		Items yaml.Node `yaml:"items"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	*b = Block(raw.plain)

	if raw.Items.Kind == 0 {
		return nil
	}
	switch b.Kind {
	case BlockVocabulary:
		return raw.Items.Decode(&b.Vocabulary)
	case BlockRulings:
		return raw.Items.Decode(&b.Rulings)
	case BlockDefinitions:
		return raw.Items.Decode(&b.Terms)
	default:
		return fmt.Errorf("line %d: %q blocks take no items: %w", raw.Items.Line, b.Kind, ErrUnknownBlock)
	}
}

// MarshalYAML writes the typed item slice back under "items".
func (b Block) MarshalYAML() (any, error) {
	type plain Block
	out := struct {
		plain `yaml:",inline"`
		Items any `yaml:"items,omitempty"`
	}{plain: plain(b)}
	switch b.Kind {
	case BlockVocabulary:
		out.Items = b.Vocabulary
	case BlockRulings:
		out.Items = b.Rulings
	case BlockDefinitions:
		out.Items = b.Terms
	}
	return out, nil
}

// Chapter is a navigable section of the document.
type Chapter struct {
	ID      string    `yaml:"id" json:"id"`
	Label   string    `yaml:"label" json:"label"`
	Icon    string    `yaml:"icon" json:"icon"`
	Heading Bilingual `yaml:"heading" json:"heading"`
	Blocks  []Block   `yaml:"blocks" json:"blocks"`
}

// Footer is the closing text shown after the last chapter.
type Footer struct {
	Closing string `yaml:"closing" json:"closing"`
	Note    string `yaml:"note" json:"note"`
}

// Document is the complete notes document.
type Document struct {
	Title    Bilingual `yaml:"title" json:"title"`
	Subtitle string    `yaml:"subtitle" json:"subtitle"`
	Footer   Footer    `yaml:"footer" json:"footer"`
	Chapters []Chapter `yaml:"chapters" json:"chapters"`
}

// NavChapters returns the navigation entries in document order.
func (d Document) NavChapters() []nav.Chapter {
	out := make([]nav.Chapter, len(d.Chapters))
	for i, ch := range d.Chapters {
		out[i] = nav.Chapter{ID: ch.ID, Label: ch.Label, Icon: ch.Icon}
	}
	return out
}

// Chapter returns the chapter with the given id.
func (d Document) Chapter(id string) (Chapter, bool) {
	for _, ch := range d.Chapters {
		if ch.ID == id {
			return ch, true
		}
	}
	return Chapter{}, false
}

// Validate checks the structural rules every document must satisfy.
func (d Document) Validate() error {
	if len(d.Chapters) == 0 {
		return ErrNoChapters
	}
	seen := make(map[string]bool, len(d.Chapters))
	for i, ch := range d.Chapters {
		id := strings.TrimSpace(ch.ID)
		if id == "" {
			return fmt.Errorf("chapter %d: %w", i+1, ErrEmptyChapterID)
		}
		if seen[id] {
			return fmt.Errorf("chapter %q: %w", id, ErrDuplicateChapter)
		}
		seen[id] = true
		if strings.TrimSpace(ch.Label) == "" {
			return fmt.Errorf("chapter %q: %w", id, ErrEmptyLabel)
		}
		if ch.Icon != "" && !knownIcons[ch.Icon] {
			return fmt.Errorf("chapter %q icon %q: %w", id, ch.Icon, ErrUnknownIcon)
		}
		for j, b := range ch.Blocks {
			if err := b.validate(); err != nil {
				return fmt.Errorf("chapter %q block %d: %w", id, j+1, err)
			}
		}
	}
	return nil
}

func (b Block) validate() error {
	switch b.Kind {
	case BlockSubsection:
		if b.Arabic == "" && b.Malay == "" {
			return ErrIncompleteBlock
		}
	case BlockHadith:
		if b.Text == "" {
			return ErrIncompleteBlock
		}
	case BlockVocabulary:
		if len(b.Vocabulary) == 0 {
			return ErrIncompleteBlock
		}
	case BlockRulings:
		if len(b.Rulings) == 0 {
			return ErrIncompleteBlock
		}
	case BlockDefinitions:
		if len(b.Terms) == 0 {
			return ErrIncompleteBlock
		}
	default:
		return fmt.Errorf("%q: %w", b.Kind, ErrUnknownBlock)
	}
	return nil
}

// Parse decodes and validates a YAML document.
func Parse(data []byte) (Document, error) {
	defer metrics.Timer(metrics.ContentLoad)()

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("parsing content: %w", err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("invalid content: %w", err)
	}
	debug.Log("content: parsed %d chapters", len(doc.Chapters))
	return doc, nil
}

// Default returns the embedded document.
func Default() (Document, error) {
	return Parse(embedded)
}

// Embedded returns the raw embedded YAML.
func Embedded() []byte {
	return embedded
}

// LoadFile reads and validates a document from disk.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("reading content: %w", err)
	}
	return Parse(data)
}

// Package datasource decides which copy of the notes document the reader
// opens. Candidates come from the --content flag, the AHKAM_CONTENT
// environment variable, the config file and the embedded document; the most
// authoritative valid candidate wins.
package datasource

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/vanderheijden86/ahkam/pkg/content"
)

// SourceType identifies where a candidate came from.
type SourceType string

const (
	SourceTypeFlag     SourceType = "flag"
	SourceTypeEnv      SourceType = "env"
	SourceTypeConfig   SourceType = "config"
	SourceTypeEmbedded SourceType = "embedded"
)

// Priority values for source types (higher = more authoritative).
const (
	PriorityFlag     = 100
	PriorityEnv      = 80
	PriorityConfig   = 50
	PriorityEmbedded = 0
)

// EnvContent names the environment variable holding a content path.
const EnvContent = "AHKAM_CONTENT"

// DataSource is one candidate document.
type DataSource struct {
	Type     SourceType `json:"type"`
	Path     string     `json:"path,omitempty"` // empty for the embedded document
	Priority int        `json:"priority"`
	ModTime  time.Time  `json:"mod_time,omitempty"`
	Size     int64      `json:"size"`

	Valid           bool   `json:"valid"`
	ValidationError string `json:"validation_error,omitempty"`
	ChapterCount    int    `json:"chapter_count"`
}

// Explicit reports whether the user named this source directly. An explicit
// source that fails validation is an error, not a reason to fall back.
func (s DataSource) Explicit() bool {
	return s.Type == SourceTypeFlag || s.Type == SourceTypeEnv
}

// String returns a human-readable description of the source.
func (s DataSource) String() string {
	status := "valid"
	if !s.Valid {
		status = "invalid: " + s.ValidationError
	}
	where := s.Path
	if s.Type == SourceTypeEmbedded {
		where = "<embedded>"
	}
	return fmt.Sprintf("%s (%s, priority=%d, chapters=%d, %s)", where, s.Type, s.Priority, s.ChapterCount, status)
}

// DiscoveryOptions lists the configured candidates.
type DiscoveryOptions struct {
	FlagPath   string // --content
	ConfigPath string // content.path from the config file

	// Logger receives discovery notes when Verbose is true.
	Verbose bool
	Logger  func(msg string)
}

// DiscoverSources returns every configured candidate plus the embedded
// document, most authoritative first. File metadata is filled in where the
// file exists; nothing is parsed yet.
func DiscoverSources(opts DiscoveryOptions) []DataSource {
	logf := func(format string, args ...any) {
		if opts.Verbose && opts.Logger != nil {
			opts.Logger(fmt.Sprintf(format, args...))
		}
	}

	var sources []DataSource
	add := func(t SourceType, prio int, path string) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		s := DataSource{Type: t, Path: path, Priority: prio}
		if info, err := os.Stat(path); err == nil {
			s.ModTime = info.ModTime()
			s.Size = info.Size()
		}
		logf("found %s source %s", t, path)
		sources = append(sources, s)
	}

	add(SourceTypeFlag, PriorityFlag, opts.FlagPath)
	add(SourceTypeEnv, PriorityEnv, os.Getenv(EnvContent))
	add(SourceTypeConfig, PriorityConfig, opts.ConfigPath)
	sources = append(sources, DataSource{
		Type:     SourceTypeEmbedded,
		Priority: PriorityEmbedded,
		Size:     int64(len(content.Embedded())),
	})

	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].Priority > sources[j].Priority
	})
	logf("discovered %d sources", len(sources))
	return sources
}

// ValidateSource parses the source and records the outcome on it.
func ValidateSource(s *DataSource) error {
	doc, err := ReadSource(*s)
	if err != nil {
		s.Valid = false
		s.ValidationError = err.Error()
		return err
	}
	s.Valid = true
	s.ValidationError = ""
	s.ChapterCount = len(doc.Chapters)
	return nil
}

// ReadSource loads the document behind s.
func ReadSource(s DataSource) (content.Document, error) {
	if s.Type == SourceTypeEmbedded {
		return content.Default()
	}
	return content.LoadFile(s.Path)
}

package datasource

import (
	"errors"
	"fmt"

	"github.com/vanderheijden86/ahkam/pkg/content"
	"github.com/vanderheijden86/ahkam/pkg/debug"
)

// ErrNoValidSource is returned when no candidate, not even the embedded
// document, could be loaded.
var ErrNoValidSource = errors.New("no valid content source")

// SelectBestSource walks sources in order and returns the first one that
// validates. A failing explicit source stops the walk with its error; a
// failing config source is skipped.
func SelectBestSource(sources []DataSource) (DataSource, error) {
	for i := range sources {
		s := &sources[i]
		if err := ValidateSource(s); err != nil {
			if s.Explicit() {
				return *s, fmt.Errorf("%s content %s: %w", s.Type, s.Path, err)
			}
			debug.Log("datasource: skipping %s", s)
			continue
		}
		return *s, nil
	}
	return DataSource{}, ErrNoValidSource
}

// Load discovers, selects and reads the document in one step.
func Load(opts DiscoveryOptions) (content.Document, DataSource, error) {
	best, err := SelectBestSource(DiscoverSources(opts))
	if err != nil {
		return content.Document{}, best, err
	}
	doc, err := ReadSource(best)
	if err != nil {
		return content.Document{}, best, err
	}
	debug.Log("datasource: using %s", best)
	return doc, best, nil
}

package mock

import "github.com/fwojciec/cardsnap"

var _ cardsnap.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of cardsnap.Extractor.
type Extractor struct {
	ExtractFn func(sources []*cardsnap.Source) ([]*cardsnap.Card, error)
}

func (e *Extractor) Extract(sources []*cardsnap.Source) ([]*cardsnap.Card, error) {
	return e.ExtractFn(sources)
}

var _ cardsnap.Sanitizer = (*Sanitizer)(nil)

// Sanitizer is a mock implementation of cardsnap.Sanitizer.
type Sanitizer struct {
	SanitizeFn func(markup string) (string, error)
}

func (s *Sanitizer) Sanitize(markup string) (string, error) {
	return s.SanitizeFn(markup)
}

package cardsnap

// Extractor finds card elements in HTML documents.
type Extractor interface {
	// Extract parses every source and returns one Card per card element,
	// in source order then document order. Each card carries the joined
	// stylesheet text of its own document.
	// Returns ETOOMANYFILES if more than MaxSources are given and
	// EEMPTYRESULT if no card element exists in any source.
	Extract(sources []*Source) ([]*Card, error)
}

// Sanitizer rewrites card markup before it is written into a Sandbox.
type Sanitizer interface {
	Sanitize(markup string) (string, error)
}

// Sanitizers applies each sanitizer in order.
type Sanitizers []Sanitizer

// Sanitize runs markup through every sanitizer in the chain.
func (s Sanitizers) Sanitize(markup string) (string, error) {
	var err error
	for _, san := range s {
		if markup, err = san.Sanitize(markup); err != nil {
			return "", err
		}
	}
	return markup, nil
}

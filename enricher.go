package cardsnap

import "context"

// Enrichment is generated descriptive metadata for a card.
type Enrichment struct {
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Tags       []string `json:"tags"`
	ColorTheme string   `json:"colorTheme"`
}

// Enricher generates descriptive metadata from card content.
type Enricher interface {
	Enrich(ctx context.Context, card *Card) (*Enrichment, error)
}

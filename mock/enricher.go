package mock

import (
	"context"

	"github.com/fwojciec/cardsnap"
)

var _ cardsnap.Enricher = (*Enricher)(nil)

// Enricher is a mock implementation of cardsnap.Enricher.
type Enricher struct {
	EnrichFn func(ctx context.Context, card *cardsnap.Card) (*cardsnap.Enrichment, error)
}

func (e *Enricher) Enrich(ctx context.Context, card *cardsnap.Card) (*cardsnap.Enrichment, error) {
	return e.EnrichFn(ctx, card)
}

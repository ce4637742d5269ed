package batch

import (
	"context"

	"github.com/fwojciec/cardsnap"
)

// Enrich asks enricher for metadata on every card that has none yet.
// Failures are reported through progress and counted, never aborting the run.
// Enrich leaves the batch state unchanged. It is refused while another run
// is in flight, and Load, Reset and Process are refused until it returns.
func (b *Batch) Enrich(ctx context.Context, enricher cardsnap.Enricher, progress ProgressFunc) (*Result, error) {
	b.mu.Lock()
	switch {
	case b.busyLocked():
		b.mu.Unlock()
		return nil, cardsnap.Errorf(cardsnap.EINVALID, "cannot enrich while the batch is %s", b.activityLocked())
	case len(b.cards) == 0:
		b.mu.Unlock()
		return nil, cardsnap.Errorf(cardsnap.EINVALID, "no cards to enrich")
	case enricher == nil:
		b.mu.Unlock()
		return nil, cardsnap.Errorf(cardsnap.EINVALID, "enricher required")
	}
	b.enriching = true
	cards := b.cards
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.enriching = false
		b.mu.Unlock()
	}()

	total := len(cards)
	emit(progress, ProgressEvent{Type: ProgressStarted, Stage: StageEnrich, Total: total})

	result := &Result{}
	var runErr error
	for i, card := range cards {
		if b.enriched(card) {
			result.Skipped++
			continue
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		emit(progress, b.event(ProgressLoading, StageEnrich, i, total, card, nil))
		enrichment, err := enricher.Enrich(ctx, card)
		if err != nil {
			result.Failed++
			emit(progress, b.event(ProgressFailed, StageEnrich, i, total, card, err))
			if ctx.Err() != nil {
				runErr = ctx.Err()
				break
			}
			continue
		}

		b.update(card, func(c *cardsnap.Card) {
			c.Enrichment = enrichment
		})
		result.Completed++
		emit(progress, b.event(ProgressCompleted, StageEnrich, i, total, card, nil))
	}

	emit(progress, ProgressEvent{Type: ProgressFinished, Stage: StageEnrich, Total: total})
	return result, runErr
}

func (b *Batch) enriched(card *cardsnap.Card) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return card.Enrichment != nil
}

package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/cardsnap"
	"github.com/fwojciec/cardsnap/batch"
	"github.com/fwojciec/cardsnap/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch_Enrich(t *testing.T) {
	t.Parallel()

	t.Run("attaches enrichment to every card", func(t *testing.T) {
		t.Parallel()

		b := &batch.Batch{Extractor: cardsExtractor(2)}
		require.NoError(t, b.Load(oneSource()))
		enricher := &mock.Enricher{
			EnrichFn: func(_ context.Context, card *cardsnap.Card) (*cardsnap.Enrichment, error) {
				return &cardsnap.Enrichment{Title: "Title " + card.ID, Tags: []string{"pricing"}}, nil
			},
		}

		result, err := b.Enrich(context.Background(), enricher, nil)

		require.NoError(t, err)
		assert.Equal(t, &batch.Result{Completed: 2}, result)
		cards := b.Cards()
		require.NotNil(t, cards[0].Enrichment)
		assert.Equal(t, "Title card-1", cards[0].Enrichment.Title)
		assert.Equal(t, "Title card-2", cards[1].Enrichment.Title)
		assert.Equal(t, batch.StateReady, b.State())
	})

	t.Run("counts failures and keeps going", func(t *testing.T) {
		t.Parallel()

		b := &batch.Batch{Extractor: cardsExtractor(3)}
		require.NoError(t, b.Load(oneSource()))
		enricher := &mock.Enricher{
			EnrichFn: func(_ context.Context, card *cardsnap.Card) (*cardsnap.Enrichment, error) {
				if card.ID == "card-2" {
					return nil, errors.New("quota exceeded")
				}
				return &cardsnap.Enrichment{Title: card.ID}, nil
			},
		}

		var failed []batch.ProgressEvent
		result, err := b.Enrich(context.Background(), enricher, func(e batch.ProgressEvent) {
			if e.Type == batch.ProgressFailed {
				failed = append(failed, e)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, &batch.Result{Completed: 2, Failed: 1}, result)
		require.Len(t, failed, 1)
		assert.Equal(t, 1, failed[0].Index)
		assert.Equal(t, batch.StageEnrich, failed[0].Stage)
		assert.EqualError(t, failed[0].Error, "quota exceeded")
		assert.Nil(t, b.Cards()[1].Enrichment)
	})

	t.Run("skips cards already enriched", func(t *testing.T) {
		t.Parallel()

		b := &batch.Batch{Extractor: cardsExtractor(2)}
		require.NoError(t, b.Load(oneSource()))
		calls := 0
		enricher := &mock.Enricher{
			EnrichFn: func(_ context.Context, card *cardsnap.Card) (*cardsnap.Enrichment, error) {
				calls++
				if card.ID == "card-2" && calls == 2 {
					return nil, errors.New("timeout")
				}
				return &cardsnap.Enrichment{Title: card.ID}, nil
			},
		}
		_, err := b.Enrich(context.Background(), enricher, nil)
		require.NoError(t, err)

		result, err := b.Enrich(context.Background(), enricher, nil)

		require.NoError(t, err)
		assert.Equal(t, &batch.Result{Completed: 1, Skipped: 1}, result)
		assert.Equal(t, 3, calls)
	})

	t.Run("rejects a nil enricher", func(t *testing.T) {
		t.Parallel()

		b := &batch.Batch{Extractor: cardsExtractor(1)}
		require.NoError(t, b.Load(oneSource()))

		_, err := b.Enrich(context.Background(), nil, nil)

		require.Error(t, err)
		assert.Equal(t, cardsnap.EINVALID, cardsnap.ErrorCode(err))
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		t.Parallel()

		b := &batch.Batch{}

		_, err := b.Enrich(context.Background(), &mock.Enricher{}, nil)

		require.Error(t, err)
		assert.Equal(t, cardsnap.EINVALID, cardsnap.ErrorCode(err))
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		b := &batch.Batch{Extractor: cardsExtractor(3)}
		require.NoError(t, b.Load(oneSource()))
		enricher := &mock.Enricher{
			EnrichFn: func(ctx context.Context, _ *cardsnap.Card) (*cardsnap.Enrichment, error) {
				cancel()
				return nil, ctx.Err()
			},
		}

		result, err := b.Enrich(ctx, enricher, nil)

		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, &batch.Result{Failed: 1}, result)
	})
	t.Run("refuses other runs until enrichment returns", func(t *testing.T) {
		t.Parallel()

		b := &batch.Batch{Extractor: cardsExtractor(1), Sandbox: (&fakeSandbox{}).mock(), Capturer: okCapturer()}
		require.NoError(t, b.Load(oneSource()))

		started := make(chan struct{})
		release := make(chan struct{})
		enricher := &mock.Enricher{
			EnrichFn: func(context.Context, *cardsnap.Card) (*cardsnap.Enrichment, error) {
				close(started)
				<-release
				return &cardsnap.Enrichment{Title: "t"}, nil
			},
		}

		done := make(chan error, 1)
		go func() {
			_, err := b.Enrich(context.Background(), enricher, nil)
			done <- err
		}()
		<-started

		_, err := b.Process(context.Background(), nil)
		assert.Equal(t, cardsnap.EINVALID, cardsnap.ErrorCode(err))
		assert.Contains(t, cardsnap.ErrorMessage(err), "enriching")
		assert.Equal(t, cardsnap.EINVALID, cardsnap.ErrorCode(b.Load(oneSource())))
		assert.Equal(t, cardsnap.EINVALID, cardsnap.ErrorCode(b.Reset()))
		_, err = b.Enrich(context.Background(), enricher, nil)
		assert.Equal(t, cardsnap.EINVALID, cardsnap.ErrorCode(err))

		close(release)
		require.NoError(t, <-done)

		result, err := b.Process(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Completed)
		assert.Equal(t, "t", b.Cards()[0].Enrichment.Title)
	})
}

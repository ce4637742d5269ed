// Package batch provides the card capture pipeline. A Batch owns the cards
// extracted from one set of documents and drives them through a Sandbox and
// a Capturer, strictly one card at a time.
package batch

import (
	"context"
	"errors"
	"sync"

	"github.com/fwojciec/cardsnap"
)

// State is the lifecycle state of a Batch.
type State string

// Batch states. A batch moves idle -> parsing -> ready -> processing ->
// completed; a failed extraction moves parsing -> error.
const (
	StateIdle       State = "idle"
	StateParsing    State = "parsing"
	StateReady      State = "ready"
	StateProcessing State = "processing"
	StateCompleted  State = "completed"
	StateError      State = "error"
)

// Batch is the state container for one set of cards.
// Its methods are safe for concurrent use. While a Process or Enrich run is
// in flight, every call that would start another run or replace the cards
// is refused with EINVALID.
type Batch struct {
	Extractor cardsnap.Extractor
	Sandbox   cardsnap.Sandbox
	Capturer  cardsnap.Capturer

	mu        sync.Mutex
	state     State
	enriching bool
	cards     []*cardsnap.Card
}

// Result holds the outcome of a Process or Enrich run.
type Result struct {
	Completed int
	Failed    int
	Skipped   int
}

// Stage identifies the operation a progress event belongs to.
type Stage int

const (
	StageCapture Stage = iota
	StageEnrich
)

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type  ProgressType
	Stage Stage
	Index int
	Total int
	Card  *cardsnap.Card
	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressLoading
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress. Card is a snapshot.
type ProgressFunc func(event ProgressEvent)

// State returns the current lifecycle state.
func (b *Batch) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

func (b *Batch) stateLocked() State {
	if b.state == "" {
		return StateIdle
	}
	return b.state
}

// busyLocked reports whether a load, process or enrich run is in flight.
func (b *Batch) busyLocked() bool {
	return b.enriching || b.state == StateProcessing || b.state == StateParsing
}

// activityLocked names the run in flight for error messages.
func (b *Batch) activityLocked() string {
	if b.enriching {
		return "enriching"
	}
	return string(b.stateLocked())
}

// Cards returns a snapshot of the cards in display order.
func (b *Batch) Cards() []*cardsnap.Card {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]*cardsnap.Card, len(b.cards))
	for i, c := range b.cards {
		out[i] = c.Clone()
	}
	return out
}

// Load extracts cards from sources, replacing any previous batch.
// More than cardsnap.MaxSources sources fail with ETOOMANYFILES before
// anything is parsed and leave the batch untouched.
func (b *Batch) Load(sources []*cardsnap.Source) error {
	b.mu.Lock()
	switch {
	case b.busyLocked():
		b.mu.Unlock()
		return cardsnap.Errorf(cardsnap.EINVALID, "cannot load files while the batch is %s", b.activityLocked())
	case len(sources) == 0:
		b.mu.Unlock()
		return cardsnap.Errorf(cardsnap.EINVALID, "no files selected")
	case len(sources) > cardsnap.MaxSources:
		b.mu.Unlock()
		return cardsnap.Errorf(cardsnap.ETOOMANYFILES, "maximum %d files allowed at once", cardsnap.MaxSources)
	}
	b.cards = nil
	b.state = StateParsing
	b.mu.Unlock()

	cards, err := b.Extractor.Extract(sources)

	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.state = StateError
		return err
	}
	for _, c := range cards {
		c.Status = cardsnap.StatusPending
		c.Image = ""
		c.Error = ""
	}
	b.cards = cards
	b.state = StateReady
	return nil
}

// Reset discards all cards and returns the batch to idle.
func (b *Batch) Reset() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.busyLocked() {
		return cardsnap.Errorf(cardsnap.EINVALID, "cannot reset while the batch is %s", b.activityLocked())
	}
	b.cards = nil
	b.state = StateIdle
	return nil
}

// Process renders and captures every card not yet captured, in order.
// A card that fails is marked failed and the run moves on to the next one.
// The sandbox is cleared after every card and once more at the end.
//
// Process returns ESANDBOX without touching any card if the sandbox cannot
// be opened. If ctx is cancelled the in-flight card is marked failed, the
// remaining cards keep their status, and ctx.Err() is returned.
func (b *Batch) Process(ctx context.Context, progress ProgressFunc) (*Result, error) {
	b.mu.Lock()
	prev := b.stateLocked()
	switch {
	case b.busyLocked():
		b.mu.Unlock()
		return nil, cardsnap.Errorf(cardsnap.EINVALID, "cannot process while the batch is %s", b.activityLocked())
	case len(b.cards) == 0:
		b.mu.Unlock()
		return nil, cardsnap.Errorf(cardsnap.EINVALID, "no cards to process")
	case b.Sandbox == nil || b.Capturer == nil:
		b.mu.Unlock()
		return nil, cardsnap.Errorf(cardsnap.ESANDBOX, "sandbox environment not ready")
	}
	b.state = StateProcessing
	cards := b.cards
	b.mu.Unlock()

	if err := b.Sandbox.Open(ctx); err != nil {
		b.setState(prev)
		if cardsnap.ErrorCode(err) != cardsnap.ESANDBOX {
			err = cardsnap.Errorf(cardsnap.ESANDBOX, "sandbox environment not ready: %v", err)
		}
		return nil, err
	}

	total := len(cards)
	emit(progress, ProgressEvent{Type: ProgressStarted, Stage: StageCapture, Total: total})

	result := &Result{}
	var runErr error
	for i, card := range cards {
		if b.captured(card) {
			result.Skipped++
			continue
		}
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		b.update(card, func(c *cardsnap.Card) {
			c.Status = cardsnap.StatusLoading
			c.Image = ""
			c.Error = ""
		})
		emit(progress, b.event(ProgressLoading, StageCapture, i, total, card, nil))

		image, err := b.captureOne(ctx, card)
		if err != nil {
			b.update(card, func(c *cardsnap.Card) {
				c.Status = cardsnap.StatusFailed
				c.Error = describe(err)
			})
			result.Failed++
			emit(progress, b.event(ProgressFailed, StageCapture, i, total, card, err))
			if ctx.Err() != nil {
				runErr = ctx.Err()
				break
			}
			continue
		}

		b.update(card, func(c *cardsnap.Card) {
			c.Status = cardsnap.StatusCaptured
			c.Image = image
		})
		result.Completed++
		emit(progress, b.event(ProgressCompleted, StageCapture, i, total, card, nil))
	}

	_ = b.Sandbox.Clear(context.WithoutCancel(ctx))
	b.setState(StateCompleted)
	emit(progress, ProgressEvent{Type: ProgressFinished, Stage: StageCapture, Total: total})

	return result, runErr
}

// captureOne renders and captures a single card. The sandbox is cleared
// afterwards whatever the outcome.
func (b *Batch) captureOne(ctx context.Context, card *cardsnap.Card) (string, error) {
	defer func() { _ = b.Sandbox.Clear(context.WithoutCancel(ctx)) }()

	target, err := b.Sandbox.Render(ctx, card)
	if err != nil {
		return "", err
	}
	if target == nil {
		return "", cardsnap.Errorf(cardsnap.ECAPTURE, "target element missing in sandbox")
	}

	image, err := b.Capturer.Capture(ctx, target)
	if err != nil {
		return "", err
	}
	if image == "" {
		return "", cardsnap.Errorf(cardsnap.ECAPTURE, "capture returned no image")
	}
	return image, nil
}

func (b *Batch) setState(s State) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.state = s
}

func (b *Batch) captured(card *cardsnap.Card) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return card.Captured()
}

func (b *Batch) update(card *cardsnap.Card, fn func(*cardsnap.Card)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(card)
}

func (b *Batch) event(typ ProgressType, stage Stage, index, total int, card *cardsnap.Card, err error) ProgressEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return ProgressEvent{
		Type:  typ,
		Stage: stage,
		Index: index,
		Total: total,
		Card:  card.Clone(),
		Error: err,
	}
}

func emit(progress ProgressFunc, event ProgressEvent) {
	if progress != nil {
		progress(event)
	}
}

// describe returns the user-facing description of a card failure.
func describe(err error) string {
	var e *cardsnap.Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

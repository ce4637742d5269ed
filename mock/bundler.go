package mock

import (
	"io"

	"github.com/fwojciec/cardsnap"
)

var _ cardsnap.Bundler = (*Bundler)(nil)

// Bundler is a mock implementation of cardsnap.Bundler.
type Bundler struct {
	BundleFn func(w io.Writer, cards []*cardsnap.Card) (int, error)
}

func (b *Bundler) Bundle(w io.Writer, cards []*cardsnap.Card) (int, error) {
	return b.BundleFn(w, cards)
}

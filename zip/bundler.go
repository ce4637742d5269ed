// Package zip packs captured card images into a zip archive.
package zip

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/cardsnap"
	"github.com/klauspost/compress/zip"
)

// Ensure Bundler implements cardsnap.Bundler at compile time.
var _ cardsnap.Bundler = (*Bundler)(nil)

// Bundler writes card images as deflated zip entries named card-NN.png.
type Bundler struct {
	// Now returns the modification time stamped on every entry.
	// Defaults to time.Now.
	Now func() time.Time
}

// NewBundler creates a new Bundler.
func NewBundler() *Bundler {
	return &Bundler{Now: time.Now}
}

// Bundle writes one entry per captured card. Entry names follow the card's
// position in cards, not the entry count: a failed card leaves a gap
// (card-01.png, card-03.png) so every archived image keeps the number shown
// next to it in the card list and in cards.json.
// Images are decoded before anything is written; a card whose image cannot
// be decoded fails the whole bundle.
func (b *Bundler) Bundle(w io.Writer, cards []*cardsnap.Card) (int, error) {
	type entry struct {
		name string
		data []byte
	}

	var entries []entry
	for i, card := range cards {
		if card == nil || card.Image == "" {
			continue
		}
		_, data, err := cardsnap.DecodeDataURL(card.Image)
		if err != nil {
			return 0, cardsnap.Errorf(cardsnap.EINVALID, "card %d: %s", i+1, cardsnap.ErrorMessage(err))
		}
		entries = append(entries, entry{name: cardsnap.Filename(i), data: data})
	}
	if len(entries) == 0 {
		return 0, cardsnap.Errorf(cardsnap.EEMPTYBUNDLE, "no images to bundle")
	}

	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	modified := now()

	zw := zip.NewWriter(w)
	for _, e := range entries {
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     e.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return 0, fmt.Errorf("creating %s: %w", e.name, err)
		}
		if _, err := io.Copy(f, bytes.NewReader(e.data)); err != nil {
			return 0, fmt.Errorf("writing %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finalizing archive: %w", err)
	}
	return len(entries), nil
}

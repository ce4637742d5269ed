package cardsnap

import "io"

// Bundler packs captured card images into a single archive.
type Bundler interface {
	// Bundle writes an archive holding one Filename(i) entry per captured
	// card, where i is the card's position in cards. Returns the number of
	// entries written, or EEMPTYBUNDLE without writing anything if no card
	// has an image.
	Bundle(w io.Writer, cards []*Card) (int, error)
}

package cardsnap

import "fmt"

// Status is the capture state of a card.
type Status string

// Card statuses. A card moves pending -> loading -> captured|failed once
// per processing run.
const (
	StatusPending  Status = "pending"
	StatusLoading  Status = "loading"
	StatusCaptured Status = "captured"
	StatusFailed   Status = "failed"
)

// Card is a single extracted card element and its capture result.
type Card struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Markup string `json:"markup"`

	// Styles is the stylesheet text of the card's source document. Every card
	// from the same document shares the same value.
	Styles string `json:"styles"`
	Hash   string `json:"hash"`

	Status Status `json:"status"`
	Image  string `json:"-"` // PNG data URL
	Error  string `json:"error,omitempty"`

	Enrichment *Enrichment `json:"enrichment,omitempty"`
}

// Captured reports whether the card holds a produced image.
func (c *Card) Captured() bool {
	return c.Status == StatusCaptured && c.Image != ""
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	other := *c
	if c.Enrichment != nil {
		e := *c.Enrichment
		e.Tags = append([]string(nil), c.Enrichment.Tags...)
		other.Enrichment = &e
	}
	return &other
}

// Filename returns the image file name for the card at the 0-based display
// index: card-01.png, card-02.png, ...
func Filename(index int) string {
	return fmt.Sprintf("card-%02d.png", index+1)
}

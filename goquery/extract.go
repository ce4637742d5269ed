package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/cardsnap"
	"github.com/google/uuid"
)

// Ensure Extractor implements cardsnap.Extractor at compile time.
var _ cardsnap.Extractor = (*Extractor)(nil)

// Extractor finds card elements in HTML documents using goquery.
// The HTML parser is lenient: malformed markup never fails extraction.
type Extractor struct {
	selector string
	newID    func() string
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithIDFunc sets the function generating card IDs.
// Defaults to random UUIDs.
func WithIDFunc(fn func() string) ExtractorOption {
	return func(e *Extractor) {
		e.newID = fn
	}
}

// NewExtractor creates an Extractor matching cardsnap.CardSelector.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		selector: cardsnap.CardSelector,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses every source and returns its card elements.
func (e *Extractor) Extract(sources []*cardsnap.Source) ([]*cardsnap.Card, error) {
	if len(sources) > cardsnap.MaxSources {
		return nil, cardsnap.Errorf(cardsnap.ETOOMANYFILES, "maximum %d files allowed at once", cardsnap.MaxSources)
	}

	var cards []*cardsnap.Card
	for _, src := range sources {
		found, err := e.extractSource(src)
		if err != nil {
			return nil, err
		}
		cards = append(cards, found...)
	}

	if len(cards) == 0 {
		return nil, cardsnap.Errorf(cardsnap.EEMPTYRESULT, `no <div class="card"> elements found in the uploaded file(s)`)
	}
	return cards, nil
}

func (e *Extractor) extractSource(src *cardsnap.Source) ([]*cardsnap.Card, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(src.HTML))
	if err != nil {
		return nil, cardsnap.Errorf(cardsnap.EINVALID, "failed to parse %s: %v", src.Name, err)
	}

	// Styles are scoped per document, not per card.
	styles := StyleText(doc.Selection)

	var cards []*cardsnap.Card
	var renderErr error
	doc.Find(e.selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		markup, err := goquery.OuterHtml(sel)
		if err != nil {
			renderErr = fmt.Errorf("serializing card in %s: %w", src.Name, err)
			return false
		}
		cards = append(cards, &cardsnap.Card{
			ID:     e.newID(),
			Source: src.Name,
			Markup: markup,
			Styles: styles,
			Hash:   ComputeHash(markup),
			Status: cardsnap.StatusPending,
		})
		return true
	})
	if renderErr != nil {
		return nil, renderErr
	}
	return cards, nil
}

// StyleText returns the raw text of every <style> element in sel, joined by
// newlines in document order.
func StyleText(sel *goquery.Selection) string {
	var parts []string
	sel.Find("style").Each(func(_ int, s *goquery.Selection) {
		parts = append(parts, s.Text())
	})
	return strings.Join(parts, "\n")
}

// ComputeHash computes a hash of the content using xxhash.
func ComputeHash(content string) string {
	h := xxhash.Sum64String(content)
	return fmt.Sprintf("%x", h)
}

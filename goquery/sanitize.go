package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/cardsnap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure StyleStripper implements cardsnap.Sanitizer at compile time.
var _ cardsnap.Sanitizer = (*StyleStripper)(nil)

// StyleStripper removes embedded <style> elements from card markup.
// Card styles are injected into the sandbox head separately.
type StyleStripper struct{}

// NewStyleStripper creates a new StyleStripper.
func NewStyleStripper() *StyleStripper {
	return &StyleStripper{}
}

// Sanitize parses markup as a body fragment and serializes it back without
// any <style> elements.
func (s *StyleStripper) Sanitize(markup string) (string, error) {
	if !strings.Contains(strings.ToLower(markup), "<style") {
		return markup, nil
	}

	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(markup), context)
	if err != nil {
		return "", cardsnap.Errorf(cardsnap.EINVALID, "failed to parse card markup: %v", err)
	}

	var sb strings.Builder
	for _, n := range nodes {
		if n.Type == html.ElementNode && n.DataAtom == atom.Style {
			continue
		}
		sel := goquery.NewDocumentFromNode(n).Selection
		sel.Find("style").Remove()
		if err := html.Render(&sb, n); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

package rod

import (
	"strings"

	"github.com/fwojciec/cardsnap"
	"github.com/fwojciec/cardsnap/goquery"
)

// TargetID is the id of the container wrapping card markup in the sandbox.
const TargetID = "capture-target"

// BuildDocument returns the sandbox page for a card: the card's styles in
// the head after a minimal reset, and the markup inside a container that
// shrinks to fit its content. Embedded <style> elements are always removed
// from the markup before the optional sanitizer runs.
func BuildDocument(card *cardsnap.Card, sanitizer cardsnap.Sanitizer) (string, error) {
	chain := cardsnap.Sanitizers{goquery.NewStyleStripper()}
	if sanitizer != nil {
		chain = append(chain, sanitizer)
	}
	markup, err := chain.Sanitize(card.Markup)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n")
	b.WriteString("body { margin: 0; padding: 20px; background: transparent; }\n")
	b.WriteString(card.Styles)
	b.WriteString("\n</style>\n</head>\n<body>\n")
	b.WriteString(`<div id="` + TargetID + `" style="display: inline-block; width: fit-content;">`)
	b.WriteString("\n")
	b.WriteString(markup)
	b.WriteString("\n</div>\n</body>\n</html>\n")
	return b.String(), nil
}

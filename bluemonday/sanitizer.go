// Package bluemonday strips active content from card markup using the
// bluemonday HTML sanitizer.
package bluemonday

import (
	"github.com/fwojciec/cardsnap"
	"github.com/microcosm-cc/bluemonday"
)

// Ensure Sanitizer implements cardsnap.Sanitizer at compile time.
var _ cardsnap.Sanitizer = (*Sanitizer)(nil)

// Sanitizer removes scripts, event handlers and embedded frames from card
// markup while keeping what cards need to render: layout attributes, inline
// data: images, buttons and inline SVG drawings.
// Embedded <style> elements are dropped together with their content.
type Sanitizer struct {
	policy *bluemonday.Policy
}

// svgElements are the inline SVG drawing elements cards may use for icons.
// <use>, <image> and <foreignObject> are left out since they load or embed
// other content.
var svgElements = []string{
	"svg", "g", "path", "circle", "ellipse", "rect", "line", "polyline", "polygon",
	"text", "tspan", "defs", "lineargradient", "radialgradient", "stop", "clippath",
}

var svgAttrs = []string{
	"xmlns", "viewbox", "preserveaspectratio", "width", "height", "transform",
	"d", "cx", "cy", "r", "rx", "ry", "x", "y", "x1", "y1", "x2", "y2", "points",
	"fill", "fill-opacity", "fill-rule", "clip-rule", "clip-path", "opacity",
	"stroke", "stroke-width", "stroke-linecap", "stroke-linejoin", "stroke-opacity", "stroke-dasharray",
	"offset", "stop-color", "stop-opacity", "gradientunits", "gradienttransform",
	"font-size", "font-family", "font-weight", "text-anchor", "dominant-baseline",
}

// NewSanitizer creates a Sanitizer built on bluemonday's UGC policy.
func NewSanitizer() *Sanitizer {
	p := bluemonday.UGCPolicy()
	p.AllowStyling()
	p.AllowDataAttributes()
	p.AllowDataURIImages()
	p.AllowAttrs("style", "id", "role", "title", "aria-label", "aria-hidden").Globally()
	p.AllowElements("div", "span", "section", "article", "header", "footer", "figure", "figcaption", "main", "nav")
	p.AllowAttrs("width", "height", "loading").OnElements("img")
	p.AllowAttrs("type", "disabled", "name", "value").OnElements("button")
	p.AllowElements("button")
	p.AllowElements(svgElements...)
	p.AllowAttrs(svgAttrs...).OnElements(svgElements...)
	p.AllowNoAttrs().OnElements(svgElements...)
	return &Sanitizer{policy: p}
}

// Sanitize returns markup with disallowed elements and attributes removed.
func (s *Sanitizer) Sanitize(markup string) (string, error) {
	return s.policy.Sanitize(markup), nil
}

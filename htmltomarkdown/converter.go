// Package htmltomarkdown turns card markup into Markdown text for enrichment.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/cardsnap"
)

// Ensure Converter implements cardsnap.Converter at compile time.
var _ cardsnap.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to reduce a card to its text content.
// Images, inline SVG and form controls carry no text and are dropped.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	conv.Register.TagType("img", converter.TagTypeRemove, converter.PriorityStandard)
	conv.Register.TagType("svg", converter.TagTypeRemove, converter.PriorityStandard)
	conv.Register.TagType("button", converter.TagTypeInline, converter.PriorityStandard)
	conv.Register.TagType("input", converter.TagTypeRemove, converter.PriorityStandard)
	return &Converter{conv: conv}
}

// Convert transforms card markup into Markdown. Markup without any text
// content is rejected with EINVALID.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", cardsnap.Errorf(cardsnap.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", err
	}

	result = strings.TrimSpace(result)
	if result == "" {
		return "", cardsnap.Errorf(cardsnap.EINVALID, "card has no text content")
	}
	return result, nil
}

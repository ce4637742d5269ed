package mock

import "github.com/fwojciec/cardsnap"

var _ cardsnap.Converter = (*Converter)(nil)

// Converter is a mock implementation of cardsnap.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

package mock

import "github.com/fwojciec/docmodel"

var _ docmodel.Converter = (*Converter)(nil)

// Converter is a mock implementation of docmodel.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

package mock

import (
	"github.com/gripdoc/gripdoc"
)

var _ gripdoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of gripdoc.Extractor.
type Extractor struct {
	ExtractFn func(input string) (*gripdoc.Extraction, error)
}

func (e *Extractor) Extract(input string) (*gripdoc.Extraction, error) {
	return e.ExtractFn(input)
}

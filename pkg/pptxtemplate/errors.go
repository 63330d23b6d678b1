package pptxtemplate

import (
	"errors"
	"fmt"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid pptx package.
var ErrInvalidFormat = errors.New("invalid pptx format")

// ErrInvalidUpdates indicates a malformed update instruction document.
var ErrInvalidUpdates = parser.ErrInvalidUpdates

// ExtractionError represents a shape that could not be analyzed.
type ExtractionError struct {
	Slide int
	Shape int
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction error on slide %d, shape %d: %v", e.Slide, e.Shape, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(slide, shape int, err error) *ExtractionError {
	return &ExtractionError{
		Slide: slide,
		Shape: shape,
		Err:   err,
	}
}

package presentation

import "errors"

// ErrNotPresentation indicates the file is not a readable PresentationML package.
var ErrNotPresentation = errors.New("not a valid pptx package")

// ErrSlideOutOfRange indicates a slide number outside [1, slide count].
var ErrSlideOutOfRange = errors.New("slide number out of range")

// ErrShapeOutOfRange indicates a shape index outside [1, shape count].
var ErrShapeOutOfRange = errors.New("shape index out of range")

// ErrCellOutOfRange indicates a table row or column outside the table.
var ErrCellOutOfRange = errors.New("table cell out of range")

// ErrNoTextFrame indicates a shape that cannot carry text.
var ErrNoTextFrame = errors.New("shape has no text frame")

// ErrUnsupportedColor indicates a color whose kind cannot be written back
// (system, preset, HSL or scRGB colors).
var ErrUnsupportedColor = errors.New("color kind cannot be reapplied")

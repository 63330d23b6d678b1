// Package parser reads template structure and update instructions.
package parser

import "github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"

// EMUPerPixel is the number of EMUs (English Metric Units) per pixel at 96 DPI.
// 1 inch = 914400 EMU, 1 inch = 96 pixels at 96 DPI
// Therefore: 914400 / 96 = 9525 EMU per pixel
const EMUPerPixel = 9525

// EMUToPixels converts EMU to pixels at 96 DPI.
func EMUToPixels(emu int64) int {
	return int(emu / EMUPerPixel)
}

// PositionToPixels converts a shape position to pixels. It returns nil when
// any coordinate is inherited from the layout.
func PositionToPixels(p models.Position) *models.PixelPosition {
	if p.Left == nil || p.Top == nil || p.Width == nil || p.Height == nil {
		return nil
	}
	return &models.PixelPosition{
		L: EMUToPixels(*p.Left),
		T: EMUToPixels(*p.Top),
		W: EMUToPixels(*p.Width),
		H: EMUToPixels(*p.Height),
	}
}

package pptxtemplate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/models"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/parser"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/presentation"
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/security"
)

var templateExts = []string{".pptx"}

// Extract extracts the editable structure of a template.
func Extract(path string, opts Options) (*models.TemplateStructure, error) {
	log := logger(opts.Logger)
	pres, err := openTemplate(path, opts.MaxFileSize)
	if err != nil {
		return nil, err
	}

	width, height := pres.SlideSize()
	out := &models.TemplateStructure{
		FileName:    filepath.Base(path),
		TotalSlides: pres.SlideCount(),
		SlideWidth:  width,
		SlideHeight: height,
		Slides:      make([]models.SlideData, 0, pres.SlideCount()),
	}

	mode := string(opts.mode())
	for _, slide := range pres.Slides() {
		sd := models.SlideData{
			SlideNumber: slide.Number(),
			Shapes:      []models.ShapeData{},
		}
		for _, shape := range slide.Shapes() {
			data, ok, err := parser.ExtractShape(shape, mode)
			if err != nil {
				// Chart parts that fail to parse still yield a shape entry.
				log.Warn("shape analysis incomplete",
					zap.Error(NewExtractionError(slide.Number(), shape.Index(), err)))
			}
			if ok {
				sd.Shapes = append(sd.Shapes, data)
			}
		}
		out.Slides = append(out.Slides, sd)
	}

	log.Debug("template extracted",
		zap.String("file", out.FileName),
		zap.String("mode", mode),
		zap.Int("slides", out.TotalSlides))
	return out, nil
}

// openTemplate validates path and opens it, mapping low-level failures to
// ErrFileNotFound and ErrInvalidFormat.
func openTemplate(path string, maxSize int64) (*presentation.Presentation, error) {
	abs, err := security.ValidateInputFile(path, templateExts, maxSize)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	if err := security.CheckContainer(abs); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
	}
	pres, err := presentation.Open(abs)
	if err != nil {
		if errors.Is(err, presentation.ErrNotPresentation) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidFormat, err)
		}
		return nil, err
	}
	return pres, nil
}

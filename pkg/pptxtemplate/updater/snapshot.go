// Package updater replaces shape and table-cell text while keeping the
// formatting and bullet structure of the template.
package updater

import (
	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/presentation"
)

// FormattingSnapshot is the representative formatting of a text region.
// A nil field means the property was not resolvable and is left to the
// theme or layout default.
type FormattingSnapshot struct {
	Size      *int // hundredths of a point
	Typeface  *string
	Bold      *bool
	Italic    *bool
	Underline *string
	Color     *presentation.Color
}

// IsEmpty reports whether no property was captured.
func (s FormattingSnapshot) IsEmpty() bool {
	return s.Size == nil && s.Typeface == nil && s.Bold == nil &&
		s.Italic == nil && s.Underline == nil && s.Color == nil
}

// CaptureFormatting reads the formatting of the first run of the first
// paragraph. Each property missing on the run falls back to the first
// paragraph's default run properties on its own. Color is only taken from
// the run.
func CaptureFormatting(tb *presentation.TextBody) FormattingSnapshot {
	var snap FormattingSnapshot
	if tb == nil {
		return snap
	}
	paras := tb.Paragraphs()
	if len(paras) == 0 {
		return snap
	}
	first := paras[0]

	var chain []*presentation.Font
	var runFont *presentation.Font
	if runs := first.Runs(); len(runs) > 0 {
		runFont = runs[0].Font()
		chain = append(chain, runFont)
	}
	chain = append(chain, first.DefaultFont())

	snap.Size = lookup(chain, (*presentation.Font).Size)
	snap.Typeface = lookup(chain, (*presentation.Font).Typeface)
	snap.Bold = lookup(chain, (*presentation.Font).Bold)
	snap.Italic = lookup(chain, (*presentation.Font).Italic)
	snap.Underline = lookup(chain, (*presentation.Font).Underline)
	if runFont != nil {
		if c, ok := runFont.Color(); ok {
			snap.Color = &c
		}
	}
	return snap
}

// lookup returns the first value that get resolves along the chain.
func lookup[T any](chain []*presentation.Font, get func(*presentation.Font) (T, bool)) *T {
	for _, f := range chain {
		if v, ok := get(f); ok {
			return &v
		}
	}
	return nil
}

// applyTo writes every captured property onto f. A color whose kind cannot
// be written back is skipped; the text itself is unaffected.
func (s FormattingSnapshot) applyTo(f *presentation.Font) {
	if s.Size != nil && *s.Size != 0 {
		f.SetSize(*s.Size)
	}
	if s.Typeface != nil && *s.Typeface != "" {
		f.SetTypeface(*s.Typeface)
	}
	if s.Bold != nil {
		f.SetBold(*s.Bold)
	}
	if s.Italic != nil {
		f.SetItalic(*s.Italic)
	}
	if s.Underline != nil {
		f.SetUnderline(*s.Underline)
	}
	if s.Color != nil {
		// Best effort: ErrUnsupportedColor is the only failure and is ignored.
		_ = f.SetColor(*s.Color)
	}
}

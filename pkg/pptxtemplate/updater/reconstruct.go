package updater

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ukaji3/pptxtemplate-go/pkg/pptxtemplate/presentation"
)

// DefaultOverflowRatio is the length ratio above which new text is reported
// as likely to overflow its shape.
const DefaultOverflowRatio = 1.5

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func normalizeLineEndings(text string) string {
	return lineEndings.Replace(text)
}

// ReplaceText replaces the text of tb and reapplies snap to every new run.
//
// Without bullets, or when text is a single line, only the first paragraph
// is rewritten and any following paragraphs stay as they are. With bullets,
// the body is rebuilt as one paragraph per line, each at the level of the
// first paragraph.
func ReplaceText(tb *presentation.TextBody, text string, snap FormattingSnapshot, preserveBullets bool) {
	text = normalizeLineEndings(text)
	if !preserveBullets || !strings.Contains(text, "\n") {
		rewriteParagraph(tb.FirstParagraph(), text, snap)
		return
	}

	lines := strings.Split(text, "\n")
	tb.RemoveParagraphsAfterFirst()
	first := tb.FirstParagraph()
	rewriteParagraph(first, lines[0], snap)
	level := first.Level()
	for _, line := range lines[1:] {
		p := tb.AddParagraph()
		rewriteParagraph(p, line, snap)
		// Level comes from an existing paragraph so it is always in range.
		_ = p.SetLevel(level)
	}
}

// ReplaceCellText empties the cell's text body and writes text as a single
// run carrying snap.
func ReplaceCellText(cell *presentation.Cell, text string, snap FormattingSnapshot) {
	tb := cell.TextBody()
	tb.Clear()
	rewriteParagraph(tb.FirstParagraph(), normalizeLineEndings(text), snap)
}

func rewriteParagraph(p *presentation.Paragraph, text string, snap FormattingSnapshot) {
	p.Clear()
	run := p.AddRun(text)
	snap.applyTo(run.Font())
}

// textLength counts characters, not bytes.
func textLength(s string) int {
	return utf8.RuneCountInString(s)
}

// overflowWarning returns the advisory message when newLen exceeds
// ratio times origLen.
func overflowWarning(origLen, newLen int, ratio float64) (string, bool) {
	if float64(newLen) <= float64(origLen)*ratio {
		return "", false
	}
	return fmt.Sprintf("New text (%d chars) is significantly longer than original (%d chars). May overflow shape.", newLen, origLen), true
}

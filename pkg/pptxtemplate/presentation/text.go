package presentation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// TextBody is a text container: a shape's p:txBody or a table cell's a:txBody.
type TextBody struct {
	el *etree.Element
}

// Paragraphs returns the a:p children in order.
func (tb *TextBody) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, p := range children(tb.el, NsA, "p") {
		out = append(out, &Paragraph{el: p})
	}
	return out
}

// Text returns the text of all paragraphs joined by line feeds.
func (tb *TextBody) Text() string {
	paras := tb.Paragraphs()
	texts := make([]string, len(paras))
	for i, p := range paras {
		texts[i] = p.Text()
	}
	return strings.Join(texts, "\n")
}

// FirstParagraph returns the first paragraph, adding one to an empty body.
func (tb *TextBody) FirstParagraph() *Paragraph {
	if p := child(tb.el, NsA, "p"); p != nil {
		return &Paragraph{el: p}
	}
	return tb.AddParagraph()
}

// AddParagraph appends an empty paragraph after the last one.
func (tb *TextBody) AddParagraph() *Paragraph {
	p := newA(tb.el, "p")
	paras := children(tb.el, NsA, "p")
	if len(paras) > 0 {
		tb.el.InsertChildAt(paras[len(paras)-1].Index()+1, p)
	} else {
		insertBefore(tb.el, p, NsA, "extLst")
	}
	return &Paragraph{el: p}
}

// RemoveParagraphsAfterFirst drops every paragraph but the first.
func (tb *TextBody) RemoveParagraphsAfterFirst() {
	paras := children(tb.el, NsA, "p")
	for i := len(paras) - 1; i >= 1; i-- {
		tb.el.RemoveChild(paras[i])
	}
}

// Clear leaves a single paragraph with no content. The remaining
// paragraph keeps its properties.
func (tb *TextBody) Clear() {
	tb.RemoveParagraphsAfterFirst()
	tb.FirstParagraph().Clear()
}

// Paragraph is an a:p element.
type Paragraph struct {
	el *etree.Element
}

// Runs returns the a:r children. Line breaks and fields are not runs.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, r := range children(p.el, NsA, "r") {
		out = append(out, &Run{el: r})
	}
	return out
}

// Text returns the paragraph text. Line breaks read as vertical tab.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, c := range p.el.ChildElements() {
		if c.NamespaceURI() != NsA {
			continue
		}
		switch c.Tag {
		case "r", "fld":
			if t := child(c, NsA, "t"); t != nil {
				b.WriteString(t.Text())
			}
		case "br":
			b.WriteString("\v")
		}
	}
	return b.String()
}

// Level returns the outline level (0-8).
func (p *Paragraph) Level() int {
	lvl, err := strconv.Atoi(attrValue(child(p.el, NsA, "pPr"), "lvl", "0"))
	if err != nil {
		return 0
	}
	return lvl
}

// SetLevel sets the outline level. Level 0 is the default and removes the
// attribute.
func (p *Paragraph) SetLevel(level int) error {
	if level < 0 || level > 8 {
		return fmt.Errorf("paragraph level %d outside 0-8", level)
	}
	if level == 0 {
		if pPr := child(p.el, NsA, "pPr"); pPr != nil {
			pPr.RemoveAttr("lvl")
		}
		return nil
	}
	p.getOrAddPPr().CreateAttr("lvl", strconv.Itoa(level))
	return nil
}

// Clear removes the paragraph's runs, line breaks and fields. Paragraph
// properties and end-of-paragraph properties are kept.
func (p *Paragraph) Clear() {
	removeChildren(p.el, NsA, "r", "br", "fld")
}

// AddRun appends a run holding text ahead of a:endParaRPr.
func (p *Paragraph) AddRun(text string) *Run {
	r := newA(p.el, "r")
	r.AddChild(newA(p.el, "t"))
	insertBefore(p.el, r, NsA, "endParaRPr", "extLst")
	run := &Run{el: r}
	run.SetText(text)
	return run
}

// DefaultFont returns the paragraph-level default run properties
// (a:pPr/a:defRPr). Reading does not create elements.
func (p *Paragraph) DefaultFont() *Font {
	return &Font{owner: p.el, tag: "defRPr"}
}

func (p *Paragraph) getOrAddPPr() *etree.Element {
	if pPr := child(p.el, NsA, "pPr"); pPr != nil {
		return pPr
	}
	pPr := newA(p.el, "pPr")
	p.el.InsertChildAt(0, pPr)
	return pPr
}

// Run is an a:r element.
type Run struct {
	el *etree.Element
}

// Text returns the run text.
func (r *Run) Text() string {
	if t := child(r.el, NsA, "t"); t != nil {
		return t.Text()
	}
	return ""
}

// SetText replaces the run text. Characters that XML 1.0 cannot carry are
// written as _xHHHH_ escapes.
func (r *Run) SetText(text string) {
	t := child(r.el, NsA, "t")
	if t == nil {
		t = newA(r.el, "t")
		r.el.AddChild(t)
	}
	t.SetText(escapeControlChars(text))
}

// Font returns the run properties (a:rPr).
func (r *Run) Font() *Font {
	return &Font{owner: r.el, tag: "rPr"}
}

func escapeControlChars(s string) string {
	if strings.IndexFunc(s, isIllegalXMLChar) < 0 {
		return s
	}
	var b strings.Builder
	for _, c := range s {
		if isIllegalXMLChar(c) {
			fmt.Fprintf(&b, "_x%04X_", c)
			continue
		}
		b.WriteRune(c)
	}
	return b.String()
}

func isIllegalXMLChar(c rune) bool {
	if c == '\t' || c == '\n' || c == '\r' {
		return false
	}
	return c < 0x20 || c == 0xFFFE || c == 0xFFFF
}

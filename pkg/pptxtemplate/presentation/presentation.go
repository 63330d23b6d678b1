// Package presentation exposes a .pptx package as a mutable tree of slides,
// shapes, tables, paragraphs and runs.
package presentation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

const relTypeOfficeDocument = "/officeDocument"

// Presentation is an opened .pptx package. All parts are held in memory;
// slide parts are parsed into trees that callers mutate in place.
type Presentation struct {
	pkg      *opcPackage
	partName string
	slides   []*Slide
	width    int64
	height   int64
}

// Open reads the package at filename and parses every slide.
func Open(filename string) (*Presentation, error) {
	pkg, err := readPackage(filename)
	if err != nil {
		return nil, err
	}
	return load(pkg)
}

func load(pkg *opcPackage) (*Presentation, error) {
	partName, err := mainPartName(pkg)
	if err != nil {
		return nil, err
	}
	data, ok := pkg.get(partName)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrNotPresentation, partName)
	}
	doc, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrNotPresentation, partName, err)
	}
	root := doc.Root()
	if !is(root, NsP, "presentation") {
		return nil, fmt.Errorf("%w: %s is not a presentation part", ErrNotPresentation, partName)
	}

	rels, err := pkg.rels(partName)
	if err != nil {
		return nil, err
	}

	p := &Presentation{pkg: pkg, partName: partName}
	if sz := child(root, NsP, "sldSz"); sz != nil {
		p.width = parseInt64(sz.SelectAttrValue("cx", ""))
		p.height = parseInt64(sz.SelectAttrValue("cy", ""))
	}

	for _, id := range children(child(root, NsP, "sldIdLst"), NsP, "sldId") {
		rID := attrNS(id, NsR, "id")
		rel, ok := rels[rID]
		if !ok {
			return nil, fmt.Errorf("%w: slide relationship %q not found", ErrNotPresentation, rID)
		}
		slide, err := p.loadSlide(len(p.slides)+1, resolveTarget(partName, rel.Target))
		if err != nil {
			return nil, err
		}
		p.slides = append(p.slides, slide)
	}
	return p, nil
}

// mainPartName locates the presentation part through the package
// relationships, defaulting to the conventional location.
func mainPartName(pkg *opcPackage) (string, error) {
	rels, err := pkg.rels("")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotPresentation, err)
	}
	for _, rel := range rels {
		if strings.HasSuffix(rel.Type, relTypeOfficeDocument) {
			return resolveTarget("", rel.Target), nil
		}
	}
	return "ppt/presentation.xml", nil
}

func (p *Presentation) loadSlide(number int, partName string) (*Slide, error) {
	data, ok := p.pkg.get(partName)
	if !ok {
		return nil, fmt.Errorf("%w: missing slide part %s", ErrNotPresentation, partName)
	}
	doc, err := parseXML(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrNotPresentation, partName, err)
	}
	rels, err := p.pkg.rels(partName)
	if err != nil {
		return nil, err
	}
	return &Slide{pres: p, number: number, partName: partName, doc: doc, rels: rels}, nil
}

// SlideCount returns the number of slides in presentation order.
func (p *Presentation) SlideCount() int {
	return len(p.slides)
}

// Slides returns the slides in presentation order.
func (p *Presentation) Slides() []*Slide {
	return p.slides
}

// Slide returns the slide with the given 1-based number.
func (p *Presentation) Slide(number int) (*Slide, error) {
	if number < 1 || number > len(p.slides) {
		return nil, fmt.Errorf("%w: %d (presentation has %d slides)", ErrSlideOutOfRange, number, len(p.slides))
	}
	return p.slides[number-1], nil
}

// SlideSize returns the slide width and height in EMU.
func (p *Presentation) SlideSize() (width, height int64) {
	return p.width, p.height
}

// Save serializes every slide tree back into the package and writes the
// complete package to filename.
func (p *Presentation) Save(filename string) error {
	for _, s := range p.slides {
		data, err := serialize(s.doc)
		if err != nil {
			return fmt.Errorf("serialize %s: %w", s.partName, err)
		}
		p.pkg.set(s.partName, data)
	}
	if err := p.pkg.saveAs(filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}
	return nil
}

func serialize(doc *etree.Document) ([]byte, error) {
	return doc.WriteToBytes()
}

func parseInt64(s string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

package presentation

import (
	"fmt"

	"github.com/beevik/etree"
)

// shapeTags are the p:spTree children that count as shapes, in the same set
// PowerPoint enumerates in the selection pane.
var shapeTags = map[string]bool{
	"sp":           true,
	"grpSp":        true,
	"graphicFrame": true,
	"cxnSp":        true,
	"pic":          true,
	"contentPart":  true,
}

// Slide is one slide part of a presentation.
type Slide struct {
	pres     *Presentation
	number   int
	partName string
	doc      *etree.Document
	rels     map[string]relationship
}

// Number returns the 1-based position of the slide.
func (s *Slide) Number() int {
	return s.number
}

// PartName returns the package part holding the slide, e.g. ppt/slides/slide1.xml.
func (s *Slide) PartName() string {
	return s.partName
}

func (s *Slide) spTree() *etree.Element {
	return descend(s.doc.Root(), NsP, "cSld", "spTree")
}

// Shapes returns the top-level shapes of the slide in z-order. Group shapes
// count as one shape.
func (s *Slide) Shapes() []*Shape {
	tree := s.spTree()
	if tree == nil {
		return nil
	}
	var shapes []*Shape
	for _, el := range tree.ChildElements() {
		if el.NamespaceURI() != NsP || !shapeTags[el.Tag] {
			continue
		}
		shapes = append(shapes, &Shape{el: el, slide: s, index: len(shapes) + 1})
	}
	return shapes
}

// ShapeCount returns the number of top-level shapes.
func (s *Slide) ShapeCount() int {
	return len(s.Shapes())
}

// Shape returns the shape at the given 1-based index.
func (s *Slide) Shape(index int) (*Shape, error) {
	shapes := s.Shapes()
	if index < 1 || index > len(shapes) {
		return nil, fmt.Errorf("%w: %d on slide %d (slide has %d shapes)", ErrShapeOutOfRange, index, s.number, len(shapes))
	}
	return shapes[index-1], nil
}

// RelatedPart resolves a relationship of the slide and returns the target
// part's name and content.
func (s *Slide) RelatedPart(rID string) (string, []byte, bool) {
	rel, ok := s.rels[rID]
	if !ok || rel.TargetMode == "External" {
		return "", nil, false
	}
	name := resolveTarget(s.partName, rel.Target)
	data, ok := s.pres.pkg.get(name)
	return name, data, ok
}

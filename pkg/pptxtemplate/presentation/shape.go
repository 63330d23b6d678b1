package presentation

import (
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// ShapeKind is the closed set of shape variants the update engine
// dispatches on.
type ShapeKind int

const (
	// KindOther covers pictures, groups, connectors, charts and any other
	// shape that carries no editable text.
	KindOther ShapeKind = iota
	// KindText is an auto shape, text box or placeholder with a text frame.
	KindText
	// KindTable is a graphic frame holding a DrawingML table.
	KindTable
)

func (k ShapeKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindTable:
		return "table"
	default:
		return "other"
	}
}

// Shape is a top-level element of a slide's shape tree.
type Shape struct {
	el    *etree.Element
	slide *Slide
	index int
}

// Geometry is a shape's offset and extent in EMU. Fields are nil when the
// shape inherits its position from a layout placeholder.
type Geometry struct {
	Left   *int64
	Top    *int64
	Width  *int64
	Height *int64
}

// Placeholder describes the p:ph reference of a placeholder shape.
type Placeholder struct {
	// Type is the placeholder type attribute ("obj" when omitted).
	Type string
	// Idx is the placeholder index attribute, -1 when omitted.
	Idx int
}

// Index returns the 1-based position of the shape on its slide.
func (s *Shape) Index() int {
	return s.index
}

// Slide returns the slide owning the shape.
func (s *Shape) Slide() *Slide {
	return s.slide
}

// Kind classifies the shape.
func (s *Shape) Kind() ShapeKind {
	switch s.el.Tag {
	case "sp":
		return KindText
	case "graphicFrame":
		if s.graphicDataURI() == uriTable {
			return KindTable
		}
	}
	return KindOther
}

// nvProps returns the non-visual properties container (p:nvSpPr,
// p:nvPicPr, p:nvGraphicFramePr, ...).
func (s *Shape) nvProps() *etree.Element {
	for _, c := range s.el.ChildElements() {
		if c.NamespaceURI() == NsP && strings.HasPrefix(c.Tag, "nv") {
			return c
		}
	}
	return nil
}

// ID returns the cNvPr id of the shape.
func (s *Shape) ID() int {
	id, _ := strconv.Atoi(attrValue(child(s.nvProps(), NsP, "cNvPr"), "id", "0"))
	return id
}

// Name returns the cNvPr name of the shape.
func (s *Shape) Name() string {
	return attrValue(child(s.nvProps(), NsP, "cNvPr"), "name", "")
}

// Placeholder reports the placeholder reference of the shape, if any.
func (s *Shape) Placeholder() (Placeholder, bool) {
	ph := descend(s.nvProps(), NsP, "nvPr", "ph")
	if ph == nil {
		return Placeholder{}, false
	}
	idx, err := strconv.Atoi(ph.SelectAttrValue("idx", ""))
	if err != nil {
		idx = -1
	}
	return Placeholder{Type: ph.SelectAttrValue("type", "obj"), Idx: idx}, true
}

// TypeName returns a readable shape type label.
func (s *Shape) TypeName() string {
	if _, ok := s.Placeholder(); ok {
		return "Placeholder"
	}
	switch s.el.Tag {
	case "sp":
		if attrValue(child(s.nvProps(), NsP, "cNvSpPr"), "txBox", "") == "1" {
			return "TextBox"
		}
		if child(s.spPr(), NsA, "custGeom") != nil {
			return "Freeform"
		}
		return "AutoShape"
	case "pic":
		nvPr := child(s.nvProps(), NsP, "nvPr")
		if child(nvPr, NsA, "videoFile") != nil || child(nvPr, NsA, "audioFile") != nil {
			return "Media"
		}
		return "Picture"
	case "grpSp":
		return "Group"
	case "cxnSp":
		return "Line"
	case "graphicFrame":
		switch s.graphicDataURI() {
		case uriTable:
			return "Table"
		case uriChart:
			return "Chart"
		}
	}
	return "Unknown"
}

// PresetGeometry returns the a:prstGeom preset name, or "".
func (s *Shape) PresetGeometry() string {
	return attrValue(child(s.spPr(), NsA, "prstGeom"), "prst", "")
}

func (s *Shape) spPr() *etree.Element {
	if s.el.Tag == "grpSp" {
		return child(s.el, NsP, "grpSpPr")
	}
	return child(s.el, NsP, "spPr")
}

// Geometry returns the shape's own transform.
func (s *Shape) Geometry() Geometry {
	var xfrm *etree.Element
	if s.el.Tag == "graphicFrame" {
		xfrm = child(s.el, NsP, "xfrm")
	} else {
		xfrm = child(s.spPr(), NsA, "xfrm")
	}
	var g Geometry
	if off := child(xfrm, NsA, "off"); off != nil {
		g.Left = optInt64(off.SelectAttr("x"))
		g.Top = optInt64(off.SelectAttr("y"))
	}
	if ext := child(xfrm, NsA, "ext"); ext != nil {
		g.Width = optInt64(ext.SelectAttr("cx"))
		g.Height = optInt64(ext.SelectAttr("cy"))
	}
	return g
}

// TextBody returns the shape's text frame, or nil when it has none.
func (s *Shape) TextBody() *TextBody {
	if s.Kind() != KindText {
		return nil
	}
	if tb := child(s.el, NsP, "txBody"); tb != nil {
		return &TextBody{el: tb}
	}
	return nil
}

// GetOrAddTextBody returns the shape's text frame, creating an empty one on
// auto shapes that have none yet.
func (s *Shape) GetOrAddTextBody() (*TextBody, error) {
	if s.Kind() != KindText {
		return nil, ErrNoTextFrame
	}
	if tb := s.TextBody(); tb != nil {
		return tb, nil
	}
	txBody := newElement(s.el, NsP, "p", "txBody")
	txBody.AddChild(newA(s.el, "bodyPr"))
	txBody.AddChild(newA(s.el, "lstStyle"))
	txBody.AddChild(newA(s.el, "p"))
	insertBefore(s.el, txBody, NsP, "extLst")
	return &TextBody{el: txBody}, nil
}

// Table returns the table held by a table graphic frame, or nil.
func (s *Shape) Table() *Table {
	if s.Kind() != KindTable {
		return nil
	}
	tbl := child(s.graphicData(), NsA, "tbl")
	if tbl == nil {
		return nil
	}
	return &Table{el: tbl}
}

// ChartRelID returns the relationship id of the chart part referenced by a
// chart graphic frame, or "".
func (s *Shape) ChartRelID() string {
	if s.graphicDataURI() != uriChart {
		return ""
	}
	return attrNS(child(s.graphicData(), NsC, "chart"), NsR, "id")
}

func (s *Shape) graphicData() *etree.Element {
	if s.el.Tag != "graphicFrame" {
		return nil
	}
	return descend(child(s.el, NsA, "graphic"), NsA, "graphicData")
}

func (s *Shape) graphicDataURI() string {
	return attrValue(s.graphicData(), "uri", "")
}

func optInt64(a *etree.Attr) *int64 {
	if a == nil {
		return nil
	}
	v, err := strconv.ParseInt(a.Value, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

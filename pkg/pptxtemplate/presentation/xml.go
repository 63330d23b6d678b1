package presentation

import (
	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

// XML namespaces used in PresentationML and DrawingML parts.
const (
	NsP    = "http://schemas.openxmlformats.org/presentationml/2006/main"
	NsA    = "http://schemas.openxmlformats.org/drawingml/2006/main"
	NsR    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	NsC    = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	nsRels = "http://schemas.openxmlformats.org/package/2006/relationships"
)

// graphicData URIs identifying the payload of a p:graphicFrame.
const (
	uriTable = "http://schemas.openxmlformats.org/drawingml/2006/table"
	uriChart = "http://schemas.openxmlformats.org/drawingml/2006/chart"
)

// parseXML parses a package part into a mutable tree. Non-UTF-8 parts are
// decoded through the label declared in their XML header.
func parseXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, err
	}
	return doc, nil
}

// is reports whether el is the element {ns}tag.
func is(el *etree.Element, ns, tag string) bool {
	return el != nil && el.Tag == tag && el.NamespaceURI() == ns
}

// child returns the first child element {ns}tag of el.
func child(el *etree.Element, ns, tag string) *etree.Element {
	if el == nil {
		return nil
	}
	for _, c := range el.ChildElements() {
		if is(c, ns, tag) {
			return c
		}
	}
	return nil
}

// children returns every child element {ns}tag of el in document order.
func children(el *etree.Element, ns, tag string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if is(c, ns, tag) {
			out = append(out, c)
		}
	}
	return out
}

// descend walks a chain of child elements in a single namespace.
func descend(el *etree.Element, ns string, tags ...string) *etree.Element {
	for _, tag := range tags {
		el = child(el, ns, tag)
		if el == nil {
			return nil
		}
	}
	return el
}

// attrNS returns the value of the attribute key bound to namespace ns.
func attrNS(el *etree.Element, ns, key string) string {
	if el == nil {
		return ""
	}
	for i := range el.Attr {
		a := &el.Attr[i]
		if a.Key == key && a.NamespaceURI() == ns {
			return a.Value
		}
	}
	return ""
}

// prefixFor finds the prefix declared for ns in scope of el, falling back to
// the conventional one when nothing is declared.
func prefixFor(el *etree.Element, ns, fallback string) string {
	for e := el; e != nil; e = e.Parent() {
		if e.NamespaceURI() == ns {
			return e.Space
		}
		for _, a := range e.Attr {
			if a.Space == "xmlns" && a.Value == ns {
				return a.Key
			}
			if a.Space == "" && a.Key == "xmlns" && a.Value == ns {
				return ""
			}
		}
	}
	return fallback
}

// newElement creates a detached element {ns}tag using the prefix in scope
// of parent.
func newElement(parent *etree.Element, ns, fallbackPrefix, tag string) *etree.Element {
	el := etree.NewElement(tag)
	el.Space = prefixFor(parent, ns, fallbackPrefix)
	return el
}

// newA creates a detached DrawingML element.
func newA(parent *etree.Element, tag string) *etree.Element {
	return newElement(parent, NsA, "a", tag)
}

// insertBefore inserts el into parent ahead of the first existing child
// (same namespace) whose tag is one of successors, or appends it.
func insertBefore(parent, el *etree.Element, ns string, successors ...string) {
	for _, c := range parent.ChildElements() {
		if c.NamespaceURI() != ns {
			continue
		}
		for _, s := range successors {
			if c.Tag == s {
				parent.InsertChildAt(c.Index(), el)
				return
			}
		}
	}
	parent.AddChild(el)
}

// removeChildren detaches every child of parent matching one of tags in ns.
func removeChildren(parent *etree.Element, ns string, tags ...string) {
	for _, c := range parent.ChildElements() {
		if c.NamespaceURI() != ns {
			continue
		}
		for _, t := range tags {
			if c.Tag == t {
				parent.RemoveChild(c)
				break
			}
		}
	}
}

// attrValue is a nil-safe SelectAttrValue.
func attrValue(el *etree.Element, key, dflt string) string {
	if el == nil {
		return dflt
	}
	return el.SelectAttrValue(key, dflt)
}

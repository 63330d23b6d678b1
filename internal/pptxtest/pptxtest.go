// Package pptxtest builds minimal .pptx packages for tests.
package pptxtest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

const slideHeader = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart"><p:cSld><p:spTree><p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`

const slideFooter = `</p:spTree></p:cSld><p:clrMapOvr><a:masterClrMapping/></p:clrMapOvr></p:sld>`

// RelTypeChart is the relationship type of chart parts.
const RelTypeChart = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"

// Rel is a relationship from a slide to another part.
type Rel struct {
	Type   string
	Target string
}

// Slide is the content of one slide: the inner XML of p:spTree plus its
// relationships keyed by id.
type Slide struct {
	Shapes string
	Rels   map[string]Rel
}

// Deck describes a presentation to write.
type Deck struct {
	Slides []Slide
	// Parts holds extra package parts (charts, media) keyed by part name.
	Parts map[string]string
	// Width and Height are the slide size in EMU.
	Width  int64
	Height int64
}

// Write builds a deck from slide shape trees and returns the file path.
func Write(t testing.TB, slides ...string) string {
	t.Helper()
	d := Deck{}
	for _, s := range slides {
		d.Slides = append(d.Slides, Slide{Shapes: s})
	}
	filename := filepath.Join(t.TempDir(), "deck.pptx")
	d.Write(t, filename)
	return filename
}

// Write writes the deck to filename.
func (d Deck) Write(t testing.TB, filename string) {
	t.Helper()
	if err := os.WriteFile(filename, d.Bytes(), 0644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
}

// Bytes returns the zip container of the deck.
func (d Deck) Bytes() []byte {
	width, height := d.Width, d.Height
	if width == 0 {
		width, height = 12192000, 6858000
	}

	parts := map[string]string{}
	var overrides, sldIDs, presRels strings.Builder
	for i, s := range d.Slides {
		n := i + 1
		name := fmt.Sprintf("ppt/slides/slide%d.xml", n)
		parts[name] = slideHeader + s.Shapes + slideFooter
		fmt.Fprintf(&overrides, `<Override PartName="/%s" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, name)
		fmt.Fprintf(&sldIDs, `<p:sldId id="%d" r:id="rId%d"/>`, 255+n, n+1)
		fmt.Fprintf(&presRels, `<Relationship Id="rId%d" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide%d.xml"/>`, n+1, n)
		if len(s.Rels) > 0 {
			var rels strings.Builder
			rels.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
			ids := make([]string, 0, len(s.Rels))
			for id := range s.Rels {
				ids = append(ids, id)
			}
			sort.Strings(ids)
			for _, id := range ids {
				fmt.Fprintf(&rels, `<Relationship Id="%s" Type="%s" Target="%s"/>`, id, s.Rels[id].Type, s.Rels[id].Target)
			}
			rels.WriteString(`</Relationships>`)
			parts[fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n)] = rels.String()
		}
	}

	parts["[Content_Types].xml"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"><Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/><Default Extension="xml" ContentType="application/xml"/><Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>` + overrides.String() + `</Types>`
	parts["_rels/.rels"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"><Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="ppt/presentation.xml"/></Relationships>`
	parts["ppt/presentation.xml"] = fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?><p:presentation xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"><p:sldIdLst>%s</p:sldIdLst><p:sldSz cx="%d" cy="%d"/><p:notesSz cx="6858000" cy="9144000"/></p:presentation>`, sldIDs.String(), width, height)
	parts["ppt/_rels/presentation.xml.rels"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` + presRels.String() + `</Relationships>`
	for name, content := range d.Parts {
		parts[name] = content
	}

	names := make([]string, 0, len(parts))
	for name := range parts {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			panic(err)
		}
		if _, err := w.Write([]byte(parts[name])); err != nil {
			panic(err)
		}
	}
	if err := zw.Close(); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

// Escape escapes text for element content.
func Escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}

// Run returns an a:r with optional raw a:rPr XML.
func Run(rPr, text string) string {
	return `<a:r>` + rPr + `<a:t>` + Escape(text) + `</a:t></a:r>`
}

// Para returns an a:p with optional raw a:pPr XML and the given content.
func Para(pPr string, content ...string) string {
	return `<a:p>` + pPr + strings.Join(content, "") + `</a:p>`
}

// Plain returns a paragraph holding one unformatted run per text.
func Plain(texts ...string) string {
	var runs []string
	for _, t := range texts {
		runs = append(runs, Run("", t))
	}
	return Para("", runs...)
}

func textBody(tag string, paras []string) string {
	if len(paras) == 0 {
		paras = []string{`<a:p/>`}
	}
	return `<` + tag + `><a:bodyPr/><a:lstStyle/>` + strings.Join(paras, "") + `</` + tag + `>`
}

func xfrm(id int) string {
	return fmt.Sprintf(`<a:xfrm><a:off x="%d" y="%d"/><a:ext cx="%d" cy="%d"/></a:xfrm>`, 914400*id, 457200*id, 3048000, 952500)
}

// TextBox returns a text box shape holding paragraphs.
func TextBox(id int, name string, paras ...string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr txBox="1"/><p:nvPr/></p:nvSpPr><p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr>%s</p:sp>`,
		id, name, xfrm(id), textBody("p:txBody", paras))
}

// AutoShape returns a preset-geometry shape; paras may be empty to omit the text frame.
func AutoShape(id int, name, prst string, paras ...string) string {
	body := ""
	if len(paras) > 0 {
		body = textBody("p:txBody", paras)
	}
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr>%s<a:prstGeom prst="%s"><a:avLst/></a:prstGeom></p:spPr>%s</p:sp>`,
		id, name, xfrm(id), prst, body)
}

// Placeholder returns a placeholder shape that inherits its position.
func Placeholder(id int, name, phType string, paras ...string) string {
	return fmt.Sprintf(`<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr><a:spLocks noGrp="1"/></p:cNvSpPr><p:nvPr><p:ph type="%s"/></p:nvPr></p:nvSpPr><p:spPr/>%s</p:sp>`,
		id, name, phType, textBody("p:txBody", paras))
}

// Picture returns a picture shape.
func Picture(id int, name string) string {
	return fmt.Sprintf(`<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr><p:blipFill><a:blip r:embed="rId99"/></p:blipFill><p:spPr>%s<a:prstGeom prst="rect"><a:avLst/></a:prstGeom></p:spPr></p:pic>`,
		id, name, xfrm(id))
}

// Table returns a table graphic frame. Each cell holds one paragraph per
// line of its text; empty cells hold an empty paragraph.
func Table(id int, name string, rows [][]string) string {
	cols := 0
	for _, r := range rows {
		if len(r) > cols {
			cols = len(r)
		}
	}
	var b strings.Builder
	fmt.Fprintf(&b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/><p:cNvGraphicFramePr><a:graphicFrameLocks noGrp="1"/></p:cNvGraphicFramePr><p:nvPr/></p:nvGraphicFramePr><p:xfrm><a:off x="457200" y="1600200"/><a:ext cx="8229600" cy="1483360"/></p:xfrm><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblPr firstRow="1" bandRow="1"/><a:tblGrid>`, id, name)
	for i := 0; i < cols; i++ {
		b.WriteString(`<a:gridCol w="2743200"/>`)
	}
	b.WriteString(`</a:tblGrid>`)
	for _, r := range rows {
		b.WriteString(`<a:tr h="370840">`)
		for _, cell := range r {
			var paras []string
			if cell != "" {
				for _, line := range strings.Split(cell, "\n") {
					paras = append(paras, Para("", Run(`<a:rPr lang="en-US" sz="1400" b="1"/>`, line)))
				}
			}
			b.WriteString(`<a:tc>` + textBody("a:txBody", paras) + `<a:tcPr/></a:tc>`)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
	return b.String()
}

// Chart returns a chart graphic frame referencing relationship rID.
func Chart(id int, name, rID string) string {
	return fmt.Sprintf(`<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr><p:xfrm><a:off x="0" y="0"/><a:ext cx="4572000" cy="2743200"/></p:xfrm><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/chart"><c:chart r:id="%s"/></a:graphicData></a:graphic></p:graphicFrame>`,
		id, name, rID)
}

// ChartPart returns a chart part with one plot of chartTag ("barChart",
// "lineChart", ...) and an optional title.
func ChartPart(chartTag, title string) string {
	titleXML := ""
	if title != "" {
		titleXML = `<c:title><c:tx><c:rich><a:bodyPr/><a:p><a:r><a:t>` + Escape(title) + `</a:t></a:r></a:p></c:rich></c:tx></c:title>`
	}
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?><c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main"><c:chart>` +
		titleXML + `<c:plotArea><c:layout/><c:` + chartTag + `><c:ser><c:idx val="0"/></c:ser></c:` + chartTag + `></c:plotArea></c:chart></c:chartSpace>`
}

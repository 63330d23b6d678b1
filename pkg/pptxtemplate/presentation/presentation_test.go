package presentation

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ukaji3/pptxtemplate-go/internal/pptxtest"
)

func openDeck(t *testing.T, d pptxtest.Deck) *Presentation {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck.pptx")
	d.Write(t, path)
	pres, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	return pres
}

func mustShape(t *testing.T, pres *Presentation, slide, shape int) *Shape {
	t.Helper()
	s, err := pres.Slide(slide)
	if err != nil {
		t.Fatalf("Slide(%d) failed: %v", slide, err)
	}
	sh, err := s.Shape(shape)
	if err != nil {
		t.Fatalf("Shape(%d) failed: %v", shape, err)
	}
	return sh
}

func TestOpenSaveRoundTrip(t *testing.T) {
	d := pptxtest.Deck{
		Slides: []pptxtest.Slide{
			{
				Shapes: pptxtest.TextBox(2, "Title", pptxtest.Plain("Hello")) +
					pptxtest.Chart(3, "Chart 2", "rId2"),
				Rels: map[string]pptxtest.Rel{"rId2": {Type: pptxtest.RelTypeChart, Target: "../charts/chart1.xml"}},
			},
			{Shapes: pptxtest.TextBox(2, "Second", pptxtest.Plain("World"))},
		},
		Parts:  map[string]string{"ppt/charts/chart1.xml": pptxtest.ChartPart("pieChart", "")},
		Width:  9144000,
		Height: 6858000,
	}
	pres := openDeck(t, d)

	if pres.SlideCount() != 2 {
		t.Fatalf("Expected 2 slides, got %d", pres.SlideCount())
	}
	if w, h := pres.SlideSize(); w != 9144000 || h != 6858000 {
		t.Errorf("Unexpected slide size %dx%d", w, h)
	}

	run := mustShape(t, pres, 1, 1).TextBody().FirstParagraph().Runs()[0]
	run.SetText("Goodbye")

	out := filepath.Join(t.TempDir(), "out.pptx")
	if err := pres.Save(out); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	again, err := Open(out)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if got := mustShape(t, again, 1, 1).TextBody().Text(); got != "Goodbye" {
		t.Errorf("Expected saved text %q, got %q", "Goodbye", got)
	}
	if got := mustShape(t, again, 2, 1).TextBody().Text(); got != "World" {
		t.Errorf("Expected untouched slide text %q, got %q", "World", got)
	}
	slide, _ := again.Slide(1)
	name, data, ok := slide.RelatedPart("rId2")
	if !ok || name != "ppt/charts/chart1.xml" || len(data) == 0 {
		t.Errorf("Chart part not carried over: name=%q ok=%v", name, ok)
	}

	entries, err := os.ReadDir(filepath.Dir(out))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the saved file in the output directory, got %d entries", len(entries))
	}
}

func TestOpenRejectsNonPresentation(t *testing.T) {
	dir := t.TempDir()

	notZip := filepath.Join(dir, "text.pptx")
	if err := os.WriteFile(notZip, []byte("plain text"), 0644); err != nil {
		t.Fatal(err)
	}

	emptyZip := filepath.Join(dir, "empty.pptx")
	f, err := os.Create(emptyZip)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, _ := zw.Create("docProps/app.xml")
	_, _ = w.Write([]byte(`<Properties/>`))
	_ = zw.Close()
	_ = f.Close()

	for _, path := range []string{notZip, emptyZip} {
		if _, err := Open(path); !errors.Is(err, ErrNotPresentation) {
			t.Errorf("Open(%s): expected ErrNotPresentation, got %v", filepath.Base(path), err)
		}
	}
}

func TestSlideAndShapeRange(t *testing.T) {
	pres := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{Shapes: pptxtest.TextBox(2, "Only", pptxtest.Plain("x"))}}})

	for _, n := range []int{0, 2, -1} {
		if _, err := pres.Slide(n); !errors.Is(err, ErrSlideOutOfRange) {
			t.Errorf("Slide(%d): expected ErrSlideOutOfRange, got %v", n, err)
		}
	}
	slide, _ := pres.Slide(1)
	for _, n := range []int{0, 2} {
		if _, err := slide.Shape(n); !errors.Is(err, ErrShapeOutOfRange) {
			t.Errorf("Shape(%d): expected ErrShapeOutOfRange, got %v", n, err)
		}
	}
}

func TestShapeClassification(t *testing.T) {
	pres := openDeck(t, pptxtest.Deck{
		Slides: []pptxtest.Slide{{
			Shapes: pptxtest.Placeholder(2, "Title 1", "ctrTitle", pptxtest.Plain("T")) +
				pptxtest.TextBox(3, "Box", pptxtest.Plain("B")) +
				pptxtest.AutoShape(4, "Star", "star5") +
				pptxtest.Picture(5, "Pic") +
				pptxtest.Table(6, "Grid", [][]string{{"a"}}) +
				pptxtest.Chart(7, "Chart", "rId2"),
			Rels: map[string]pptxtest.Rel{"rId2": {Type: pptxtest.RelTypeChart, Target: "../charts/chart1.xml"}},
		}},
	})

	type info struct {
		Kind   ShapeKind
		Type   string
		Preset string
		Name   string
	}
	var got []info
	slide, _ := pres.Slide(1)
	for _, s := range slide.Shapes() {
		got = append(got, info{s.Kind(), s.TypeName(), s.PresetGeometry(), s.Name()})
	}
	want := []info{
		{KindText, "Placeholder", "", "Title 1"},
		{KindText, "TextBox", "rect", "Box"},
		{KindText, "AutoShape", "star5", "Star"},
		{KindOther, "Picture", "rect", "Pic"},
		{KindTable, "Table", "", "Grid"},
		{KindOther, "Chart", "", "Chart"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Shape classification mismatch (-want +got):\n%s", diff)
	}

	ph, ok := slide.Shapes()[0].Placeholder()
	if !ok || ph.Type != "ctrTitle" || ph.Idx != -1 {
		t.Errorf("Unexpected placeholder %+v ok=%v", ph, ok)
	}
	if g := slide.Shapes()[0].Geometry(); g.Left != nil || g.Width != nil {
		t.Errorf("Expected inherited geometry to be absent, got %+v", g)
	}
	if g := slide.Shapes()[1].Geometry(); g.Left == nil || *g.Left != 914400*3 {
		t.Errorf("Unexpected text box geometry %+v", g)
	}
	if id := slide.Shapes()[5].ChartRelID(); id != "rId2" {
		t.Errorf("Expected chart rel id rId2, got %q", id)
	}
}

func TestGetOrAddTextBody(t *testing.T) {
	pres := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.AutoShape(2, "Empty", "rect") + pptxtest.Picture(3, "Pic"),
	}}})

	empty := mustShape(t, pres, 1, 1)
	if empty.TextBody() != nil {
		t.Fatal("Expected no text body before creation")
	}
	tb, err := empty.GetOrAddTextBody()
	if err != nil {
		t.Fatalf("GetOrAddTextBody failed: %v", err)
	}
	if len(tb.Paragraphs()) != 1 || tb.Text() != "" {
		t.Errorf("Expected one empty paragraph, got %q", tb.Text())
	}
	if empty.TextBody() == nil {
		t.Error("Created text body is not attached to the shape")
	}

	if _, err := mustShape(t, pres, 1, 2).GetOrAddTextBody(); !errors.Is(err, ErrNoTextFrame) {
		t.Errorf("Expected ErrNoTextFrame for a picture, got %v", err)
	}
}

func TestParagraphText(t *testing.T) {
	pres := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.TextBox(2, "Body",
			pptxtest.Para(`<a:pPr lvl="2"/>`, pptxtest.Run("", "one"), `<a:br/>`, pptxtest.Run("", "two")),
			pptxtest.Para("", `<a:fld id="{1}" type="slidenum"><a:t>7</a:t></a:fld>`)),
	}}})

	paras := mustShape(t, pres, 1, 1).TextBody().Paragraphs()
	if got := paras[0].Text(); got != "one\vtwo" {
		t.Errorf("Expected line break as vertical tab, got %q", got)
	}
	if paras[0].Level() != 2 || paras[1].Level() != 0 {
		t.Errorf("Unexpected levels %d, %d", paras[0].Level(), paras[1].Level())
	}
	if got := paras[1].Text(); got != "7" {
		t.Errorf("Expected field text, got %q", got)
	}

	if err := paras[1].SetLevel(9); err == nil {
		t.Error("Expected error for level 9")
	}
	if err := paras[0].SetLevel(0); err != nil || paras[0].Level() != 0 {
		t.Errorf("SetLevel(0) failed: %v", err)
	}

	paras[0].Clear()
	if paras[0].Text() != "" || len(paras[0].Runs()) != 0 {
		t.Errorf("Clear left content behind: %q", paras[0].Text())
	}
}

func TestFontPropertiesKeepSchemaOrder(t *testing.T) {
	pres := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.TextBox(2, "Body", pptxtest.Para("",
			pptxtest.Run(`<a:rPr lang="en-US"><a:latin typeface="Arial"/><a:hlinkClick r:id=""/></a:rPr>`, "x"))),
	}}})
	run := mustShape(t, pres, 1, 1).TextBody().FirstParagraph().Runs()[0]
	font := run.Font()

	if err := font.SetColor(Color{Kind: ColorRGB, Value: "1F4E79"}); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}
	font.SetTypeface("Calibri")
	font.SetSize(2400)
	font.SetBold(true)
	font.SetUnderline("sng")

	var tags []string
	for _, c := range font.props().ChildElements() {
		tags = append(tags, c.Tag)
	}
	if diff := cmp.Diff([]string{"solidFill", "latin", "hlinkClick"}, tags); diff != "" {
		t.Errorf("rPr child order mismatch (-want +got):\n%s", diff)
	}

	c, ok := font.Color()
	if !ok {
		t.Fatal("Expected a color")
	}
	if diff := cmp.Diff(Color{Kind: ColorRGB, Value: "1F4E79"}, c); diff != "" {
		t.Errorf("Color mismatch (-want +got):\n%s", diff)
	}
	if tf, ok := font.Typeface(); !ok || tf != "Calibri" {
		t.Errorf("Unexpected typeface %q", tf)
	}
	if sz, ok := font.Size(); !ok || sz != 2400 {
		t.Errorf("Unexpected size %d", sz)
	}
	if b, ok := font.Bold(); !ok || !b {
		t.Error("Expected bold")
	}
	if _, ok := font.Italic(); ok {
		t.Error("Expected italic to be unset")
	}
	if u, ok := font.Underline(); !ok || u != "sng" {
		t.Errorf("Unexpected underline %q", u)
	}

	if err := font.SetColor(Color{Kind: ColorTheme, Value: "accent2"}); err != nil {
		t.Fatalf("SetColor theme failed: %v", err)
	}
	if c, _ := font.Color(); c.Kind != ColorTheme || c.Value != "accent2" {
		t.Errorf("Expected theme color to replace RGB, got %v", c)
	}
	fills := 0
	for _, c := range font.props().ChildElements() {
		if c.Tag == "solidFill" {
			fills++
		}
	}
	if fills != 1 {
		t.Errorf("Expected exactly one fill, got %d", fills)
	}
}

func TestColorKeepsTransforms(t *testing.T) {
	pres := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.TextBox(2, "Body",
			pptxtest.Para("", pptxtest.Run(`<a:rPr><a:solidFill><a:schemeClr val="accent1"><a:lumMod val="75000"/><a:lumOff val="25000"/></a:schemeClr></a:solidFill></a:rPr>`, "x")),
			pptxtest.Plain("y")),
	}}})
	paras := mustShape(t, pres, 1, 1).TextBody().Paragraphs()

	darker, ok := paras[0].Runs()[0].Font().Color()
	if !ok {
		t.Fatal("Expected a color")
	}
	want := Color{Kind: ColorTheme, Value: "accent1", Mods: []ColorMod{
		{Name: "lumMod", Val: "75000"},
		{Name: "lumOff", Val: "25000"},
	}}
	if diff := cmp.Diff(want, darker); diff != "" {
		t.Errorf("Color mismatch (-want +got):\n%s", diff)
	}

	target := paras[1].Runs()[0].Font()
	if err := target.SetColor(darker); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}
	got, _ := target.Color()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reapplied color mismatch (-want +got):\n%s", diff)
	}

	if err := target.SetColor(Color{Kind: ColorRGB, Value: "FFFFFF", Mods: []ColorMod{{Name: "comp"}}}); err != nil {
		t.Fatalf("SetColor failed: %v", err)
	}
	clr := descend(target.props(), NsA, "solidFill", "srgbClr")
	comp := child(clr, NsA, "comp")
	if comp == nil || comp.SelectAttr("val") != nil {
		t.Errorf("Expected a valueless comp transform, got %v", comp)
	}
}

func TestSetColorUnsupported(t *testing.T) {
	pres := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.TextBox(2, "Body", pptxtest.Plain("x")),
	}}})
	font := mustShape(t, pres, 1, 1).TextBody().FirstParagraph().Runs()[0].Font()

	for _, c := range []Color{
		{Kind: ColorOther, Value: "sysClr"},
		{Kind: ColorRGB, Value: "blue"},
		{Kind: ColorTheme},
		{Kind: ColorTheme, Value: "accent1", Mods: []ColorMod{{Val: "50000"}}},
		{},
	} {
		if err := font.SetColor(c); !errors.Is(err, ErrUnsupportedColor) {
			t.Errorf("SetColor(%v): expected ErrUnsupportedColor, got %v", c, err)
		}
	}
	if _, ok := font.Color(); ok {
		t.Error("Rejected colors must not write a fill")
	}
}

func TestParagraphDefaultFont(t *testing.T) {
	pres := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.TextBox(2, "Body", pptxtest.Para(`<a:pPr algn="ctr"/>`)),
	}}})
	p := mustShape(t, pres, 1, 1).TextBody().FirstParagraph()

	if _, ok := p.DefaultFont().Size(); ok {
		t.Fatal("Expected no default size")
	}
	p.DefaultFont().SetSize(1800)
	if sz, ok := p.DefaultFont().Size(); !ok || sz != 1800 {
		t.Errorf("Unexpected default size %d", sz)
	}
	if attrValue(child(p.el, NsA, "pPr"), "algn", "") != "ctr" {
		t.Error("Existing paragraph properties were lost")
	}
}

func TestTableCells(t *testing.T) {
	pres := openDeck(t, pptxtest.Deck{Slides: []pptxtest.Slide{{
		Shapes: pptxtest.Table(2, "Grid", [][]string{{"a", "b"}, {"", "line1\nline2"}}),
	}}})
	table := mustShape(t, pres, 1, 1).Table()
	if table == nil {
		t.Fatal("Expected a table")
	}
	if table.Rows() != 2 || table.Columns() != 2 {
		t.Errorf("Unexpected table size %dx%d", table.Rows(), table.Columns())
	}

	cell, err := table.Cell(1, 1)
	if err != nil {
		t.Fatalf("Cell failed: %v", err)
	}
	if cell.Text() != "line1\nline2" || cell.Row() != 1 || cell.Column() != 1 || cell.Merged() {
		t.Errorf("Unexpected cell %d,%d %q", cell.Row(), cell.Column(), cell.Text())
	}

	for _, rc := range [][2]int{{2, 0}, {0, 2}, {-1, 0}, {0, -1}} {
		if _, err := table.Cell(rc[0], rc[1]); !errors.Is(err, ErrCellOutOfRange) {
			t.Errorf("Cell(%d,%d): expected ErrCellOutOfRange, got %v", rc[0], rc[1], err)
		}
	}

	grid := table.Grid()
	if len(grid) != 2 || len(grid[0]) != 2 || grid[0][1].Text() != "b" {
		t.Errorf("Unexpected grid %v", grid)
	}
}

func TestRunTextEscapesControlCharacters(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"tab\tkept", "tab\tkept"},
		{"a\x01b", "a_x0001_b"},
		{"\x1f", "_x001F_"},
		{"\v", "_x000B_"},
	}
	for _, tt := range tests {
		if got := escapeControlChars(tt.in); got != tt.want {
			t.Errorf("escapeControlChars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPartNames(t *testing.T) {
	if got := relsPathFor("ppt/slides/slide1.xml"); got != "ppt/slides/_rels/slide1.xml.rels" {
		t.Errorf("relsPathFor = %q", got)
	}
	if got := relsPathFor(""); got != "_rels/.rels" {
		t.Errorf("relsPathFor root = %q", got)
	}
	tests := []struct {
		source, target, want string
	}{
		{"ppt/slides/slide1.xml", "../charts/chart1.xml", "ppt/charts/chart1.xml"},
		{"ppt/presentation.xml", "slides/slide2.xml", "ppt/slides/slide2.xml"},
		{"ppt/slides/slide1.xml", "/ppt/media/image1.png", "ppt/media/image1.png"},
		{"", "ppt/presentation.xml", "ppt/presentation.xml"},
	}
	for _, tt := range tests {
		if got := resolveTarget(tt.source, tt.target); got != tt.want {
			t.Errorf("resolveTarget(%q, %q) = %q, want %q", tt.source, tt.target, got, tt.want)
		}
	}
}

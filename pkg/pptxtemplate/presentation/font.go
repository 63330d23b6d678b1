package presentation

import (
	"strconv"

	"github.com/beevik/etree"
)

// Children of a:rPr / a:defRPr that must follow a fill element, in schema order.
var afterFill = []string{
	"effectLst", "effectDag", "highlight", "uLnTx", "uLn", "uFillTx", "uFill",
	"latin", "ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst",
}

// Children of a:rPr / a:defRPr that must follow a:latin, in schema order.
var afterLatin = []string{"ea", "cs", "sym", "hlinkClick", "hlinkMouseOver", "rtl", "extLst"}

var fillTags = []string{"noFill", "solidFill", "gradFill", "blipFill", "pattFill", "grpFill"}

// Font reads and writes character properties of a run (a:rPr) or a
// paragraph default (a:pPr/a:defRPr). Getters report ok=false when the
// property is not set at this level.
type Font struct {
	owner *etree.Element
	tag   string
}

func (f *Font) props() *etree.Element {
	if f.tag == "defRPr" {
		return descend(f.owner, NsA, "pPr", "defRPr")
	}
	return child(f.owner, NsA, f.tag)
}

func (f *Font) getOrAddProps() *etree.Element {
	if el := f.props(); el != nil {
		return el
	}
	if f.tag == "defRPr" {
		p := &Paragraph{el: f.owner}
		pPr := p.getOrAddPPr()
		el := newA(pPr, "defRPr")
		insertBefore(pPr, el, NsA, "extLst")
		return el
	}
	el := newA(f.owner, f.tag)
	f.owner.InsertChildAt(0, el)
	return el
}

// Size returns the font size in hundredths of a point.
func (f *Font) Size() (int, bool) {
	a := attr(f.props(), "sz")
	if a == nil {
		return 0, false
	}
	v, err := strconv.Atoi(a.Value)
	if err != nil {
		return 0, false
	}
	return v, true
}

// SetSize sets the font size in hundredths of a point.
func (f *Font) SetSize(centipoints int) {
	f.getOrAddProps().CreateAttr("sz", strconv.Itoa(centipoints))
}

// Typeface returns the latin typeface name.
func (f *Font) Typeface() (string, bool) {
	latin := child(f.props(), NsA, "latin")
	if latin == nil {
		return "", false
	}
	a := latin.SelectAttr("typeface")
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// SetTypeface sets the latin typeface name.
func (f *Font) SetTypeface(name string) {
	props := f.getOrAddProps()
	latin := child(props, NsA, "latin")
	if latin == nil {
		latin = newA(props, "latin")
		insertBefore(props, latin, NsA, afterLatin...)
	}
	latin.CreateAttr("typeface", name)
}

// Bold reports the b attribute.
func (f *Font) Bold() (bool, bool) {
	return f.boolAttr("b")
}

// SetBold sets the b attribute.
func (f *Font) SetBold(v bool) {
	f.setBoolAttr("b", v)
}

// Italic reports the i attribute.
func (f *Font) Italic() (bool, bool) {
	return f.boolAttr("i")
}

// SetItalic sets the i attribute.
func (f *Font) SetItalic(v bool) {
	f.setBoolAttr("i", v)
}

// Underline returns the raw u attribute ("sng", "dbl", "none", ...).
func (f *Font) Underline() (string, bool) {
	a := attr(f.props(), "u")
	if a == nil {
		return "", false
	}
	return a.Value, true
}

// SetUnderline sets the u attribute.
func (f *Font) SetUnderline(style string) {
	f.getOrAddProps().CreateAttr("u", style)
}

// Color returns the solid fill color of the text. Text without a solid
// fill has no color.
func (f *Font) Color() (Color, bool) {
	fill := child(f.props(), NsA, "solidFill")
	if fill == nil {
		return Color{}, false
	}
	for _, c := range fill.ChildElements() {
		if c.NamespaceURI() != NsA {
			continue
		}
		switch c.Tag {
		case "srgbClr":
			return Color{Kind: ColorRGB, Value: c.SelectAttrValue("val", ""), Mods: colorMods(c)}, true
		case "schemeClr":
			return Color{Kind: ColorTheme, Value: c.SelectAttrValue("val", ""), Mods: colorMods(c)}, true
		case "sysClr", "prstClr", "hslClr", "scrgbClr":
			return Color{Kind: ColorOther, Value: c.Tag}, true
		}
	}
	return Color{}, false
}

// SetColor replaces the text fill with a solid color, transforms included.
// Only RGB and theme colors can be written; other kinds return
// ErrUnsupportedColor and leave the properties untouched.
func (f *Font) SetColor(c Color) error {
	var tag string
	switch c.Kind {
	case ColorRGB:
		if !isHexRGB(c.Value) {
			return ErrUnsupportedColor
		}
		tag = "srgbClr"
	case ColorTheme:
		if c.Value == "" {
			return ErrUnsupportedColor
		}
		tag = "schemeClr"
	default:
		return ErrUnsupportedColor
	}
	for _, m := range c.Mods {
		if m.Name == "" {
			return ErrUnsupportedColor
		}
	}
	props := f.getOrAddProps()
	removeChildren(props, NsA, fillTags...)
	fill := newA(props, "solidFill")
	clr := newA(props, tag)
	clr.CreateAttr("val", c.Value)
	for _, m := range c.Mods {
		mod := newA(props, m.Name)
		if m.Val != "" {
			mod.CreateAttr("val", m.Val)
		}
		clr.AddChild(mod)
	}
	fill.AddChild(clr)
	insertBefore(props, fill, NsA, afterFill...)
	return nil
}

func colorMods(clr *etree.Element) []ColorMod {
	var mods []ColorMod
	for _, m := range clr.ChildElements() {
		if m.NamespaceURI() != NsA {
			continue
		}
		mods = append(mods, ColorMod{Name: m.Tag, Val: m.SelectAttrValue("val", "")})
	}
	return mods
}

func (f *Font) boolAttr(key string) (bool, bool) {
	a := attr(f.props(), key)
	if a == nil {
		return false, false
	}
	switch a.Value {
	case "1", "true":
		return true, true
	case "0", "false":
		return false, true
	}
	return false, false
}

func (f *Font) setBoolAttr(key string, v bool) {
	val := "0"
	if v {
		val = "1"
	}
	f.getOrAddProps().CreateAttr(key, val)
}

func attr(el *etree.Element, key string) *etree.Attr {
	if el == nil {
		return nil
	}
	return el.SelectAttr(key)
}

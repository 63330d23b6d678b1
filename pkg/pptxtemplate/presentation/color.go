package presentation

import "fmt"

// ColorKind tells how a color is referenced.
type ColorKind int

const (
	// ColorRGB is an explicit a:srgbClr value.
	ColorRGB ColorKind = iota + 1
	// ColorTheme is an a:schemeClr reference into the theme palette.
	ColorTheme
	// ColorOther is a system, preset, HSL or scRGB color.
	ColorOther
)

func (k ColorKind) String() string {
	switch k {
	case ColorRGB:
		return "rgb"
	case ColorTheme:
		return "theme"
	case ColorOther:
		return "other"
	}
	return "none"
}

// Color is an opaque color reference that keeps its original kind. Value is
// the hex triplet for RGB, the scheme slot (accent1, tx1, ...) for theme
// colors and the element name for other kinds.
type Color struct {
	Kind  ColorKind
	Value string
	// Mods are the transforms applied to the base color, in document order.
	Mods []ColorMod
}

// ColorMod is one color transform such as lumMod, lumOff, tint or shade.
// Val is empty for transforms without a value (comp, inv, gray).
type ColorMod struct {
	Name string
	Val  string
}

func (c Color) String() string {
	s := fmt.Sprintf("%s:%s", c.Kind, c.Value)
	for _, m := range c.Mods {
		s += fmt.Sprintf(" %s=%s", m.Name, m.Val)
	}
	return s
}

func isHexRGB(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

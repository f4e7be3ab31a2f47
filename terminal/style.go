package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone      Attr = 0
	AttrBold      Attr = 1 << 0
	AttrDim       Attr = 1 << 1
	AttrItalic    Attr = 1 << 2
	AttrUnderline Attr = 1 << 3
	AttrBlink     Attr = 1 << 4
	AttrReverse   Attr = 1 << 5
	attrFgSet     Attr = 1 << 6 // Fg holds a color; terminal default otherwise
	attrBgSet     Attr = 1 << 7 // Bg holds a color; terminal default otherwise
)

// AttrStyle masks only the style bits (excludes color flags)
const AttrStyle Attr = AttrBold | AttrDim | AttrItalic | AttrUnderline | AttrBlink | AttrReverse

// RGB represents a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Hex parses "#rrggbb"; invalid input yields black and false
func Hex(s string) (RGB, bool) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGB{}, false
	}
	r, g, b := c.RGB255()
	return RGB{r, g, b}, true
}

// Blend mixes c toward to by t in [0,1], interpolating in Lab space
func (c RGB) Blend(to RGB, t float64) RGB {
	if t <= 0 {
		return c
	}
	if t >= 1 {
		return to
	}
	r, g, b := c.colorful().BlendLab(to.colorful(), t).Clamped().RGB255()
	return RGB{r, g, b}
}

func (c RGB) colorful() colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

// Style is the appearance of a cell; zero value uses terminal defaults
type Style struct {
	Fg    RGB
	Bg    RGB
	Attrs Attr
}

// StyleDefault renders with the terminal's own colors and no attributes
var StyleDefault = Style{}

// Foreground returns s with fg set
func (s Style) Foreground(fg RGB) Style {
	s.Fg = fg
	s.Attrs |= attrFgSet
	return s
}

// Background returns s with bg set
func (s Style) Background(bg RGB) Style {
	s.Bg = bg
	s.Attrs |= attrBgSet
	return s
}

// With returns s with attributes a added
func (s Style) With(a Attr) Style {
	s.Attrs |= a & AttrStyle
	return s
}

// tcell converts s to the backend style
func (s Style) tcell() tcell.Style {
	st := tcell.StyleDefault
	if s.Attrs&attrFgSet != 0 {
		st = st.Foreground(tcell.NewRGBColor(int32(s.Fg.R), int32(s.Fg.G), int32(s.Fg.B)))
	}
	if s.Attrs&attrBgSet != 0 {
		st = st.Background(tcell.NewRGBColor(int32(s.Bg.R), int32(s.Bg.G), int32(s.Bg.B)))
	}
	return st.
		Bold(s.Attrs&AttrBold != 0).
		Dim(s.Attrs&AttrDim != 0).
		Italic(s.Attrs&AttrItalic != 0).
		Underline(s.Attrs&AttrUnderline != 0).
		Blink(s.Attrs&AttrBlink != 0).
		Reverse(s.Attrs&AttrReverse != 0)
}

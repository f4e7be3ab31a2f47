package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Rect is a cell-aligned rectangle
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

// Intersect returns the overlap of r and o; empty when disjoint
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// DrawFunc paints one frame
type DrawFunc func(f *Frame) error

// Frame is the drawable area of one render pass
// Only valid inside the DrawFunc it was passed to
type Frame struct {
	screen tcell.Screen
	area   Rect
}

// Area returns the drawable region in cells
func (f *Frame) Area() Rect {
	return f.area
}

// SetCell writes one rune; out-of-area writes are ignored
func (f *Frame) SetCell(x, y int, r rune, style Style) {
	if !f.area.Contains(x, y) {
		return
	}
	f.screen.SetContent(x, y, r, nil, style.tcell())
}

// DrawText writes s starting at (x, y) without wrapping and returns the columns used
// Wide runes take two columns and are not split at the right edge
func (f *Frame) DrawText(x, y int, s string, style Style) int {
	if y < f.area.Y || y >= f.area.Y+f.area.H {
		return 0
	}
	st := style.tcell()
	right := f.area.X + f.area.W
	col := x
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > right {
			break
		}
		if col >= f.area.X {
			f.screen.SetContent(col, y, r, nil, st)
		}
		col += w
	}
	return col - x
}

// Fill paints every cell of r (clipped to the area) with ch
func (f *Frame) Fill(r Rect, ch rune, style Style) {
	r = r.Intersect(f.area)
	st := style.tcell()
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			f.screen.SetContent(x, y, ch, nil, st)
		}
	}
}

package main

import (
	"github.com/lixenwraith/termcore/status"
	"github.com/lixenwraith/termcore/terminal"
)

var (
	colorCold  = terminal.RGB{R: 40, G: 90, B: 220}
	colorHot   = terminal.RGB{R: 230, G: 60, B: 40}
	styleTitle = terminal.StyleDefault.With(terminal.AttrBold)
	styleDim   = terminal.StyleDefault.With(terminal.AttrDim)
)

// drawMetrics lists runtime metrics one per row from row top down
func drawMetrics(f *terminal.Frame, metrics *status.Registry, top int) {
	area := f.Area()
	y := top
	for _, line := range metrics.Lines() {
		if y >= area.Y+area.H {
			return
		}
		f.DrawText(area.X+1, y, line, styleDim)
		y++
	}
}

// drawBar paints a horizontal bar of width cols, colored by ratio
func drawBar(f *terminal.Frame, x, y, cols int, ratio float64) {
	style := terminal.StyleDefault.Foreground(colorCold.Blend(colorHot, ratio))
	f.Fill(terminal.Rect{X: x, Y: y, W: cols, H: 1}, '█', style)
}

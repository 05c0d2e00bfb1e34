package viz

import "strings"

// Braille cells are 2 dots wide and 4 tall:
//
//	1 4
//	2 5
//	3 6
//	7 8
const brailleBase = 0x2800

var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// PhaseCanvas is a Braille scatter plot of particle positions against
// velocities. Each character cell holds a 2x4 block of dots.
type PhaseCanvas struct {
	cols, rows int
	cells      []rune
}

func NewPhaseCanvas(cols, rows int) *PhaseCanvas {
	c := &PhaseCanvas{cols: cols, rows: rows, cells: make([]rune, cols*rows)}
	c.Clear()
	return c
}

func (c *PhaseCanvas) Clear() {
	for i := range c.cells {
		c.cells[i] = brailleBase
	}
}

// Dots returns the plot resolution in dots.
func (c *PhaseCanvas) Dots() (w, h int) { return c.cols * 2, c.rows * 4 }

// Dot marks the dot at (px, py), origin top left. Out-of-range dots are
// ignored.
func (c *PhaseCanvas) Dot(px, py int) {
	w, h := c.Dots()
	if px < 0 || py < 0 || px >= w || py >= h {
		return
	}
	c.cells[(py/4)*c.cols+px/2] |= dotBits[py%4][px%2]
}

// Plot clears the canvas and scatters every (x, v) pair. x spans
// [xMin, xMax) left to right; v spans [-vMax, vMax] bottom to top.
func (c *PhaseCanvas) Plot(xs, vs []float64, xMin, xMax, vMax float64) {
	c.Clear()
	if xMax <= xMin || vMax <= 0 {
		return
	}
	w, h := c.Dots()
	sx := float64(w) / (xMax - xMin)
	sy := float64(h-1) / (2 * vMax)
	for i, x := range xs {
		px := int((x - xMin) * sx)
		py := int((vMax - vs[i]) * sy)
		c.Dot(px, py)
	}
}

// Count returns the number of marked dots.
func (c *PhaseCanvas) Count() int {
	n := 0
	for _, r := range c.cells {
		for bits := r - brailleBase; bits != 0; bits &= bits - 1 {
			n++
		}
	}
	return n
}

func (c *PhaseCanvas) String() string {
	var b strings.Builder
	for row := 0; row < c.rows; row++ {
		b.WriteString(string(c.cells[row*c.cols : (row+1)*c.cols]))
		if row < c.rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

package render

import (
	"strings"
	"unicode/utf8"

	"github.com/lixenwraith/donut/parameter"
)

// Blank fills cells nothing was drawn to
const Blank = ' '

// FrameBuffer is the depth-tested character compositor
// depth and cells are row-major: idx = y*width + x
type FrameBuffer struct {
	depth   []float64
	cells   []rune
	palette []rune
	rng     Source
	width   int
	height  int
}

// NewFrameBuffer creates an empty buffer; call Reset before drawing
// An empty palette falls back to parameter.Palette
func NewFrameBuffer(palette string, rng Source) *FrameBuffer {
	if palette == "" {
		palette = parameter.Palette
	}
	return &FrameBuffer{
		palette: []rune(palette),
		rng:     rng,
	}
}

func (b *FrameBuffer) Width() int {
	return b.width
}

func (b *FrameBuffer) Height() int {
	return b.height
}

// Palette returns the brightness characters, dim to bright
func (b *FrameBuffer) Palette() []rune {
	return b.palette
}

// Reset sizes the buffer to width x height and clears every cell
// Reallocates only if capacity is insufficient
func (b *FrameBuffer) Reset(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]rune, size)
		b.depth = make([]float64, size)
	} else {
		b.cells = b.cells[:size]
		b.depth = b.depth[:size]
	}
	b.width = width
	b.height = height
	b.clear()
}

// clear fills cells and depth using exponential copy
func (b *FrameBuffer) clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Blank
	b.depth[0] = parameter.FarDepth
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
		copy(b.depth[filled:], b.depth[:filled])
	}
}

func (b *FrameBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Dither quantizes value to [0, count) with the buffer's random source
func (b *FrameBuffer) Dither(value float64, count int) int {
	return Dither(value, count, b.rng)
}

// Plot depth-tests a sample against cell (x, y)
// A strictly greater depth wins; ties keep the earlier character
// Returns true if the cell was written
func (b *FrameBuffer) Plot(x, y int, light, depth float64) bool {
	if !b.inBounds(x, y) {
		return false
	}
	idx := y*b.width + x
	if !(b.depth[idx] < depth) {
		return false
	}
	b.depth[idx] = depth
	n := len(b.palette)
	b.cells[idx] = b.palette[b.Dither(light*float64(n), n)]
	return true
}

// Cell returns the character at (x, y), Blank when out of bounds
func (b *FrameBuffer) Cell(x, y int) rune {
	if !b.inBounds(x, y) {
		return Blank
	}
	return b.cells[y*b.width+x]
}

// Depth returns the stored depth at (x, y), parameter.FarDepth when out of bounds
func (b *FrameBuffer) Depth(x, y int) float64 {
	if !b.inBounds(x, y) {
		return parameter.FarDepth
	}
	return b.depth[y*b.width+x]
}

// Row returns row y as a string
func (b *FrameBuffer) Row(y int) string {
	if y < 0 || y >= b.height {
		return ""
	}
	var sb strings.Builder
	sb.Grow(b.width)
	for _, r := range b.cells[y*b.width : (y+1)*b.width] {
		sb.WriteRune(r)
	}
	return sb.String()
}

// Drawn returns the number of non-blank cells
func (b *FrameBuffer) Drawn() int {
	n := 0
	for _, r := range b.cells {
		if r != Blank {
			n++
		}
	}
	return n
}

// Present clears the sink, blits every row and overlays the caption, then flushes once
func (b *FrameBuffer) Present(sink Sink, caption string) error {
	sink.Clear()

	for y := 0; y < b.height; y++ {
		row := strings.TrimRight(b.Row(y), string(Blank))
		if row == "" {
			continue
		}
		sink.MoveCursor(0, y)
		sink.WriteString(row)
	}

	for _, line := range CaptionLayout(caption, b.width, b.height) {
		sink.MoveCursor(line.X, line.Y)
		sink.WriteString(line.Text)
	}

	return sink.Flush()
}

// CaptionLine is one placed copy of the caption
type CaptionLine struct {
	X, Y int
	Text string
}

// CaptionLayout centers caption on parameter.CaptionTopRow and the last row
// Captions wider than the surface are clipped
func CaptionLayout(caption string, width, height int) []CaptionLine {
	if caption == "" || width <= 0 || height <= 0 {
		return nil
	}

	text := caption
	if n := utf8.RuneCountInString(text); n > width {
		text = string([]rune(text)[:width])
	}
	x := (width - utf8.RuneCountInString(text)) / 2

	var lines []CaptionLine
	if parameter.CaptionTopRow < height {
		lines = append(lines, CaptionLine{X: x, Y: parameter.CaptionTopRow, Text: text})
	}
	if bottom := height - 1; bottom != parameter.CaptionTopRow {
		lines = append(lines, CaptionLine{X: x, Y: bottom, Text: text})
	}
	return lines
}

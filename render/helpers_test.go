package render

import (
	"fmt"
	"strings"
)

// fixedSource always returns the same value
// 0.5 yields a zero dither offset
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

// countingSource returns 0.5 and counts draws
type countingSource struct {
	calls int
}

func (c *countingSource) Float64() float64 {
	c.calls++
	return 0.5
}

// recordSink keeps a screen image and an operation log
type recordSink struct {
	width, height int
	sizeErr       error
	flushErr      error

	grid    [][]rune
	x, y    int
	ops     []string
	flushes int
	hidden  bool
}

func newRecordSink(width, height int) *recordSink {
	s := &recordSink{width: width, height: height}
	s.Clear()
	s.ops = nil
	return s
}

func (s *recordSink) Size() (int, int, error) {
	return s.width, s.height, s.sizeErr
}

func (s *recordSink) HideCursor() { s.hidden = true }
func (s *recordSink) ShowCursor() { s.hidden = false }

func (s *recordSink) Clear() {
	s.grid = make([][]rune, s.height)
	for y := range s.grid {
		s.grid[y] = []rune(strings.Repeat(" ", s.width))
	}
	s.ops = append(s.ops, "clear")
}

func (s *recordSink) MoveCursor(x, y int) {
	s.x, s.y = x, y
	s.ops = append(s.ops, fmt.Sprintf("move %d,%d", x, y))
}

func (s *recordSink) WriteString(str string) {
	for _, r := range str {
		if s.y >= 0 && s.y < s.height && s.x >= 0 && s.x < s.width {
			s.grid[s.y][s.x] = r
		}
		s.x++
	}
	s.ops = append(s.ops, "write "+str)
}

func (s *recordSink) Flush() error {
	s.flushes++
	s.ops = append(s.ops, "flush")
	return s.flushErr
}

func (s *recordSink) line(y int) string {
	return string(s.grid[y])
}

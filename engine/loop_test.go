package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/donut/config"
	"github.com/lixenwraith/donut/vmath"
)

// fakeSink is an in-memory display sink
type fakeSink struct {
	width, height int
	grid          [][]rune
	x, y          int

	clears  int
	flushes int
	hidden  bool

	sizeErr  error
	flushErr error
	onFlush  func(n int)
}

func newFakeSink(w, h int) *fakeSink {
	s := &fakeSink{width: w, height: h}
	s.Clear()
	return s
}

func (s *fakeSink) Size() (int, int, error) {
	return s.width, s.height, s.sizeErr
}

func (s *fakeSink) HideCursor() { s.hidden = true }
func (s *fakeSink) ShowCursor() { s.hidden = false }

func (s *fakeSink) Clear() {
	s.clears++
	s.grid = make([][]rune, s.height)
	for y := range s.grid {
		s.grid[y] = []rune(strings.Repeat(" ", s.width))
	}
	s.x, s.y = 0, 0
}

func (s *fakeSink) MoveCursor(x, y int) {
	s.x, s.y = x, y
}

func (s *fakeSink) WriteString(str string) {
	for _, r := range str {
		if s.y >= 0 && s.y < len(s.grid) && s.x >= 0 && s.x < len(s.grid[s.y]) {
			s.grid[s.y][s.x] = r
		}
		s.x++
	}
}

func (s *fakeSink) Flush() error {
	if s.flushErr != nil {
		return s.flushErr
	}
	s.flushes++
	if s.onFlush != nil {
		s.onFlush(s.flushes)
	}
	return nil
}

func (s *fakeSink) line(y int) string {
	return string(s.grid[y])
}

// halfSource returns 0.5, a zero dither offset
type halfSource struct{}

func (halfSource) Float64() float64 { return 0.5 }

func smallConfig() config.Config {
	cfg := config.Default()
	cfg.Torus.N1 = 24
	cfg.Torus.N2 = 12
	cfg.Render.FrameDelayMs = 0
	return cfg
}

func matApprox(a, b vmath.Mat4) bool {
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if d := a[i][j] - b[i][j]; d > 1e-12 || d < -1e-12 {
				return false
			}
		}
	}
	return true
}

func TestStepPresentsFrame(t *testing.T) {
	sink := newFakeSink(80, 24)
	l := New(smallConfig(), sink, halfSource{})

	if err := l.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if sink.flushes != 1 || l.Frames() != 1 {
		t.Fatalf("flushes=%d frames=%d, want 1", sink.flushes, l.Frames())
	}

	stats := l.Stats()
	if stats.Samples != 24*12 {
		t.Errorf("Samples = %d, want %d", stats.Samples, 24*12)
	}
	if stats.Plotted == 0 {
		t.Error("nothing plotted")
	}

	caption := config.Default().Render.Caption
	for _, y := range []int{1, 23} {
		if !strings.Contains(sink.line(y), caption) {
			t.Errorf("row %d = %q, missing caption", y, sink.line(y))
		}
	}

	palette := config.Default().Render.Palette
	drawn := 0
	for y := 0; y < 24; y++ {
		if y == 1 || y == 23 {
			continue
		}
		for _, r := range sink.line(y) {
			if r == ' ' {
				continue
			}
			if !strings.ContainsRune(palette, r) {
				t.Fatalf("row %d has non-palette rune %q", y, r)
			}
			drawn++
		}
	}
	if drawn == 0 {
		t.Error("no torus cells reached the sink")
	}
}

func TestAdvanceComposition(t *testing.T) {
	cfg := smallConfig()
	l := New(cfg, newFakeSink(80, 24), halfSource{})

	want := vmath.Identity()
	for i := 0; i < 3; i++ {
		l.Advance()
		want = want.Mul(vmath.RotationZ(cfg.Rotation.Spin)).
			Mul(vmath.EulerAngles(cfg.Rotation.Roll, cfg.Rotation.Pitch, 0))
	}
	if !matApprox(l.Global(), want) {
		t.Errorf("Global = %v, want %v", l.Global(), want)
	}
}

func TestStepAdvancesOncePerFrame(t *testing.T) {
	cfg := smallConfig()
	l := New(cfg, newFakeSink(80, 24), halfSource{})
	ref := New(cfg, newFakeSink(80, 24), halfSource{})

	for i := 0; i < 2; i++ {
		if err := l.Step(); err != nil {
			t.Fatal(err)
		}
		ref.Advance()
	}
	if !matApprox(l.Global(), ref.Global()) {
		t.Error("Step did not advance G exactly once per frame")
	}
}

func TestStepResize(t *testing.T) {
	sink := newFakeSink(80, 24)
	l := New(smallConfig(), sink, halfSource{})
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}

	sink.width, sink.height = 40, 10
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	buf := l.Buffer()
	if buf.Width() != 40 || buf.Height() != 10 {
		t.Fatalf("buffer %dx%d after resize, want 40x10", buf.Width(), buf.Height())
	}
	for y := 0; y < 10; y++ {
		if n := len([]rune(buf.Row(y))); n != 40 {
			t.Errorf("row %d has %d cells", y, n)
		}
	}

	// Zero-size surface draws nothing and does not fail
	sink.width, sink.height = 0, 0
	if err := l.Step(); err != nil {
		t.Fatal(err)
	}
	if l.Stats().Plotted != 0 || l.Buffer().Drawn() != 0 {
		t.Errorf("zero-size frame drew %+v", l.Stats())
	}
}

func TestStepSinkErrors(t *testing.T) {
	sizeErr := errors.New("ioctl failed")
	sink := newFakeSink(80, 24)
	sink.sizeErr = sizeErr
	if err := New(smallConfig(), sink, halfSource{}).Step(); !errors.Is(err, sizeErr) {
		t.Errorf("size error = %v, want %v", err, sizeErr)
	}

	flushErr := errors.New("broken pipe")
	sink = newFakeSink(80, 24)
	sink.flushErr = flushErr
	l := New(smallConfig(), sink, halfSource{})
	if err := l.Step(); !errors.Is(err, flushErr) {
		t.Errorf("flush error = %v, want %v", err, flushErr)
	}
	if l.Frames() != 0 {
		t.Errorf("failed frame counted: %d", l.Frames())
	}
}

func TestRunFrameLimit(t *testing.T) {
	sink := newFakeSink(80, 24)
	l := New(smallConfig(), sink, halfSource{})
	l.SetFrameLimit(3)

	if err := l.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if l.Frames() != 3 {
		t.Errorf("Frames = %d, want 3", l.Frames())
	}
	if sink.hidden {
		t.Error("cursor left hidden after Run")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	cfg := smallConfig()
	cfg.Render.FrameDelayMs = int(time.Hour / time.Millisecond)
	sink := newFakeSink(80, 24)
	l := New(cfg, sink, halfSource{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sink.onFlush = func(n int) {
		if n == 1 {
			if !sink.hidden {
				t.Error("cursor visible during frame")
			}
			cancel()
		}
	}

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v on cancellation, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop during the frame delay")
	}
	if l.Frames() != 1 {
		t.Errorf("Frames = %d, want 1", l.Frames())
	}
}

func TestRunCancelledBeforeStart(t *testing.T) {
	sink := newFakeSink(80, 24)
	l := New(smallConfig(), sink, halfSource{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := l.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if l.Frames() != 0 {
		t.Errorf("Frames = %d, want 0", l.Frames())
	}
}

func TestRunSurfacesSinkError(t *testing.T) {
	flushErr := errors.New("write /dev/tty: input/output error")
	sink := newFakeSink(80, 24)
	sink.flushErr = flushErr
	l := New(smallConfig(), sink, halfSource{})

	if err := l.Run(context.Background()); !errors.Is(err, flushErr) {
		t.Errorf("Run error = %v, want %v", err, flushErr)
	}
}

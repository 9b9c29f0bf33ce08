// Package engine runs the frame loop: size, rasterize, present, advance, wait
package engine

import (
	"context"
	"fmt"
	"time"

	"fortio.org/log"

	"github.com/lixenwraith/donut/config"
	"github.com/lixenwraith/donut/render"
	"github.com/lixenwraith/donut/vmath"
)

// Loop owns the global transform and the per-frame pipeline state
// Not safe for concurrent use; Run is the only goroutine touching it
type Loop struct {
	sink   render.Sink
	buffer *render.FrameBuffer
	raster *render.Rasterizer

	// global is G, composed with spin then tumble after every frame
	global vmath.Mat4
	spin   vmath.Mat4
	tumble vmath.Mat4

	caption    string
	delay      time.Duration
	frameLimit uint64

	frames uint64
	width  int
	height int
	stats  render.FrameStats
}

// New creates a loop presenting to sink, dithering with rng
func New(cfg config.Config, sink render.Sink, rng render.Source) *Loop {
	return &Loop{
		sink:    sink,
		buffer:  render.NewFrameBuffer(cfg.Render.Palette, rng),
		raster:  render.NewRasterizer(cfg.Geometry(), cfg.Camera(), cfg.LightDir()),
		global:  vmath.Identity(),
		spin:    vmath.RotationZ(cfg.Rotation.Spin),
		tumble:  vmath.EulerAngles(cfg.Rotation.Roll, cfg.Rotation.Pitch, 0),
		caption: cfg.Render.Caption,
		delay:   cfg.FrameDelay(),
		width:   -1,
		height:  -1,
	}
}

// SetFrameLimit stops Run after n frames; 0 runs until cancelled
func (l *Loop) SetFrameLimit(n uint64) {
	l.frameLimit = n
}

// Frames returns the number of frames presented
func (l *Loop) Frames() uint64 {
	return l.frames
}

func (l *Loop) Global() vmath.Mat4 {
	return l.global
}

// Stats returns the counters of the last drawn frame
func (l *Loop) Stats() render.FrameStats {
	return l.stats
}

func (l *Loop) Buffer() *render.FrameBuffer {
	return l.buffer
}

// Step renders and presents one frame at the sink's current size, then advances G
func (l *Loop) Step() error {
	w, h, err := l.sink.Size()
	if err != nil {
		return fmt.Errorf("query display size: %w", err)
	}
	if w != l.width || h != l.height {
		log.S(log.Info, "display size", log.Attr("width", w), log.Attr("height", h))
		l.width, l.height = w, h
	}

	l.buffer.Reset(w, h)
	l.stats = l.raster.Draw(l.buffer, l.global)

	if err := l.buffer.Present(l.sink, l.caption); err != nil {
		return fmt.Errorf("present frame %d: %w", l.frames, err)
	}
	l.frames++

	log.Debugf("frame %d: samples=%d culled=%d plotted=%d occluded=%d",
		l.frames, l.stats.Samples, l.stats.Culled, l.stats.Plotted, l.stats.Occluded)

	l.Advance()
	return nil
}

// Advance composes the per-frame rotations onto G
func (l *Loop) Advance() {
	l.global = l.global.Mul(l.spin).Mul(l.tumble)
}

// Run hides the cursor and steps frames until ctx is cancelled, the frame limit
// is reached, or the sink fails. Cancellation is a clean stop and returns nil
func (l *Loop) Run(ctx context.Context) error {
	l.sink.HideCursor()
	defer func() {
		l.sink.ShowCursor()
		l.sink.Flush()
	}()

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return nil
		}

		if err := l.Step(); err != nil {
			return err
		}

		if l.frameLimit > 0 && l.frames >= l.frameLimit {
			return nil
		}

		timer.Reset(l.delay)
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
		}
	}
}

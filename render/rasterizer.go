package render

import (
	"github.com/lixenwraith/donut/geometry"
	"github.com/lixenwraith/donut/vmath"
)

// FrameStats counts what happened to the samples of one frame
type FrameStats struct {
	Samples  int // generated
	Culled   int // off-screen, back-facing or unlit
	Plotted  int // won the depth test
	Occluded int // lost the depth test
}

// Rasterizer projects, shades and plots the torus into a FrameBuffer
type Rasterizer struct {
	torus  geometry.Torus
	camera vmath.Vec3F
	light  vmath.Vec3F
}

// NewRasterizer normalizes light; camera is a world-space position
func NewRasterizer(torus geometry.Torus, camera, light vmath.Vec3F) *Rasterizer {
	return &Rasterizer{
		torus:  torus,
		camera: camera,
		light:  vmath.V3FNormalize(light),
	}
}

// Draw renders one frame under the global transform into buf
// buf must already be Reset to the current surface size
func (r *Rasterizer) Draw(buf *FrameBuffer, global vmath.Mat4) FrameStats {
	var stats FrameStats

	width, height := buf.Width(), buf.Height()
	screen, ok := ScreenSpace(width, height, r.camera)
	if !ok {
		return stats
	}

	r.torus.ForEach(func(s geometry.Sample) {
		stats.Samples++

		pWorld := global.TransformPoint(s.Point)
		nWorld := vmath.V3FNormalize(global.TransformVector(s.Normal))
		pScreen := screen.TransformPoint(pWorld)

		light, visible := Shade(pWorld, nWorld, pScreen, width, height, r.camera, r.light)
		if !visible {
			stats.Culled++
			return
		}

		// Independent offsets per axis
		ix := buf.Dither(pScreen.X, width)
		iy := buf.Dither(pScreen.Y, height)
		if buf.Plot(ix, iy, light, pScreen.Z) {
			stats.Plotted++
		} else {
			stats.Occluded++
		}
	})

	return stats
}

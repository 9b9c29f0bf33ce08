package render

import (
	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/vmath"
)

// ScreenSpace composes the world-to-pixel transform for a width x height surface
// Returns false for an empty surface, which has no drawable samples
func ScreenSpace(width, height int, camera vmath.Vec3F) (vmath.Mat4, bool) {
	if width <= 0 || height <= 0 {
		return vmath.Mat4{}, false
	}

	lo, hi := float64(min(width, height)), float64(max(width, height))
	center := vmath.Vec3F{X: 0.5 * float64(width), Y: 0.5 * float64(height)}

	m := vmath.Translation(center).
		Mul(vmath.Scaling(0.5 * lo)).
		Mul(vmath.Perspective(lo/hi, parameter.FieldOfView, parameter.NearPlane, parameter.FarPlane)).
		Mul(vmath.Translation(camera))
	return m, true
}

package render

import (
	"github.com/lixenwraith/donut/parameter"
	"github.com/lixenwraith/donut/vmath"
)

// Lighting computes the reflected-highlight brightness of a surface point
// n, camVec and lightDir are unit vectors; the result is at most parameter.MaxLight
func Lighting(n, camVec, lightDir vmath.Vec3F) float64 {
	a := vmath.V3FDot(n, lightDir)
	if a < 0 {
		a = 0
	}
	r := 2*a*vmath.V3FDot(n, camVec) - vmath.V3FDot(lightDir, camVec)
	light := parameter.DiffuseWeight*a + parameter.SpecularWeight*r*r*r
	if light > parameter.MaxLight {
		return parameter.MaxLight
	}
	return light
}

// BackFacing reports whether a sample is culled by its orientation to the camera
func BackFacing(camVec, n vmath.Vec3F) bool {
	return vmath.V3FDot(camVec, n) > 0
}

// OnScreen reports whether a projected point lies inside a width x height surface
func OnScreen(p vmath.Vec3F, width, height int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < float64(width) && p.Y < float64(height)
}

// Shade runs visibility and lighting for one sample
// Returns the light value and false when the sample is culled
func Shade(pWorld, nWorld, pScreen vmath.Vec3F, width, height int, camera, lightDir vmath.Vec3F) (float64, bool) {
	camVec := vmath.V3FNormalize(vmath.V3FSub(camera, pWorld))
	if !OnScreen(pScreen, width, height) || BackFacing(camVec, nWorld) {
		return 0, false
	}
	light := Lighting(nWorld, camVec, lightDir)
	if light <= 0 {
		return 0, false
	}
	return light, true
}

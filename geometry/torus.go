// Package geometry samples the torus surface on a fixed parametric grid
package geometry

import (
	"math"

	"github.com/lixenwraith/donut/vmath"
)

// Torus is a ring of radius R1 swept by a circle of radius R2
// N1 subdivides the major circle, N2 the minor circle
type Torus struct {
	R1, R2 float64
	N1, N2 int
}

// Sample is one surface point in object space
// Normal is unit length, pointing outward from the tube
type Sample struct {
	I1, I2 int
	Point  vmath.Vec3F
	Normal vmath.Vec3F
}

// Len returns the number of samples per sweep
func (t Torus) Len() int {
	if t.N1 <= 0 || t.N2 <= 0 {
		return 0
	}
	return t.N1 * t.N2
}

// CirclePoint returns the minor circle point at phi2 before revolving
func (t Torus) CirclePoint(phi2 float64) vmath.Vec3F {
	s, c := math.Sincos(phi2)
	return vmath.Vec3F{X: t.R2*c + t.R1, Y: 0, Z: t.R2 * s}
}

// CircleNormal depends only on phi2: the radial direction in the XZ plane
func CircleNormal(phi2 float64) vmath.Vec3F {
	s, c := math.Sincos(phi2)
	return vmath.Vec3F{X: c, Y: 0, Z: s}
}

// ForEach visits the N1xN2 grid, phi1-major and phi2-minor
// The minor circle is revolved about Z by phi1
func (t Torus) ForEach(fn func(s Sample)) {
	if t.Len() == 0 {
		return
	}

	// Minor circle is identical for every phi1, compute once
	points := make([]vmath.Vec3F, t.N2)
	normals := make([]vmath.Vec3F, t.N2)
	for i2 := 0; i2 < t.N2; i2++ {
		phi2 := 2 * math.Pi * float64(i2) / float64(t.N2)
		points[i2] = t.CirclePoint(phi2)
		normals[i2] = CircleNormal(phi2)
	}

	for i1 := 0; i1 < t.N1; i1++ {
		phi1 := 2 * math.Pi * float64(i1) / float64(t.N1)
		rot := vmath.RotationZ(phi1)
		for i2 := 0; i2 < t.N2; i2++ {
			fn(Sample{
				I1:     i1,
				I2:     i2,
				Point:  rot.TransformPoint(points[i2]),
				Normal: rot.TransformVector(normals[i2]),
			})
		}
	}
}

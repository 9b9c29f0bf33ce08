package vmath

import (
	"math"
)

// Mat4 is a row-major 4x4 matrix, m[row][col]
// Points are column vectors: p' = M * p
type Mat4 [4][4]float64

// Identity returns the 4x4 identity matrix
func Identity() Mat4 {
	return Mat4{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// Mul returns m * n
func (m Mat4) Mul(n Mat4) Mat4 {
	var res Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var sum float64
			for k := 0; k < 4; k++ {
				sum += m[i][k] * n[k][j]
			}
			res[i][j] = sum
		}
	}
	return res
}

// Translation returns a matrix translating by v
func Translation(v Vec3F) Mat4 {
	m := Identity()
	m[0][3] = v.X
	m[1][3] = v.Y
	m[2][3] = v.Z
	return m
}

// Scaling returns a uniform scale of x, y and z by s
func Scaling(s float64) Mat4 {
	m := Identity()
	m[0][0] = s
	m[1][1] = s
	m[2][2] = s
	return m
}

// Perspective returns a right-handed OpenGL-style projection
// fovy is the vertical field of view in radians, aspect is width/height
// The homogeneous w of a projected point is -z
func Perspective(aspect, fovy, near, far float64) Mat4 {
	var m Mat4
	f := 1.0 / math.Tan(fovy/2)
	m[0][0] = f / aspect
	m[1][1] = f
	m[2][2] = (far + near) / (near - far)
	m[2][3] = 2 * far * near / (near - far)
	m[3][2] = -1
	return m
}

func RotationX(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{
		{1, 0, 0, 0},
		{0, c, -s, 0},
		{0, s, c, 0},
		{0, 0, 0, 1},
	}
}

func RotationY(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{
		{c, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, c, 0},
		{0, 0, 0, 1},
	}
}

func RotationZ(a float64) Mat4 {
	s, c := math.Sincos(a)
	return Mat4{
		{c, -s, 0, 0},
		{s, c, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
}

// EulerAngles composes Rz(yaw) * Ry(pitch) * Rx(roll)
func EulerAngles(roll, pitch, yaw float64) Mat4 {
	return RotationZ(yaw).Mul(RotationY(pitch)).Mul(RotationX(roll))
}

// TransformPoint applies m to point p including translation and homogeneous divide
// A zero w leaves the coordinates undivided
func (m Mat4) TransformPoint(p Vec3F) Vec3F {
	x := m[0][0]*p.X + m[0][1]*p.Y + m[0][2]*p.Z + m[0][3]
	y := m[1][0]*p.X + m[1][1]*p.Y + m[1][2]*p.Z + m[1][3]
	z := m[2][0]*p.X + m[2][1]*p.Y + m[2][2]*p.Z + m[2][3]
	w := m[3][0]*p.X + m[3][1]*p.Y + m[3][2]*p.Z + m[3][3]
	if w != 0 && w != 1 {
		inv := 1.0 / w
		return Vec3F{x * inv, y * inv, z * inv}
	}
	return Vec3F{x, y, z}
}

// TransformVector applies the linear part of m to v, ignoring translation
func (m Mat4) TransformVector(v Vec3F) Vec3F {
	return Vec3F{
		m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

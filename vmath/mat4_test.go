package vmath

import (
	"math"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func vecApprox(a, b Vec3F) bool {
	return approx(a.X, b.X) && approx(a.Y, b.Y) && approx(a.Z, b.Z)
}

func TestIdentityMul(t *testing.T) {
	m := RotationZ(0.7).Mul(Translation(Vec3F{1, 2, 3}))
	if got := Identity().Mul(m); got != m {
		t.Errorf("I*M = %v, want %v", got, m)
	}
	if got := m.Mul(Identity()); got != m {
		t.Errorf("M*I = %v, want %v", got, m)
	}
}

func TestRotations(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3F
		want Vec3F
	}{
		{"Z quarter turn", RotationZ(math.Pi / 2), Vec3F{1, 0, 0}, Vec3F{0, 1, 0}},
		{"X quarter turn", RotationX(math.Pi / 2), Vec3F{0, 1, 0}, Vec3F{0, 0, 1}},
		{"Y quarter turn", RotationY(math.Pi / 2), Vec3F{0, 0, 1}, Vec3F{1, 0, 0}},
		{"Euler yaw only", EulerAngles(0, 0, math.Pi/2), Vec3F{1, 0, 0}, Vec3F{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.TransformVector(tt.in); !vecApprox(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEulerAnglesOrder(t *testing.T) {
	roll, pitch, yaw := 0.1, -0.05, 0.3
	want := RotationZ(yaw).Mul(RotationY(pitch)).Mul(RotationX(roll))
	got := EulerAngles(roll, pitch, yaw)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if !approx(got[i][j], want[i][j]) {
				t.Fatalf("element [%d][%d] = %f, want %f", i, j, got[i][j], want[i][j])
			}
		}
	}
}

func TestRotationPreservesLength(t *testing.T) {
	m := Identity()
	v := Vec3F{0.3, -1.2, 2.5}
	for i := 0; i < 500; i++ {
		m = m.Mul(RotationZ(0.03)).Mul(EulerAngles(0.1, -0.05, 0))
	}
	got := V3FMag(m.TransformVector(v))
	if math.Abs(got-V3FMag(v)) > 1e-9 {
		t.Errorf("length drifted: %f vs %f", got, V3FMag(v))
	}
}

func TestTranslationAffectsPointsOnly(t *testing.T) {
	m := Translation(Vec3F{1, 2, 3})
	p := m.TransformPoint(Vec3F{1, 1, 1})
	if !vecApprox(p, Vec3F{2, 3, 4}) {
		t.Errorf("point = %v", p)
	}
	v := m.TransformVector(Vec3F{1, 1, 1})
	if !vecApprox(v, Vec3F{1, 1, 1}) {
		t.Errorf("vector = %v", v)
	}
}

func TestPerspectiveDivide(t *testing.T) {
	p := Perspective(1, math.Pi/2, 0.1, 1000)
	// fovy 90 degrees: f = 1, w = -z
	got := p.TransformPoint(Vec3F{2, 1, -2})
	if !approx(got.X, 1) || !approx(got.Y, 0.5) {
		t.Errorf("projected = %v, want x=1 y=0.5", got)
	}
	// Near plane maps to -1, far plane to +1
	if n := p.TransformPoint(Vec3F{0, 0, -0.1}); math.Abs(n.Z+1) > 1e-9 {
		t.Errorf("near z = %f, want -1", n.Z)
	}
	if f := p.TransformPoint(Vec3F{0, 0, -1000}); math.Abs(f.Z-1) > 1e-9 {
		t.Errorf("far z = %f, want 1", f.Z)
	}
}

func TestNormalize(t *testing.T) {
	if got := V3FNormalize(Vec3F{}); got != (Vec3F{}) {
		t.Errorf("zero vector normalized to %v", got)
	}
	n := V3FNormalize(Vec3F{1, 5, -3})
	if !approx(V3FMag(n), 1) {
		t.Errorf("magnitude = %f", V3FMag(n))
	}
	if !approx(V3FDot(n, Vec3F{1, 5, -3}), math.Sqrt(35)) {
		t.Errorf("direction changed: %v", n)
	}
}

func TestFastRandFloat64(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 10000; i++ {
		x := a.Float64()
		if x < 0 || x >= 1 {
			t.Fatalf("Float64 out of range: %f", x)
		}
		if y := b.Float64(); x != y {
			t.Fatalf("same seed diverged at %d", i)
		}
	}

	// Zero seed must not lock the generator at zero
	z := NewFastRand(0)
	if z.Next() == 0 {
		t.Error("zero seed produced zero state")
	}
}

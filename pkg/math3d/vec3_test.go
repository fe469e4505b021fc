package math3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const eps = 1e-9

func TestVec3RotateMatchesMatrix(t *testing.T) {
	points := []Vec3{
		V3(1, 0, 0),
		V3(0, 1, 0),
		V3(0, 0, 1),
		V3(-3.5, 2.25, 7),
	}
	angles := []float64{0, 0.3, -1.2, math.Pi / 2, math.Pi, 4.1}

	for _, p := range points {
		for _, a := range angles {
			assert.True(t, p.RotateX(a).ApproxEqual(RotateX(a).MulVec3(p), eps), "RotateX(%v) of %v", a, p)
			assert.True(t, p.RotateY(a).ApproxEqual(RotateY(a).MulVec3(p), eps), "RotateY(%v) of %v", a, p)
		}
	}
}

func TestVec3RotateInverse(t *testing.T) {
	p := V3(1.5, -2, 4)
	for _, a := range []float64{0.1, 1, -2.7} {
		assert.True(t, p.RotateX(a).RotateX(-a).ApproxEqual(p, eps))
		assert.True(t, p.RotateY(a).RotateY(-a).ApproxEqual(p, eps))
	}
}

func TestVec3RotateYQuarterTurn(t *testing.T) {
	// +Z swings onto +X for a positive quarter turn about Y.
	got := Forward().RotateY(math.Pi / 2)
	assert.True(t, got.ApproxEqual(Right(), eps), "got %v", got)
}

func TestVec3RotatePreservesLength(t *testing.T) {
	p := V3(3, 4, 12)
	assert.InDelta(t, 13.0, p.RotateX(0.7).RotateY(-1.3).Len(), eps)
}

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, 5, 6)

	assert.Equal(t, V3(5, 7, 9), a.Add(b))
	assert.Equal(t, V3(-3, -3, -3), a.Sub(b))
	assert.Equal(t, V3(2, 4, 6), a.Scale(2))
	assert.Equal(t, 32.0, a.Dot(b))
	assert.Equal(t, V3(-3, 6, -3), a.Cross(b))
	assert.Equal(t, V3(-1, -2, -3), a.Negate())
	assert.Equal(t, V3(1, 2, 3), a.Min(b))
	assert.Equal(t, V3(4, 5, 6), a.Max(b))
	assert.Equal(t, Vec3{}, Zero3().Normalize())
	assert.InDelta(t, 1.0, b.Normalize().Len(), eps)
	assert.InDelta(t, math.Sqrt(27), a.Distance(b), eps)
}

func TestMat4ComposeMatchesVec3(t *testing.T) {
	// Matrices apply right to left: scale, rotate X, rotate Y, translate.
	m := Translate(V3(1, -2, 3)).Mul(RotateY(0.4)).Mul(RotateX(-0.9)).Mul(ScaleUniform(2))
	p := V3(0.25, 7, -3)

	want := p.Scale(2).RotateX(-0.9).RotateY(0.4).Add(V3(1, -2, 3))
	got := m.MulVec3(p)
	assert.True(t, got.ApproxEqual(want, eps), "got %v want %v", got, want)
}

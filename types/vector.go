package types

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// Vec3 is a 3 component float32 vector. It shares the memory layout of
// golang.org/x/image/math/f32.Vec3 so it interoperates with anything that
// already speaks that type.
type Vec3 f32.Vec3

const floatCmpEpsilon float32 = 1e-6

// XYZ builds a vector from its components.
func XYZ(x, y, z float32) Vec3 {
	return Vec3{x, y, z}
}

// Add adds a vector.
func (v Vec3) Add(v2 Vec3) Vec3 {
	return Vec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Sub subtracts a vector.
func (v Vec3) Sub(v2 Vec3) Vec3 {
	return Vec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Mul multiplies the vector with a scalar.
func (v Vec3) Mul(s float32) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// MulVec multiplies two vectors component-wise (e.g. ρ·radiosity).
func (v Vec3) MulVec(v2 Vec3) Vec3 {
	return Vec3{v[0] * v2[0], v[1] * v2[1], v[2] * v2[2]}
}

// Dot calculates the dot product of two vectors.
func (v Vec3) Dot(v2 Vec3) float32 {
	return v[0]*v2[0] + v[1]*v2[1] + v[2]*v2[2]
}

// Cross calculates the cross product of two vectors.
func (v Vec3) Cross(v2 Vec3) Vec3 {
	return Vec3{v[1]*v2[2] - v[2]*v2[1], v[2]*v2[0] - v[0]*v2[2], v[0]*v2[1] - v[1]*v2[0]}
}

// Len returns the vector length.
func (v Vec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize returns a unit-length copy of the vector, or the zero vector if
// its length is too small to normalize reliably.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l < floatCmpEpsilon {
		return Vec3{}
	}
	inv := 1.0 / l
	return Vec3{v[0] * inv, v[1] * inv, v[2] * inv}
}

// MaxChannel returns the value of the largest component.
func (v Vec3) MaxChannel() float32 {
	m := v[0]
	if v[1] > m {
		m = v[1]
	}
	if v[2] > m {
		m = v[2]
	}
	return m
}

// MinVec3 returns the component-wise minimum of two vectors.
func MinVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] < out[0] {
		out[0] = v2[0]
	}
	if v2[1] < out[1] {
		out[1] = v2[1]
	}
	if v2[2] < out[2] {
		out[2] = v2[2]
	}
	return out
}

// MaxVec3 returns the component-wise maximum of two vectors.
func MaxVec3(v1, v2 Vec3) Vec3 {
	out := v1
	if v2[0] > out[0] {
		out[0] = v2[0]
	}
	if v2[1] > out[1] {
		out[1] = v2[1]
	}
	if v2[2] > out[2] {
		out[2] = v2[2]
	}
	return out
}

// Vec2 is a 2 component float32 vector, used for texture/UV coordinates.
type Vec2 f32.Vec2

// XY builds a Vec2 from its components.
func XY(x, y float32) Vec2 {
	return Vec2{x, y}
}

// Package vector provides the 3D vector math used by all simulation entities.
package vector

import "math"

// Vec3 represents a 3D vector. It is a value type: all operations return a
// new vector and never mutate the receiver.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns the component-wise sum of two vectors.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns the component-wise difference of two vectors.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale multiplies all components by a scalar.
func (v Vec3) Scale(scalar float64) Vec3 {
	return Vec3{X: v.X * scalar, Y: v.Y * scalar, Z: v.Z * scalar}
}

// Div divides all components by a scalar. Division by zero yields the zero
// vector so downstream motion math stays well-defined at singular inputs.
func (v Vec3) Div(scalar float64) Vec3 {
	if scalar == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / scalar, Y: v.Y / scalar, Z: v.Z / scalar}
}

// Magnitude returns the Euclidean length of the vector.
func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector in the direction of v. The zero vector
// normalizes to the zero vector.
func (v Vec3) Normalize() Vec3 {
	mag := v.Magnitude()
	if mag == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / mag, Y: v.Y / mag, Z: v.Z / mag}
}

// Dot returns the dot product of two vectors.
func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// DistanceTo returns the Euclidean distance between two points.
func (v Vec3) DistanceTo(other Vec3) float64 {
	return v.Sub(other).Magnitude()
}

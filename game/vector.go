package game

import "math"

// Vector is a world-space position or direction
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vec builds a Vector
func Vec(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{v.X * s, v.Y * s, v.Z * s}
}

func (v Vector) Dot(o Vector) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

func (v Vector) LengthSqr() float64 {
	return v.Dot(v)
}

func (v Vector) Length() float64 {
	return math.Sqrt(v.LengthSqr())
}

// DistTo returns the straight-line distance to o
func (v Vector) DistTo(o Vector) float64 {
	return v.Sub(o).Length()
}

// DistToSqr returns the squared distance to o
func (v Vector) DistToSqr(o Vector) float64 {
	return v.Sub(o).LengthSqr()
}

// Normalized returns the unit vector and the original length.
// A zero vector stays zero.
func (v Vector) Normalized() (Vector, float64) {
	l := v.Length()
	if l == 0 {
		return Vector{}, 0
	}
	return v.Scale(1 / l), l
}

// IsZero reports whether every component is zero
func (v Vector) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

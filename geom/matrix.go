package geom

import (
	"errors"
	"math"
)

// Matrix is a 2x3 affine transform using the SVG convention:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix{1, 0, 0, 1, 0, 0}

// Mult returns a * b; b is applied first.
func (a Matrix) Mult(b Matrix) Matrix {
	return Matrix{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate appends a translation to the transform.
func (a Matrix) Translate(x, y float64) Matrix {
	return a.Mult(Matrix{1, 0, 0, 1, x, y})
}

// Scale appends a scale to the transform.
func (a Matrix) Scale(x, y float64) Matrix {
	return a.Mult(Matrix{x, 0, 0, y, 0, 0})
}

// Rotate appends a rotation of rad radians about the origin.
func (a Matrix) Rotate(rad float64) Matrix {
	sin, cos := math.Sin(rad), math.Cos(rad)
	return a.Mult(Matrix{cos, sin, -sin, cos, 0, 0})
}

// SkewX appends an x-axis skew of rad radians.
func (a Matrix) SkewX(rad float64) Matrix {
	return a.Mult(Matrix{1, 0, math.Tan(rad), 1, 0, 0})
}

// SkewY appends a y-axis skew of rad radians.
func (a Matrix) SkewY(rad float64) Matrix {
	return a.Mult(Matrix{1, math.Tan(rad), 0, 1, 0, 0})
}

func (a Matrix) TransformPoint(p Point) Point {
	return Point{a.A*p.X + a.C*p.Y + a.E, a.B*p.X + a.D*p.Y + a.F}
}

// TransformVector applies the transform without its translation part.
func (a Matrix) TransformVector(p Point) Point {
	return Point{a.A*p.X + a.C*p.Y, a.B*p.X + a.D*p.Y}
}

var errSingular = errors.New("geom: matrix is not invertible")

// Invert returns the inverse transform, or an error for a singular matrix.
func (a Matrix) Invert() (Matrix, error) {
	det := a.A*a.D - a.B*a.C
	if math.Abs(det) < 1e-15 {
		return Matrix{}, errSingular
	}
	return Matrix{
		A: a.D / det,
		B: -a.B / det,
		C: -a.C / det,
		D: a.A / det,
		E: (a.C*a.F - a.D*a.E) / det,
		F: (a.B*a.E - a.A*a.F) / det,
	}, nil
}

package canvas

import "math"

// Matrix is a 2D affine transformation in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// which maps a point as
//
//	x' = A*x + B*y + C
//	y' = D*x + E*y + F
type Matrix struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transformation matrix.
func Identity() Matrix {
	return Matrix{A: 1, E: 1}
}

// Translation creates a translation matrix.
func Translation(x, y float64) Matrix {
	return Matrix{A: 1, C: x, E: 1, F: y}
}

// Rotation creates a rotation matrix. In image coordinates (y down) a
// positive angle turns clockwise.
func Rotation(radians float64) Matrix {
	sin, cos := math.Sincos(radians)
	return Matrix{
		A: cos, B: -sin,
		D: sin, E: cos,
	}
}

// Shearing creates a shear matrix: x' = x + shx*y, y' = shy*x + y.
func Shearing(shx, shy float64) Matrix {
	return Matrix{A: 1, B: shx, D: shy, E: 1}
}

// Multiply returns m * other. The result applies other first, then m.
func (m Matrix) Multiply(other Matrix) Matrix {
	return Matrix{
		A: m.A*other.A + m.B*other.D,
		B: m.A*other.B + m.B*other.E,
		C: m.A*other.C + m.B*other.F + m.C,
		D: m.D*other.A + m.E*other.D,
		E: m.D*other.B + m.E*other.E,
		F: m.D*other.C + m.E*other.F + m.F,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return m.A*x + m.B*y + m.C, m.D*x + m.E*y + m.F
}

// IsIdentity reports whether m is the identity transform.
func (m Matrix) IsIdentity() bool {
	return m == Identity()
}

// Determinant returns the determinant of the linear part.
func (m Matrix) Determinant() float64 {
	return m.A*m.E - m.B*m.D
}

// decomposition expresses m as Translate(tx,ty) * Rotate(theta) *
// Shear(k,0) * Scale(sx,sy), the order in which a gg context has to be
// driven to reproduce m. ok is false for singular matrices.
type decomposition struct {
	tx, ty float64
	theta  float64
	k      float64
	sx, sy float64
}

func (m Matrix) decompose() (decomposition, bool) {
	if math.Abs(m.Determinant()) < 1e-12 {
		return decomposition{}, false
	}
	sx := math.Hypot(m.A, m.D)
	theta := math.Atan2(m.D, m.A)
	sin, cos := math.Sincos(theta)

	// R(-theta) * L is upper triangular: [[sx, u12], [0, sy]].
	u12 := cos*m.B + sin*m.E
	sy := -sin*m.B + cos*m.E
	return decomposition{
		tx: m.C, ty: m.F,
		theta: theta,
		k:     u12 / sy,
		sx:    sx, sy: sy,
	}, true
}

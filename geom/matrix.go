/*
DESCRIPTION
  matrix.go provides the 2D affine matrix used to position sprites and
  shapes during a render walk.

AUTHORS
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package geom provides the affine, color and box algebra for sprite
// rendering.
package geom

// Matrix is a row-major 2D affine transformation
//
//	| m11 m12 |
//	| m21 m22 |
//	| m31 m32 |
//
// applied to row vectors: (x, y) maps to
// (x*m11 + y*m21 + m31, x*m12 + y*m22 + m32).
type Matrix struct {
	M11, M12 float64
	M21, M22 float64
	M31, M32 float64
}

// Identity returns the identity matrix.
func Identity() Matrix { return Matrix{M11: 1, M22: 1} }

// Translate returns a translation matrix.
func Translate(x, y float64) Matrix { return Matrix{M11: 1, M22: 1, M31: x, M32: y} }

// Scale returns a scaling matrix.
func Scale(x, y float64) Matrix { return Matrix{M11: x, M22: y} }

// Rotate returns a rotation matrix from the four floats stored in a
// transform table. The values are the matrix cells themselves, not an
// angle.
func Rotate(x0, y0, x1, y1 float64) Matrix { return Matrix{M11: x0, M12: y0, M21: x1, M22: y1} }

// Mul returns m applied before b, so a point is transformed by m and the
// result by b.
func (m Matrix) Mul(b Matrix) Matrix {
	return Matrix{
		M11: m.M11*b.M11 + m.M12*b.M21,
		M12: m.M11*b.M12 + m.M12*b.M22,
		M21: m.M21*b.M11 + m.M22*b.M21,
		M22: m.M21*b.M12 + m.M22*b.M22,
		M31: m.M31*b.M11 + m.M32*b.M21 + b.M31,
		M32: m.M31*b.M12 + m.M32*b.M22 + b.M32,
	}
}

// Apply transforms the point (x, y).
func (m Matrix) Apply(x, y float64) (float64, float64) {
	return x*m.M11 + y*m.M21 + m.M31, x*m.M12 + y*m.M22 + m.M32
}

// Invert returns the inverse transformation and whether the matrix is
// invertible.
func (m Matrix) Invert() (Matrix, bool) {
	det := m.M11*m.M22 - m.M12*m.M21
	if det == 0 {
		return Matrix{}, false
	}
	inv := Matrix{
		M11: m.M22 / det,
		M12: -m.M12 / det,
		M21: -m.M21 / det,
		M22: m.M11 / det,
	}
	inv.M31, inv.M32 = -(m.M31*inv.M11 + m.M32*inv.M21), -(m.M31*inv.M12 + m.M32*inv.M22)
	return inv, true
}

// OuterBox transforms all four corners of b and returns their axis-aligned
// bounding box.
func (m Matrix) OuterBox(b Box) Box {
	x0, y0 := m.Apply(b.MinX, b.MinY)
	x1, y1 := m.Apply(b.MaxX, b.MinY)
	x2, y2 := m.Apply(b.MinX, b.MaxY)
	x3, y3 := m.Apply(b.MaxX, b.MaxY)
	return Box{
		MinX: min4(x0, x1, x2, x3),
		MinY: min4(y0, y1, y2, y3),
		MaxX: max4(x0, x1, x2, x3),
		MaxY: max4(y0, y1, y2, y3),
	}
}

func min4(a, b, c, d float64) float64 { return min(min(a, b), min(c, d)) }
func max4(a, b, c, d float64) float64 { return max(max(a, b), max(c, d)) }

/*
DESCRIPTION
  color.go provides the tagged color transform applied along a render walk:
  component-wise multiplies, adds, and combinations of the two.

AUTHORS
  Dan Kortschak <dan@ausocean.org>
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package geom

// Color is an RGBA value with unclamped float components.
type Color struct {
	R, G, B, A float64
}

// White is the color fold seed.
var White = Color{R: 1, G: 1, B: 1, A: 1}

// Grayscale reports whether all four components are equal.
func (c Color) Grayscale() bool {
	return c.R == c.G && c.G == c.B && c.B == c.A
}

// ColorTransform is the sum of color transform variants: Multiply, Add,
// and Combined pairs of the two.
type ColorTransform interface {
	// Fold applies the transform to c.
	Fold(c Color) Color
}

// Multiply scales each component of a color.
type Multiply Color

// Add offsets each component of a color.
type Add Color

// Combined is a pair of color transforms folded inner-first: the right
// transform applies to the seed, the left to its result.
type Combined struct {
	Left, Right ColorTransform
}

func (m Multiply) Fold(c Color) Color {
	return Color{R: c.R * m.R, G: c.G * m.G, B: c.B * m.B, A: c.A * m.A}
}

func (a Add) Fold(c Color) Color {
	return Color{R: c.R + a.R, G: c.G + a.G, B: c.B + a.B, A: c.A + a.A}
}

func (p Combined) Fold(c Color) Color {
	return p.Left.Fold(p.Right.Fold(c))
}

// Combine combines two color transforms. Kind-homogeneous pairs collapse
// eagerly, which keeps chains from growing across deep sprite nests; any
// other pair is kept as a Combined node.
func Combine(a, b ColorTransform) ColorTransform {
	switch a := a.(type) {
	case Multiply:
		if b, ok := b.(Multiply); ok {
			return Multiply{R: a.R * b.R, G: a.G * b.G, B: a.B * b.B, A: a.A * b.A}
		}
	case Add:
		if b, ok := b.(Add); ok {
			return Add{R: a.R + b.R, G: a.G + b.G, B: a.B + b.B, A: a.A + b.A}
		}
	}
	return Combined{Left: a, Right: b}
}

// IntoColor folds the transform over the white seed.
func IntoColor(t ColorTransform) Color {
	return t.Fold(White)
}

/*
DESCRIPTION
  geom_test.go provides testing for the matrix, color and box algebra.

AUTHORS
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func matrixEqual(a, b Matrix, tol float64) bool {
	pairs := [][2]float64{
		{a.M11, b.M11}, {a.M12, b.M12},
		{a.M21, b.M21}, {a.M22, b.M22},
		{a.M31, b.M31}, {a.M32, b.M32},
	}
	for _, p := range pairs {
		if !scalar.EqualWithinAbs(p[0], p[1], tol) {
			return false
		}
	}
	return true
}

// TestMatrixIdentity checks the identity is a left and right unit for
// multiplication.
func TestMatrixIdentity(t *testing.T) {
	tests := []Matrix{
		Identity(),
		Translate(3, -4),
		Scale(2, 0.5),
		Rotate(0, 1, -1, 0),
		Rotate(0.5, 0.25, -0.25, 0.5).Mul(Translate(10, 20)),
	}
	for i, m := range tests {
		if got := Identity().Mul(m); !matrixEqual(got, m, tol) {
			t.Errorf("did not get expected result for test: %v.\n Got: %v\n Want: %v\n", i, got, m)
		}
		if got := m.Mul(Identity()); !matrixEqual(got, m, tol) {
			t.Errorf("did not get expected result for test: %v.\n Got: %v\n Want: %v\n", i, got, m)
		}
	}
}

// TestMatrixAssociative checks multiplication associativity within float
// tolerance.
func TestMatrixAssociative(t *testing.T) {
	a := Rotate(0.8, 0.6, -0.6, 0.8).Mul(Translate(5, 7))
	b := Scale(2, 3)
	c := Translate(-1, 4).Mul(Rotate(0, 1, -1, 0))

	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	if !matrixEqual(left, right, 1e-9) {
		t.Errorf("did not get expected result.\n Got: %v\n Want: %v\n", left, right)
	}
}

// TestMatrixApply checks the point mapping formula.
func TestMatrixApply(t *testing.T) {
	m := Matrix{M11: 1, M12: 2, M21: 3, M22: 4, M31: 5, M32: 6}
	x, y := m.Apply(10, 100)
	if x != 10*1+100*3+5 || y != 10*2+100*4+6 {
		t.Errorf("did not get expected result. Got: (%v, %v)", x, y)
	}
}

// TestMatrixInvert checks that a matrix composed with its inverse maps
// points back to themselves.
func TestMatrixInvert(t *testing.T) {
	m := Rotate(0.8, 0.6, -0.6, 0.8).Mul(Translate(5, -3)).Mul(Scale(2, 2))
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("expected matrix to be invertible")
	}
	x, y := 3.5, -7.25
	tx, ty := m.Apply(x, y)
	gx, gy := inv.Apply(tx, ty)
	if !scalar.EqualWithinAbs(gx, x, tol) || !scalar.EqualWithinAbs(gy, y, tol) {
		t.Errorf("did not get expected result. Got: (%v, %v) Want: (%v, %v)", gx, gy, x, y)
	}

	if _, ok := Scale(0, 1).Invert(); ok {
		t.Error("expected singular matrix to report non-invertible")
	}
}

// TestColorMultiplyUnit checks Multiply(white) folds to the input.
func TestColorMultiplyUnit(t *testing.T) {
	tests := []Color{
		{R: 1, G: 1, B: 1, A: 1},
		{R: 0.25, G: 0.5, B: 0.75, A: 0.1},
		{R: 0, G: 0, B: 0, A: 0},
	}
	for i, c := range tests {
		got := Multiply(White).Fold(c)
		if got != c {
			t.Errorf("did not get expected result for test: %v.\n Got: %v\n Want: %v\n", i, got, c)
		}
	}
}

// TestColorAddUnit checks Add(zero) folds to the input.
func TestColorAddUnit(t *testing.T) {
	tests := []Color{
		{R: 1, G: 1, B: 1, A: 1},
		{R: 0.25, G: 0.5, B: 0.75, A: 0.1},
	}
	for i, c := range tests {
		got := Add{}.Fold(c)
		if got != c {
			t.Errorf("did not get expected result for test: %v.\n Got: %v\n Want: %v\n", i, got, c)
		}
	}
}

// TestColorCombine checks the kind-homogeneous collapses and the
// inner-first folding of mixed pairs.
func TestColorCombine(t *testing.T) {
	m1 := Multiply{R: 0.5, G: 0.5, B: 0.5, A: 1}
	m2 := Multiply{R: 0.5, G: 1, B: 2, A: 0.5}
	if got, want := Combine(m1, m2), (Multiply{R: 0.25, G: 0.5, B: 1, A: 0.5}); got != want {
		t.Errorf("did not get expected result.\n Got: %v\n Want: %v\n", got, want)
	}

	// Components are exactly representable so the sums compare exactly.
	a1 := Add{R: 0.125, G: 0.25, B: 0.375, A: 0}
	a2 := Add{R: 0.125, G: 0.125, B: 0.125, A: 0.5}
	if got, want := Combine(a1, a2), (Add{R: 0.25, G: 0.375, B: 0.5, A: 0.5}); got != want {
		t.Errorf("did not get expected result.\n Got: %v\n Want: %v\n", got, want)
	}

	// Mixed pair keeps a Combined node folded inner-first:
	// left.Fold(right.Fold(seed)).
	mixed := Combine(m1, a1)
	p, ok := mixed.(Combined)
	if !ok {
		t.Fatalf("did not get expected variant. Got: %T Want: Combined", mixed)
	}
	got := p.Fold(White)
	want := m1.Fold(a1.Fold(White))
	if got != want {
		t.Errorf("did not get expected result.\n Got: %v\n Want: %v\n", got, want)
	}
}

// TestIntoColor checks the fold seed is white.
func TestIntoColor(t *testing.T) {
	got := IntoColor(Multiply{R: 0.5, G: 0.25, B: 1, A: 0.75})
	want := Color{R: 0.5, G: 0.25, B: 1, A: 0.75}
	if got != want {
		t.Errorf("did not get expected result.\n Got: %v\n Want: %v\n", got, want)
	}
}

// TestBoxUnion checks union laws: commutative, idempotent, and identity
// with the empty box.
func TestBoxUnion(t *testing.T) {
	a := Rect(0, 0, 10, 10)
	b := Rect(5, -5, 10, 10)

	if diff := cmp.Diff(a.Union(b), b.Union(a)); diff != "" {
		t.Errorf("union not commutative (-a.Union(b) +b.Union(a)):\n%s", diff)
	}
	if diff := cmp.Diff(a, a.Union(a)); diff != "" {
		t.Errorf("union not idempotent (-want +got):\n%s", diff)
	}
	var empty Box
	if diff := cmp.Diff(a, a.Union(empty)); diff != "" {
		t.Errorf("union with empty not identity (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(a, empty.Union(a)); diff != "" {
		t.Errorf("union with empty not identity (-want +got):\n%s", diff)
	}
}

// TestBoxEmpty checks the emptiness predicate.
func TestBoxEmpty(t *testing.T) {
	tests := []struct {
		box  Box
		want bool
	}{
		{Box{}, true},
		{Rect(0, 0, 1, 1), false},
		{Box{MinX: 0, MinY: 0, MaxX: 1, MaxY: 0}, true},
		{Box{MinX: 2, MinY: 0, MaxX: 1, MaxY: 5}, true},
	}
	for i, test := range tests {
		if got := test.box.Empty(); got != test.want {
			t.Errorf("did not get expected result for test: %v. Got: %v Want: %v", i, got, test.want)
		}
	}
}

// TestBoxInflate checks symmetric expansion.
func TestBoxInflate(t *testing.T) {
	got := Rect(0, 0, 10, 10).Inflate(16, 4)
	want := Box{MinX: -16, MinY: -4, MaxX: 26, MaxY: 14}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("did not get expected result (-want +got):\n%s", diff)
	}
}

// TestOuterBox checks corner transformation under rotation.
func TestOuterBox(t *testing.T) {
	// Quarter turn about the origin.
	m := Rotate(0, 1, -1, 0)
	got := m.OuterBox(Rect(0, 0, 10, 4))
	want := Box{MinX: -4, MinY: 0, MaxX: 0, MaxY: 10}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("did not get expected result (-want +got):\n%s", diff)
	}
}

// TestSpriteTransformCombine checks field-independent combination with the
// receiver on the left.
func TestSpriteTransformCombine(t *testing.T) {
	child := SpriteTransform{Position: Translate(1, 2), Color: Multiply{R: 0.5, G: 0.5, B: 0.5, A: 0.5}}
	parent := SpriteTransform{Position: Scale(2, 2), Color: Multiply(White)}

	got := child.Combine(parent)
	if !matrixEqual(got.Position, Translate(1, 2).Mul(Scale(2, 2)), tol) {
		t.Errorf("did not get expected position: %v", got.Position)
	}
	// Translation applied before the scale: the offset is scaled.
	x, y := got.Position.Apply(0, 0)
	if x != 2 || y != 4 {
		t.Errorf("did not get expected mapped origin. Got: (%v, %v) Want: (2, 4)", x, y)
	}
	if c := IntoColor(got.Color); c != (Color{R: 0.5, G: 0.5, B: 0.5, A: 0.5}) {
		t.Errorf("did not get expected color: %v", c)
	}
}

/*
DESCRIPTION
  transform.go pairs an affine matrix with a color transform, the unit of
  composition along a render walk.

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

// SpriteTransform pairs a position matrix and a color transform.
type SpriteTransform struct {
	Position Matrix
	Color    ColorTransform
}

// IdentityTransform returns the do-nothing sprite transform.
func IdentityTransform() SpriteTransform {
	return SpriteTransform{Position: Identity(), Color: Multiply(White)}
}

// Combine combines each field independently, with the receiver on the
// left.
func (t SpriteTransform) Combine(o SpriteTransform) SpriteTransform {
	return SpriteTransform{
		Position: t.Position.Mul(o.Position),
		Color:    Combine(t.Color, o.Color),
	}
}

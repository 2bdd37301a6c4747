/*
DESCRIPTION
  box.go provides an axis-aligned box with the union and inflation
  operations used by the render measurer.

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

// Box is an axis-aligned box. The zero Box is empty.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// Rect returns the box with origin (x, y) and the given extent.
func Rect(x, y, w, h float64) Box {
	return Box{MinX: x, MinY: y, MaxX: x + w, MaxY: y + h}
}

// Empty reports whether the box contains no area.
func (b Box) Empty() bool {
	return !(b.MaxX > b.MinX && b.MaxY > b.MinY)
}

// Union returns the smallest box containing both boxes. Union with an
// empty box returns the other box.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Box{
		MinX: min(b.MinX, o.MinX),
		MinY: min(b.MinY, o.MinY),
		MaxX: max(b.MaxX, o.MaxX),
		MaxY: max(b.MaxY, o.MaxY),
	}
}

// Inflate expands the box by w on x and h on y, on both sides.
func (b Box) Inflate(w, h float64) Box {
	return Box{MinX: b.MinX - w, MinY: b.MinY - h, MaxX: b.MaxX + w, MaxY: b.MaxY + h}
}

// Width returns the x extent of the box.
func (b Box) Width() float64 { return b.MaxX - b.MinX }

// Height returns the y extent of the box.
func (b Box) Height() float64 { return b.MaxY - b.MinY }

// CenterX returns the x coordinate of the box centre.
func (b Box) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }

// CenterY returns the y coordinate of the box centre.
func (b Box) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

/*
NAME
  raster.go

DESCRIPTION
  raster.go provides the rasterising blit sink: atlas sub-rectangles are
  transformed and alpha-blended onto an RGBA canvas, with a multiply tint
  pass for non-grayscale color folds.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package render

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/ausocean/anm/container/anm"
	"github.com/ausocean/anm/geom"
)

// rasterSink blits atlas sub-rectangles onto a canvas.
type rasterSink struct {
	canvas *image.RGBA
	atlas  *image.RGBA
}

// aff3 converts a row-vector matrix to the column form x/image expects.
func aff3(m geom.Matrix) f64.Aff3 {
	return f64.Aff3{m.M11, m.M21, m.M31, m.M12, m.M22, m.M32}
}

// DrawShape implements Sink. The destination rectangle negates and offsets
// y so that shape offsets, which are y-up, land on the y-down canvas; the
// post-flip undoes the handedness for the blit itself.
func (s *rasterSink) DrawShape(sh *anm.Shape, t geom.SpriteTransform) error {
	texW := float64(s.atlas.Bounds().Dx())
	texH := float64(s.atlas.Bounds().Dy())

	// Source crop in atlas pixels.
	cx := float64(sh.Left) * texW
	cy := float64(sh.Top) * texH
	cw := (float64(sh.Right) - float64(sh.Left)) * texW
	ch := (float64(sh.Bottom) - float64(sh.Top)) * texH
	if cw <= 0 || ch <= 0 {
		return nil
	}
	sr := image.Rect(int(cx), int(cy), int(math.Ceil(cx+cw)), int(math.Ceil(cy+ch)))

	// Destination rectangle in sprite-local space.
	w := float64(sh.Width)
	h := float64(sh.Height)
	dx := float64(sh.OffsetX)
	dy := -(float64(sh.OffsetY) + h)

	// Atlas crop to canvas: rescale the crop into the destination
	// rectangle, flip vertically, then apply the walk's position.
	place := geom.Translate(-cx, -cy).
		Mul(geom.Scale(w/cw, h/ch)).
		Mul(geom.Translate(dx, dy)).
		Mul(geom.Scale(1, -1)).
		Mul(t.Position)

	c := geom.IntoColor(t.Color)
	alpha := math.Min(math.Max(c.A, 0), 1)
	mask := image.NewUniform(color.Alpha{A: uint8(math.Round(alpha * 255))})

	draw.ApproxBiLinear.Transform(s.canvas, aff3(place), s.atlas, sr, draw.Over, &draw.Options{
		SrcMask:  mask,
		SrcMaskP: image.Point{},
	})

	if !c.Grayscale() && c.A != 0 {
		s.tint(geom.Rect(dx, dy, w, h), geom.Scale(1, -1).Mul(t.Position), c)
	}
	return nil
}

// tint multiplies the canvas pixels covered by rect under m with the fold
// color, emulating a multiply composite fill over the destination
// rectangle. Alpha is left untouched.
func (s *rasterSink) tint(rect geom.Box, m geom.Matrix, c geom.Color) {
	inv, ok := m.Invert()
	if !ok {
		return
	}

	outer := m.OuterBox(rect)
	b := s.canvas.Bounds()
	x0 := int(math.Max(math.Floor(outer.MinX), float64(b.Min.X)))
	y0 := int(math.Max(math.Floor(outer.MinY), float64(b.Min.Y)))
	x1 := int(math.Min(math.Ceil(outer.MaxX), float64(b.Max.X)))
	y1 := int(math.Min(math.Ceil(outer.MaxY), float64(b.Max.Y)))

	tr := clampUnit(c.R)
	tg := clampUnit(c.G)
	tb := clampUnit(c.B)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			lx, ly := inv.Apply(float64(x)+0.5, float64(y)+0.5)
			if lx < rect.MinX || lx > rect.MaxX || ly < rect.MinY || ly > rect.MaxY {
				continue
			}
			i := s.canvas.PixOffset(x, y)
			p := s.canvas.Pix[i : i+4 : i+4]
			p[0] = uint8(float64(p[0]) * tr)
			p[1] = uint8(float64(p[1]) * tg)
			p[2] = uint8(float64(p[2]) * tb)
		}
	}
}

func clampUnit(v float64) float64 { return math.Min(math.Max(v, 0), 1) }

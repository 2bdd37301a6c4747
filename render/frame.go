/*
NAME
  frame.go

DESCRIPTION
  frame.go provides the frame-stream interpreter: a positioned reader over
  a sprite's packed opcode buffer that materialises one sprite transform
  per read, resolving table offsets as it goes.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package render

import (
	"github.com/pkg/errors"

	"github.com/ausocean/anm/container/anm"
	"github.com/ausocean/anm/geom"
)

// ErrMissingTransform indicates a frame opcode outside the recognised
// range, or a stream or table exhausted mid-opcode.
var ErrMissingTransform = errors.New("frame stream yielded no transform")

// Opcode component bits. The low four bits of an opcode select which
// transform components follow, read in the order multiply, add, rotation,
// translation and combined left to right.
const (
	opRotation    = 0x1
	opTranslation = 0x2
	opColorMul    = 0x4
	opColorAdd    = 0x8
	opMax         = 0xf
)

// FrameReader reads sprite transforms from a frame stream. Its position is
// intentionally shared and mutated across the recursive render walk; it
// must only be used from a single goroutine.
type FrameReader struct {
	stream anm.FrameStream
	table  *anm.TransformTable
	pos    int
}

// NewFrameReader returns a reader over s positioned at 0. A nil table
// behaves as an empty table.
func NewFrameReader(s anm.FrameStream, t *anm.TransformTable) *FrameReader {
	return &FrameReader{stream: s, table: t}
}

// Seek repositions the reader at element index pos.
func (r *FrameReader) Seek(pos int) { r.pos = pos }

// next consumes one opcode integer from the stream.
func (r *FrameReader) next() (uint32, bool) {
	v, ok := r.stream.At(r.pos)
	if !ok {
		return 0, false
	}
	r.pos++
	return v, true
}

// Read consumes one opcode and its component offsets and returns the
// composed sprite transform.
func (r *FrameReader) Read() (geom.SpriteTransform, error) {
	tag, ok := r.next()
	if !ok {
		return geom.SpriteTransform{}, errors.Wrap(ErrMissingTransform, "stream exhausted")
	}
	if tag > opMax {
		return geom.SpriteTransform{}, errors.Wrapf(ErrMissingTransform, "opcode %d", tag)
	}

	t := geom.IdentityTransform()

	if tag&opColorMul != 0 {
		c, err := r.color()
		if err != nil {
			return geom.SpriteTransform{}, err
		}
		t = t.Combine(geom.SpriteTransform{Position: geom.Identity(), Color: geom.Multiply(c)})
	}
	if tag&opColorAdd != 0 {
		c, err := r.color()
		if err != nil {
			return geom.SpriteTransform{}, err
		}
		t = t.Combine(geom.SpriteTransform{Position: geom.Identity(), Color: geom.Add(c)})
	}
	if tag&opRotation != 0 {
		o, ok := r.next()
		if !ok {
			return geom.SpriteTransform{}, errors.Wrap(ErrMissingTransform, "no rotation offset")
		}
		x0, y0, x1, y1, ok := r.table.Rotation(int(o))
		if !ok {
			return geom.SpriteTransform{}, errors.Wrapf(ErrMissingTransform, "rotation offset %d", o)
		}
		m := geom.Rotate(float64(x0), float64(y0), float64(x1), float64(y1))
		t = t.Combine(geom.SpriteTransform{Position: m, Color: geom.Multiply(geom.White)})
	}
	if tag&opTranslation != 0 {
		o, ok := r.next()
		if !ok {
			return geom.SpriteTransform{}, errors.Wrap(ErrMissingTransform, "no translation offset")
		}
		x, y, ok := r.table.Translation(int(o))
		if !ok {
			return geom.SpriteTransform{}, errors.Wrapf(ErrMissingTransform, "translation offset %d", o)
		}
		m := geom.Translate(float64(x), float64(y))
		t = t.Combine(geom.SpriteTransform{Position: m, Color: geom.Multiply(geom.White)})
	}
	return t, nil
}

// color consumes one offset and reads four color floats from the table.
func (r *FrameReader) color() (geom.Color, error) {
	o, ok := r.next()
	if !ok {
		return geom.Color{}, errors.Wrap(ErrMissingTransform, "no color offset")
	}
	cr, cg, cb, ca, ok := r.table.Color(int(o))
	if !ok {
		return geom.Color{}, errors.Wrapf(ErrMissingTransform, "color offset %d", o)
	}
	return geom.Color{R: float64(cr), G: float64(cg), B: float64(cb), A: float64(ca)}, nil
}

/*
NAME
  walker.go

DESCRIPTION
  walker.go provides the recursive interpreter over sprites and shapes. The
  walk is parameterised by a blit sink, so the same interpreter serves both
  measurement and rasterisation.

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
	"fmt"

	"github.com/pkg/errors"

	"github.com/ausocean/anm/container/anm"
	"github.com/ausocean/anm/geom"
)

// ErrBadFrameIndex indicates a Frames payload whose tables do not cover a
// requested frame.
var ErrBadFrameIndex = errors.New("frame tables out of range")

// UnresolvedIDError is returned when a referenced sprite id resolves in
// none of the current animation, its parent, or the current animation's
// shapes.
type UnresolvedIDError struct {
	ID int16
}

func (e UnresolvedIDError) Error() string {
	return fmt.Sprintf("sprite id %d did not resolve", e.ID)
}

// Sink receives one call per shape reached by a render walk.
type Sink interface {
	DrawShape(s *anm.Shape, t geom.SpriteTransform) error
}

// Walker interprets a sprite graph for one frame, feeding every reached
// shape to its sink. A walker is single use per render pass and single
// threaded: the frame readers it creates are consumed sequentially across
// the recursion.
type Walker struct {
	ref  *Renderer
	sink Sink
}

// NewWalker returns a walker resolving ids against r and blitting to sink.
func NewWalker(r *Renderer, sink Sink) *Walker {
	return &Walker{ref: r, sink: sink}
}

// RenderSprite walks one sprite for the given frame under the given parent
// transform.
func (w *Walker) RenderSprite(s *anm.Sprite, parent geom.SpriteTransform, frame int) error {
	r := NewFrameReader(s.Frames, w.ref.anim.Transform)

	switch p := s.Payload.(type) {
	case anm.Single:
		return w.renderByID(p.SpriteID, parent, r, frame)

	case anm.SingleNoAction:
		return w.renderByID(p.SpriteID, parent, r, frame)

	case anm.SingleFrame:
		// The reader is shared: each child consumes one opcode in turn.
		for _, id := range p.SpriteIDs {
			if err := w.renderByID(id, parent, r, frame); err != nil {
				return err
			}
		}
		return nil

	case anm.Frames:
		fc := p.FrameCount()
		if fc == 0 {
			return nil
		}
		idx := (frame % fc) * p.Mult()
		if idx+1 >= len(p.FramePos) {
			return errors.Wrapf(ErrBadFrameIndex, "frame %d", frame)
		}
		offset := p.FramePos[idx]
		current := p.FramePos[idx+1]
		if current < 0 || int(current) >= len(p.SpriteInfo) {
			return errors.Wrapf(ErrBadFrameIndex, "sprite info index %d", current)
		}
		count := int(p.SpriteInfo[current])
		if count < 0 || int(current)+1+count > len(p.SpriteInfo) {
			return errors.Wrapf(ErrBadFrameIndex, "sprite count %d at %d", count, current)
		}

		r.Seek(int(offset))
		for i := 0; i < count; i++ {
			id := p.SpriteInfo[int(current)+1+i]
			if err := w.renderByID(id, parent, r, frame); err != nil {
				return err
			}
		}
		return nil

	default:
		return errors.Wrapf(anm.ErrBadSpriteTag, "sprite %d", s.ID)
	}
}

// renderByID consumes one transform from the shared reader, composes it
// under parent, and resolves id as a sprite in the current animation, a
// sprite in the parent animation, then a shape in the current animation.
func (w *Walker) renderByID(id int16, parent geom.SpriteTransform, r *FrameReader, frame int) error {
	child, err := r.Read()
	if err != nil {
		return err
	}
	final := child.Combine(parent)

	if sp := w.ref.anim.SpriteByID(id); sp != nil {
		return w.RenderSprite(sp, final, frame)
	}
	if w.ref.parent != nil {
		if sp := w.ref.parent.anim.SpriteByID(id); sp != nil {
			// The sprite belongs to the parent animation, so its frame
			// streams resolve against the parent's transform table.
			pw := Walker{ref: w.ref.parent, sink: w.sink}
			return pw.RenderSprite(sp, final, frame)
		}
	}
	if sh := w.ref.anim.ShapeByID(id); sh != nil {
		return w.sink.DrawShape(sh, final)
	}
	return UnresolvedIDError{ID: id}
}

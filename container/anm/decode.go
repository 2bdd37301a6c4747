/*
NAME
  decode.go

DESCRIPTION
  decode.go provides decoding of an ANM byte buffer into the Animation
  model. Field order follows the stream exactly; optional blocks are gated
  on version flags and per-record flag bytes.

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

package anm

import "github.com/pkg/errors"

// Sprite payload tags.
const (
	tagSingle = iota + 1
	tagSingleNoAction
	tagSingleFrame
	tagFrames
)

// Frame stream tags.
const (
	streamTagBytes  = 1
	streamTagShorts = 2
	streamTagInts   = 4
)

// Decode errors.
var (
	ErrBadSpriteTag = errors.New("unrecognised sprite payload tag")
	ErrBadStreamTag = errors.New("unrecognised frame stream tag")
	ErrShapeExtents = errors.New("shape texture extents out of order")
)

// Decode decodes a complete ANM buffer into an Animation. The returned
// Animation is immutable. Undecoded trailing bytes are recorded in
// Animation.Residual rather than failing the decode.
func Decode(data []byte) (*Animation, error) {
	c := NewCursor(data)
	a := &Animation{}
	var err error

	a.Version, err = c.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "could not read version")
	}

	// A 16 bit word of unknown purpose sits between the version and the
	// frame rate. It is kept on the model rather than interpreted.
	a.Reserved, err = c.Int16()
	if err != nil {
		return nil, errors.Wrap(err, "could not read reserved word")
	}

	a.FrameRate, err = c.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "could not read frame rate")
	}

	if a.HasLocalIndex() {
		a.Index, err = decodeLocalIndex(c)
		if err != nil {
			return nil, errors.Wrap(err, "could not decode local index")
		}
	}

	n, err := c.Uint16()
	if err != nil {
		return nil, errors.Wrap(err, "could not read texture count")
	}
	if n == 1 {
		var t Texture
		t.Name, err = c.String()
		if err != nil {
			return nil, errors.Wrap(err, "could not read texture name")
		}
		t.CRC, err = c.Int32()
		if err != nil {
			return nil, errors.Wrap(err, "could not read texture crc")
		}
		a.Texture = &t
	}

	err = c.ArrayU16(func() error {
		s, err := decodeShape(c)
		if err != nil {
			return err
		}
		a.Shapes = append(a.Shapes, s)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not decode shapes")
	}

	if a.HasTransformIndex() {
		a.Transform, err = decodeTransformTable(c)
		if err != nil {
			return nil, errors.Wrap(err, "could not decode transform table")
		}
	}

	err = c.ArrayU16(func() error {
		s, err := decodeSprite(c)
		if err != nil {
			return err
		}
		a.Sprites = append(a.Sprites, s)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not decode sprites")
	}

	err = c.ArrayU16(func() error {
		var imp Import
		imp.ID, err = c.Int16()
		if err != nil {
			return err
		}
		imp.Name, err = c.String()
		if err != nil {
			return err
		}
		imp.FileIndex, err = c.Int32()
		if err != nil {
			return err
		}
		a.Imports = append(a.Imports, imp)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not decode imports")
	}

	a.Residual = c.Remaining()
	return a, nil
}

// decodeShape reads one shape record, normalizing the texture extents to
// [0,1].
func decodeShape(c *Cursor) (Shape, error) {
	var s Shape
	var err error

	s.ID, err = c.Int16()
	if err != nil {
		return s, err
	}
	s.TextureIndex, err = c.Int32()
	if err != nil {
		return s, err
	}

	for _, dst := range []*float32{&s.Top, &s.Left, &s.Bottom, &s.Right} {
		v, err := c.Uint16()
		if err != nil {
			return s, err
		}
		*dst = float32(v) / coordScale
	}
	if s.Left > s.Right || s.Top > s.Bottom {
		return s, errors.Wrapf(ErrShapeExtents, "shape %d", s.ID)
	}

	s.Width, err = c.Uint16()
	if err != nil {
		return s, err
	}
	s.Height, err = c.Uint16()
	if err != nil {
		return s, err
	}
	s.OffsetX, err = c.Float32()
	if err != nil {
		return s, err
	}
	s.OffsetY, err = c.Float32()
	if err != nil {
		return s, err
	}
	return s, nil
}

// decodeLocalIndex reads the optional index block: a flag byte gating each
// section, always ending in the animation file list.
func decodeLocalIndex(c *Cursor) (*LocalIndex, error) {
	idx := &LocalIndex{}
	var err error

	idx.Flags, err = c.Uint8()
	if err != nil {
		return nil, err
	}

	if idx.Flags&indexFlagScale != 0 {
		v, err := c.Float32()
		if err != nil {
			return nil, err
		}
		idx.Scale = &v
	}
	if idx.Flags&indexFlagRenderRadius != 0 {
		v, err := c.Float32()
		if err != nil {
			return nil, err
		}
		idx.RenderRadius = &v
	}
	if idx.Flags&indexFlagFileNames != 0 {
		idx.FileNames, err = c.StringArrayU16()
		if err != nil {
			return nil, err
		}
	}
	if idx.Flags&indexFlagHiddenBy != 0 {
		idx.PartsHiddenBy, err = c.Int32MapU32()
		if err != nil {
			return nil, err
		}
	}
	if idx.Flags&indexFlagToBeHidden != 0 {
		idx.PartsToBeHidden, err = c.Int32MapU32()
		if err != nil {
			return nil, err
		}
	}
	if idx.Flags&indexFlagExtension != 0 {
		ext, err := c.Uint8()
		if err != nil {
			return nil, err
		}
		if ext&extFlagHeights != 0 {
			idx.Heights = make(map[int32]int8)
			err = c.ArrayU32(func() error {
				k, err := c.Int32()
				if err != nil {
					return err
				}
				v, err := c.Int8()
				if err != nil {
					return err
				}
				// Stored heights carry a domain offset of one.
				idx.Heights[k] = v + 1
				return nil
			})
			if err != nil {
				return nil, err
			}
		}
		if ext&extFlagHighlight != 0 {
			v, err := c.Int32()
			if err != nil {
				return nil, err
			}
			idx.Highlight = &v
		}
	}

	err = c.ArrayU16(func() error {
		var f AnimationFile
		f.Name, err = c.String()
		if err != nil {
			return err
		}
		f.CRC, err = c.Int32()
		if err != nil {
			return err
		}
		f.FileIndex, err = c.Int32()
		if err != nil {
			return err
		}
		idx.AnimationFiles = append(idx.AnimationFiles, f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// decodeTransformTable reads the four count-prefixed arrays: colors,
// rotations, translations and actions.
func decodeTransformTable(c *Cursor) (*TransformTable, error) {
	t := &TransformTable{}
	var err error

	t.Colors, err = c.Float32ArrayU32()
	if err != nil {
		return nil, errors.Wrap(err, "could not read colors")
	}
	t.Rotations, err = c.Float32ArrayU32()
	if err != nil {
		return nil, errors.Wrap(err, "could not read rotations")
	}
	t.Translations, err = c.Float32ArrayU32()
	if err != nil {
		return nil, errors.Wrap(err, "could not read translations")
	}

	err = c.ArrayU32(func() error {
		a, err := decodeAction(c)
		if err != nil {
			return err
		}
		t.Actions = append(t.Actions, a)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "could not read actions")
	}
	return t, nil
}

// decodeSprite reads one sprite record: tag, id, flags, name block,
// tag-selected payload, then the frame stream trailer.
func decodeSprite(c *Cursor) (Sprite, error) {
	var s Sprite
	var err error

	s.Tag, err = c.Int8()
	if err != nil {
		return s, err
	}
	s.ID, err = c.Int16()
	if err != nil {
		return s, err
	}
	s.Flags, err = c.Uint8()
	if err != nil {
		return s, err
	}

	if s.HasName() {
		s.Name, err = c.String()
		if err != nil {
			return s, err
		}
	}
	s.NameCRC, err = c.Int32()
	if err != nil {
		return s, err
	}
	s.BaseNameCRC, err = c.Int32()
	if err != nil {
		return s, err
	}

	s.Payload, err = decodePayload(c, s.Tag)
	if err != nil {
		return s, errors.Wrapf(err, "sprite %d payload", s.ID)
	}

	s.Frames, err = decodeFrameStream(c)
	if err != nil {
		return s, errors.Wrapf(err, "sprite %d frame stream", s.ID)
	}
	return s, nil
}

func decodePayload(c *Cursor, tag int8) (Payload, error) {
	switch tag {
	case tagSingle:
		var p Single
		var err error
		p.SpriteID, err = c.Int16()
		if err != nil {
			return nil, err
		}
		p.ActionInfo, err = c.Int16ArrayU16()
		if err != nil {
			return nil, err
		}
		return p, nil

	case tagSingleNoAction:
		var p SingleNoAction
		var err error
		p.SpriteID, err = c.Int16()
		if err != nil {
			return nil, err
		}
		return p, nil

	case tagSingleFrame:
		var p SingleFrame
		var err error
		p.SpriteIDs, err = c.Int16ArrayU16()
		if err != nil {
			return nil, err
		}
		p.ActionInfo, err = c.Int16ArrayU16()
		if err != nil {
			return nil, err
		}
		return p, nil

	case tagFrames:
		var p Frames
		var err error
		p.FramePos, err = c.Int32ArrayU16()
		if err != nil {
			return nil, err
		}
		p.SpriteInfo, err = c.Int16ArrayU16()
		if err != nil {
			return nil, err
		}
		p.ActionInfo, err = c.Int16ArrayU16()
		if err != nil {
			return nil, err
		}
		return p, nil

	default:
		return nil, errors.Wrapf(ErrBadSpriteTag, "tag %d", tag)
	}
}

func decodeFrameStream(c *Cursor) (FrameStream, error) {
	tag, err := c.Uint8()
	if err != nil {
		return nil, err
	}
	switch tag {
	case streamTagBytes:
		var s ByteStream
		err := c.ArrayU32(func() error {
			v, err := c.Uint8()
			if err != nil {
				return err
			}
			s = append(s, v)
			return nil
		})
		return s, err

	case streamTagShorts:
		var s ShortStream
		err := c.ArrayU32(func() error {
			v, err := c.Uint16()
			if err != nil {
				return err
			}
			s = append(s, v)
			return nil
		})
		return s, err

	case streamTagInts:
		var s IntStream
		err := c.ArrayU32(func() error {
			v, err := c.Uint32()
			if err != nil {
				return err
			}
			s = append(s, v)
			return nil
		})
		return s, err

	default:
		return nil, errors.Wrapf(ErrBadStreamTag, "tag %d", tag)
	}
}

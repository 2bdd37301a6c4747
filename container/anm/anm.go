/*
NAME
  anm.go

DESCRIPTION
  anm.go provides the typed in-memory model for the ANM sprite-animation
  container.

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

// Package anm provides decoding of the ANM sprite-animation binary
// container into a typed, immutable model.
package anm

// Version flag bits.
const (
	VersionUseAtlas       = 0x1
	VersionLocalIndex     = 0x2
	VersionPerfectHitTest = 0x4
	VersionOptimized      = 0x8
	VersionTransformIndex = 0x10
)

// Sprite flag bits.
const spriteFlagHasName = 0x40

// Texture coordinate extents are stored as uint16 fractions of this.
const coordScale = 65535

// Animation is the root aggregate of a decoded ANM file. It is immutable
// after decode.
type Animation struct {
	Version   uint8
	Reserved  int16 // word between version and frame rate, semantics unknown
	FrameRate uint8
	Index     *LocalIndex
	Texture   *Texture
	Shapes    []Shape
	Transform *TransformTable
	Sprites   []Sprite
	Imports   []Import

	// Residual is the number of undecoded bytes left after the last
	// field. Non-zero residue is a warning, not a decode failure.
	Residual int
}

// UsesAtlas reports whether the atlas flag bit is set.
func (a *Animation) UsesAtlas() bool { return a.Version&VersionUseAtlas != 0 }

// HasLocalIndex reports whether the local index flag bit is set.
func (a *Animation) HasLocalIndex() bool { return a.Version&VersionLocalIndex != 0 }

// PerfectHitTest reports whether the perfect hit test flag bit is set.
func (a *Animation) PerfectHitTest() bool { return a.Version&VersionPerfectHitTest != 0 }

// Optimized reports whether the optimized flag bit is set.
func (a *Animation) Optimized() bool { return a.Version&VersionOptimized != 0 }

// HasTransformIndex reports whether the transform index flag bit is set.
func (a *Animation) HasTransformIndex() bool { return a.Version&VersionTransformIndex != 0 }

// SpriteByID returns the sprite with the given id, or nil.
func (a *Animation) SpriteByID(id int16) *Sprite {
	for i := range a.Sprites {
		if a.Sprites[i].ID == id {
			return &a.Sprites[i]
		}
	}
	return nil
}

// ShapeByID returns the shape with the given id, or nil.
func (a *Animation) ShapeByID(id int16) *Shape {
	for i := range a.Shapes {
		if a.Shapes[i].ID == id {
			return &a.Shapes[i]
		}
	}
	return nil
}

// Texture describes the atlas image backing an animation's shapes.
type Texture struct {
	Name string
	CRC  int32
}

// Shape is an atlas sub-rectangle; the leaf of every render. Extents are
// normalized to [0,1] at decode.
type Shape struct {
	ID           int16
	TextureIndex int32
	Top          float32
	Left         float32
	Bottom       float32
	Right        float32
	Width        uint16
	Height       uint16
	OffsetX      float32
	OffsetY      float32
}

// LocalIndex carries the optional per-file index block.
type LocalIndex struct {
	Flags           uint8
	Scale           *float32
	RenderRadius    *float32
	FileNames       []string
	PartsHiddenBy   map[int32]int32
	PartsToBeHidden map[int32]int32
	Heights         map[int32]int8 // values stored incremented by one
	Highlight       *int32
	AnimationFiles  []AnimationFile
}

// LocalIndex flag bits.
const (
	indexFlagScale        = 0x1
	indexFlagRenderRadius = 0x2
	indexFlagFileNames    = 0x4
	indexFlagHiddenBy     = 0x8
	indexFlagToBeHidden   = 0x10
	indexFlagExtension    = 0x20
)

// Extension block flag bits.
const (
	extFlagHeights   = 0x1
	extFlagHighlight = 0x2
)

// AnimationFile names a sibling animation file in the local index.
type AnimationFile struct {
	Name      string
	CRC       int32
	FileIndex int32
}

// TransformTable holds the flat transform arrays referenced by frame
// streams, plus the parsed action list. Elements are addressed by offset,
// never by element index: a rotation offset reads four consecutive floats,
// a translation two, a color four.
type TransformTable struct {
	Colors       []float32
	Rotations    []float32
	Translations []float32
	Actions      []Action
}

// Rotation returns the four rotation floats at offset o.
func (t *TransformTable) Rotation(o int) (x0, y0, x1, y1 float32, ok bool) {
	if t == nil || o < 0 || o+4 > len(t.Rotations) {
		return 0, 0, 0, 0, false
	}
	return t.Rotations[o], t.Rotations[o+1], t.Rotations[o+2], t.Rotations[o+3], true
}

// Translation returns the two translation floats at offset o.
func (t *TransformTable) Translation(o int) (x, y float32, ok bool) {
	if t == nil || o < 0 || o+2 > len(t.Translations) {
		return 0, 0, false
	}
	return t.Translations[o], t.Translations[o+1], true
}

// Color returns the four color floats at offset o.
func (t *TransformTable) Color(o int) (r, g, b, a float32, ok bool) {
	if t == nil || o < 0 || o+4 > len(t.Colors) {
		return 0, 0, 0, 0, false
	}
	return t.Colors[o], t.Colors[o+1], t.Colors[o+2], t.Colors[o+3], true
}

// Sprite is a named, tagged record whose payload references shapes or other
// sprites by id, and whose frame stream encodes per-child transforms.
type Sprite struct {
	Tag         int8
	ID          int16
	Flags       uint8
	Name        string
	NameCRC     int32
	BaseNameCRC int32
	Payload     Payload
	Frames      FrameStream
}

// HasName reports whether the sprite carried a name in the stream.
func (s *Sprite) HasName() bool { return s.Flags&spriteFlagHasName != 0 }

// Payload is the sum of sprite payload variants, selected by the sprite
// tag.
type Payload interface {
	payload()
}

// Single references one sub-sprite with action info. Sprite tag 1.
type Single struct {
	SpriteID   int16
	ActionInfo []int16
}

// SingleNoAction references one sub-sprite. Sprite tag 2.
type SingleNoAction struct {
	SpriteID int16
}

// SingleFrame references a list of sub-sprites rendered in order for every
// frame. Sprite tag 3.
type SingleFrame struct {
	SpriteIDs  []int16
	ActionInfo []int16
}

// Frames is the animated payload: per-frame positions into the frame
// stream and a packed sub-sprite table. Sprite tag 4.
type Frames struct {
	FramePos   []int32
	SpriteInfo []int16
	ActionInfo []int16
}

func (Single) payload()         {}
func (SingleNoAction) payload() {}
func (SingleFrame) payload()    {}
func (Frames) payload()         {}

// Mult is the per-frame stride into FramePos: 2 without action info, 3
// with.
func (f Frames) Mult() int {
	if len(f.ActionInfo) == 0 {
		return 2
	}
	return 3
}

// FrameCount is the number of animation frames encoded by the payload.
func (f Frames) FrameCount() int { return len(f.FramePos) / f.Mult() }

// FrameStream is the packed frame opcode buffer trailing a sprite. The
// variant fixes the width of each opcode integer.
type FrameStream interface {
	// At returns the opcode integer at element index i, widened.
	At(i int) (uint32, bool)
	// Len returns the number of opcode integers in the stream.
	Len() int
}

// ByteStream is a frame stream of 8 bit opcodes. Stream tag 1.
type ByteStream []uint8

// ShortStream is a frame stream of 16 bit opcodes. Stream tag 2.
type ShortStream []uint16

// IntStream is a frame stream of 32 bit opcodes. Stream tag 4.
type IntStream []uint32

func (s ByteStream) At(i int) (uint32, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return uint32(s[i]), true
}
func (s ByteStream) Len() int { return len(s) }

func (s ShortStream) At(i int) (uint32, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return uint32(s[i]), true
}
func (s ShortStream) Len() int { return len(s) }

func (s IntStream) At(i int) (uint32, bool) {
	if i < 0 || i >= len(s) {
		return 0, false
	}
	return s[i], true
}
func (s IntStream) Len() int { return len(s) }

// Import declares an external sprite reference. Imports are preserved for
// downstream consumers and not used on the baseline render path.
type Import struct {
	ID        int16
	Name      string
	FileIndex int32
}

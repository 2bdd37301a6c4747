/*
DESCRIPTION
  cursor.go provides a position-tracked little-endian reader over a byte
  slice, used by the ANM decoder.

AUTHORS
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package anm

import (
	"encoding/binary"
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Cursor read errors.
var (
	ErrTruncated          = errors.New("read past end of buffer")
	ErrUnterminatedString = errors.New("no string terminator before end of buffer")
)

// ANM is little-endian.
var order = binary.LittleEndian

// Cursor is a position-tracked reader over an immutable byte slice. All
// reads advance the position by the natural width of the value read.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor returns a Cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor { return &Cursor{buf: buf} }

// Pos returns the current read position.
func (c *Cursor) Pos() int { return c.pos }

// Len returns the total length of the underlying buffer.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// require checks that n more bytes may be read.
func (c *Cursor) require(n int) error {
	if c.pos+n > len(c.buf) {
		return errors.Wrapf(ErrTruncated, "need %d bytes at offset %d of %d", n, c.pos, len(c.buf))
	}
	return nil
}

func (c *Cursor) Uint8() (uint8, error) {
	if err := c.require(1); err != nil {
		return 0, err
	}
	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

func (c *Cursor) Uint16() (uint16, error) {
	if err := c.require(2); err != nil {
		return 0, err
	}
	v := order.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

func (c *Cursor) Uint32() (uint32, error) {
	if err := c.require(4); err != nil {
		return 0, err
	}
	v := order.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *Cursor) Int8() (int8, error) {
	v, err := c.Uint8()
	return int8(v), err
}

func (c *Cursor) Int16() (int16, error) {
	v, err := c.Uint16()
	return int16(v), err
}

func (c *Cursor) Int32() (int32, error) {
	v, err := c.Uint32()
	return int32(v), err
}

func (c *Cursor) Float32() (float32, error) {
	v, err := c.Uint32()
	return math.Float32frombits(v), err
}

func (c *Cursor) Float64() (float64, error) {
	if err := c.require(8); err != nil {
		return 0, err
	}
	v := order.Uint64(c.buf[c.pos:])
	c.pos += 8
	return math.Float64frombits(v), nil
}

// String reads bytes up to and including a zero terminator and returns the
// bytes before the terminator. Bytes are decoded as Latin-1, one rune per
// byte.
func (c *Cursor) String() (string, error) {
	var b strings.Builder
	for i := c.pos; i < len(c.buf); i++ {
		if c.buf[i] == 0 {
			c.pos = i + 1
			return b.String(), nil
		}
		b.WriteRune(rune(c.buf[i]))
	}
	return "", errors.Wrapf(ErrUnterminatedString, "string starting at offset %d", c.pos)
}

// ArrayU16 reads a uint16 element count and then invokes elem that many
// times. Element readers append to their own destination.
func (c *Cursor) ArrayU16(elem func() error) error {
	n, err := c.Uint16()
	if err != nil {
		return err
	}
	for i := 0; i < int(n); i++ {
		if err := elem(); err != nil {
			return err
		}
	}
	return nil
}

// ArrayU32 is ArrayU16 with a uint32 element count.
func (c *Cursor) ArrayU32(elem func() error) error {
	n, err := c.Uint32()
	if err != nil {
		return err
	}
	for i := 0; i < int(n); i++ {
		if err := elem(); err != nil {
			return err
		}
	}
	return nil
}

// Int16ArrayU16 reads a uint16 count followed by that many int16 values.
func (c *Cursor) Int16ArrayU16() ([]int16, error) {
	var vals []int16
	err := c.ArrayU16(func() error {
		v, err := c.Int16()
		if err != nil {
			return err
		}
		vals = append(vals, v)
		return nil
	})
	return vals, err
}

// Int32ArrayU16 reads a uint16 count followed by that many int32 values.
func (c *Cursor) Int32ArrayU16() ([]int32, error) {
	var vals []int32
	err := c.ArrayU16(func() error {
		v, err := c.Int32()
		if err != nil {
			return err
		}
		vals = append(vals, v)
		return nil
	})
	return vals, err
}

// StringArrayU16 reads a uint16 count followed by that many zero-terminated
// strings.
func (c *Cursor) StringArrayU16() ([]string, error) {
	var vals []string
	err := c.ArrayU16(func() error {
		v, err := c.String()
		if err != nil {
			return err
		}
		vals = append(vals, v)
		return nil
	})
	return vals, err
}

// Float32ArrayU32 reads a uint32 count followed by that many float32 values.
func (c *Cursor) Float32ArrayU32() ([]float32, error) {
	var vals []float32
	err := c.ArrayU32(func() error {
		v, err := c.Float32()
		if err != nil {
			return err
		}
		vals = append(vals, v)
		return nil
	})
	return vals, err
}

// Int32MapU32 reads a uint32 pair count followed by that many int32 key and
// int32 value pairs. Duplicate keys are last-write-wins.
func (c *Cursor) Int32MapU32() (map[int32]int32, error) {
	m := make(map[int32]int32)
	err := c.ArrayU32(func() error {
		k, err := c.Int32()
		if err != nil {
			return err
		}
		v, err := c.Int32()
		if err != nil {
			return err
		}
		m[k] = v
		return nil
	})
	return m, err
}

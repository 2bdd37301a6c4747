/*
DESCRIPTION
  cursor_test.go provides testing for the cursor in cursor.go.

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
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestCursorPrimitives checks that the primitive readers decode
// little-endian values and advance the position by their natural width.
func TestCursorPrimitives(t *testing.T) {
	c := NewCursor([]byte{
		0x2a,                   // u8
		0x34, 0x12,             // u16
		0x78, 0x56, 0x34, 0x12, // u32
		0xff,       // i8
		0xfe, 0xff, // i16
		0x00, 0x00, 0x80, 0x3f, // f32 = 1.0
	})

	if v, err := c.Uint8(); err != nil || v != 0x2a {
		t.Errorf("did not get expected u8. Got: %v, %v Want: 42", v, err)
	}
	if v, err := c.Uint16(); err != nil || v != 0x1234 {
		t.Errorf("did not get expected u16. Got: %v, %v Want: 0x1234", v, err)
	}
	if v, err := c.Uint32(); err != nil || v != 0x12345678 {
		t.Errorf("did not get expected u32. Got: %v, %v Want: 0x12345678", v, err)
	}
	if v, err := c.Int8(); err != nil || v != -1 {
		t.Errorf("did not get expected i8. Got: %v, %v Want: -1", v, err)
	}
	if v, err := c.Int16(); err != nil || v != -2 {
		t.Errorf("did not get expected i16. Got: %v, %v Want: -2", v, err)
	}
	if v, err := c.Float32(); err != nil || v != 1.0 {
		t.Errorf("did not get expected f32. Got: %v, %v Want: 1.0", v, err)
	}
	if c.Remaining() != 0 {
		t.Errorf("did not consume whole buffer, remaining: %v", c.Remaining())
	}
}

// TestCursorFloat64 checks 8 byte float decoding.
func TestCursorFloat64(t *testing.T) {
	b := make([]byte, 8)
	order.PutUint64(b, math.Float64bits(2.5))
	c := NewCursor(b)
	v, err := c.Float64()
	if err != nil || v != 2.5 {
		t.Errorf("did not get expected f64. Got: %v, %v Want: 2.5", v, err)
	}
}

// TestCursorString checks terminated string reads, the position after the
// terminator, and the unterminated failure.
func TestCursorString(t *testing.T) {
	c := NewCursor([]byte{'a', 'b', 'c', 0, 'd', 0})
	s, err := c.String()
	if err != nil || s != "abc" {
		t.Errorf("did not get expected string. Got: %v, %v Want: abc", s, err)
	}
	if c.Pos() != 4 {
		t.Errorf("did not get expected position. Got: %v Want: 4", c.Pos())
	}
	s, err = c.String()
	if err != nil || s != "d" {
		t.Errorf("did not get expected string. Got: %v, %v Want: d", s, err)
	}

	c = NewCursor([]byte{'x', 'y'})
	_, err = c.String()
	if !errors.Is(err, ErrUnterminatedString) {
		t.Errorf("did not get expected error. Got: %v Want: %v", err, ErrUnterminatedString)
	}
}

// TestCursorLatin1 checks that high bytes decode as one rune per byte.
func TestCursorLatin1(t *testing.T) {
	c := NewCursor([]byte{0xe9, 0})
	s, err := c.String()
	if err != nil || s != "é" {
		t.Errorf("did not get expected string. Got: %q, %v Want: %q", s, err, "é")
	}
}

// TestCursorTruncated checks that the unsigned, int16 and float readers
// fail cleanly at end of buffer.
func TestCursorTruncated(t *testing.T) {
	tests := []func(c *Cursor) error{
		func(c *Cursor) error { _, err := c.Uint8(); return err },
		func(c *Cursor) error { _, err := c.Uint16(); return err },
		func(c *Cursor) error { _, err := c.Uint32(); return err },
		func(c *Cursor) error { _, err := c.Int16(); return err },
		func(c *Cursor) error { _, err := c.Float32(); return err },
		func(c *Cursor) error { _, err := c.Float64(); return err },
	}
	for i, read := range tests {
		err := read(NewCursor(nil))
		if !errors.Is(err, ErrTruncated) {
			t.Errorf("did not get expected error for read: %v. Got: %v Want: %v", i, err, ErrTruncated)
		}
	}
}

// TestCursorArrays checks the count-prefixed array helpers.
func TestCursorArrays(t *testing.T) {
	c := NewCursor([]byte{
		0x03, 0x00, // count
		0x01, 0x00, 0xff, 0xff, 0x10, 0x00, // 1, -1, 16
	})
	got, err := c.Int16ArrayU16()
	if err != nil {
		t.Fatalf("could not read array, failed with error: %v", err)
	}
	want := []int16{1, -1, 16}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("did not get expected result (-want +got):\n%s", diff)
	}

	// Truncated element list.
	c = NewCursor([]byte{0x02, 0x00, 0x01, 0x00})
	if _, err := c.Int16ArrayU16(); !errors.Is(err, ErrTruncated) {
		t.Errorf("did not get expected error. Got: %v Want: %v", err, ErrTruncated)
	}
}

// TestCursorMapLastWriteWins checks duplicate map keys resolve to the last
// value in the stream.
func TestCursorMapLastWriteWins(t *testing.T) {
	c := NewCursor([]byte{
		0x02, 0x00, 0x00, 0x00, // pair count
		0x07, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, // 7: 1
		0x07, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, // 7: 2
	})
	got, err := c.Int32MapU32()
	if err != nil {
		t.Fatalf("could not read map, failed with error: %v", err)
	}
	want := map[int32]int32{7: 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("did not get expected result (-want +got):\n%s", diff)
	}
}

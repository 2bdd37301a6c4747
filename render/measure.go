/*
DESCRIPTION
  measure.go provides the measuring blit sink: instead of drawing, it
  accumulates the axis-aligned bound of every shape a walk would blit.

AUTHORS
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
	"github.com/ausocean/anm/container/anm"
	"github.com/ausocean/anm/geom"
)

// Measurer is a Sink that accumulates the outer transformed box of each
// shape reached by a walk.
type Measurer struct {
	box geom.Box
}

// NewMeasurer returns a Measurer with an empty accumulator.
func NewMeasurer() *Measurer { return &Measurer{} }

// DrawShape implements Sink.
func (m *Measurer) DrawShape(s *anm.Shape, t geom.SpriteTransform) error {
	r := geom.Rect(float64(s.OffsetX), float64(s.OffsetY), float64(s.Width), float64(s.Height))
	m.box = m.box.Union(t.Position.OuterBox(r))
	return nil
}

// Box returns the accumulated bound.
func (m *Measurer) Box() geom.Box { return m.box }

/*
DESCRIPTION
  action.go provides the tagged action union parsed from an ANM transform
  table. Actions are preserved for downstream consumers; rendering never
  dispatches them.

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

import "github.com/pkg/errors"

// Action ids as they appear in the stream.
const (
	actionGoTo = iota + 1
	actionGoToStatic
	actionRunScript
	actionGoToRandom
	actionHit
	actionDelete
	actionEnd
	actionGoToIfPrevious
	actionAddParticle
	actionSetRadius
)

// Sentinel name marking the optimized GoToRandom layout.
const optimizedSentinel = "#optimized"

// Action is the sum of parsed action variants.
type Action interface {
	action()
}

// GoTo jumps to a named animation, optionally at a percentage.
type GoTo struct {
	Name    string
	Percent *uint8
}

// GoToStatic jumps to the static animation.
type GoToStatic struct{}

// RunScript triggers a named script.
type RunScript struct {
	Name string
}

// GoToRandom jumps to one of a set of named animations. Percents carries
// per-name weights in the optimized layout and is nil otherwise.
type GoToRandom struct {
	Names    []string
	Percents []uint8
}

// Hit marks a hit event.
type Hit struct{}

// Delete removes the entity.
type Delete struct{}

// End marks the end of the animation.
type End struct{}

// GoToIfPrevious selects a next animation keyed on the previous one, with
// an optional default.
type GoToIfPrevious struct {
	Previous []string
	Next     []string
	Default  *string
}

// AddParticle spawns a particle with optional offsets.
type AddParticle struct {
	ParticleID int32
	OffsetX    *int16
	OffsetY    *int16
	OffsetZ    *int16
}

// SetRadius sets the entity radius. This layout is also the decode
// fallthrough for unrecognised action ids.
type SetRadius struct {
	Radius int32
}

func (GoTo) action()           {}
func (GoToStatic) action()     {}
func (RunScript) action()      {}
func (GoToRandom) action()     {}
func (Hit) action()            {}
func (Delete) action()         {}
func (End) action()            {}
func (GoToIfPrevious) action() {}
func (AddParticle) action()    {}
func (SetRadius) action()      {}

// decodeAction reads one tagged action record: an id byte, a params byte,
// then the id-selected payload.
func decodeAction(c *Cursor) (Action, error) {
	id, err := c.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "could not read action id")
	}
	params, err := c.Uint8()
	if err != nil {
		return nil, errors.Wrap(err, "could not read action params")
	}

	switch id {
	case actionGoTo:
		name, err := c.String()
		if err != nil {
			return nil, err
		}
		a := GoTo{Name: name}
		if params > 1 {
			p, err := c.Uint8()
			if err != nil {
				return nil, err
			}
			a.Percent = &p
		}
		return a, nil

	case actionGoToStatic:
		return GoToStatic{}, nil

	case actionRunScript:
		name, err := c.String()
		if err != nil {
			return nil, err
		}
		return RunScript{Name: name}, nil

	case actionGoToRandom:
		return decodeGoToRandom(c, params)

	case actionHit:
		return Hit{}, nil

	case actionDelete:
		return Delete{}, nil

	case actionEnd:
		return End{}, nil

	case actionGoToIfPrevious:
		return decodeGoToIfPrevious(c, params)

	case actionAddParticle:
		return decodeAddParticle(c, params)

	default:
		// Unknown ids share the SetRadius layout.
		fallthrough
	case actionSetRadius:
		radius, err := c.Int32()
		if err != nil {
			return nil, err
		}
		return SetRadius{Radius: radius}, nil
	}
}

// decodeGoToRandom reads a GoToRandom payload. The first string read
// discriminates the layout: the optimized sentinel is followed by
// (params-1)/2 name and percent pairs, anything else is the first of
// params-1 names with no percents.
func decodeGoToRandom(c *Cursor, params uint8) (Action, error) {
	first, err := c.String()
	if err != nil {
		return nil, err
	}

	if first == optimizedSentinel {
		count := (int(params) - 1) / 2
		a := GoToRandom{}
		for i := 0; i < count; i++ {
			name, err := c.String()
			if err != nil {
				return nil, err
			}
			a.Names = append(a.Names, name)
		}
		for i := 0; i < count; i++ {
			p, err := c.Uint8()
			if err != nil {
				return nil, err
			}
			a.Percents = append(a.Percents, p)
		}
		return a, nil
	}

	count := int(params) - 1
	a := GoToRandom{Names: []string{first}}
	for i := 1; i < count; i++ {
		name, err := c.String()
		if err != nil {
			return nil, err
		}
		a.Names = append(a.Names, name)
	}
	return a, nil
}

// decodeGoToIfPrevious reads (params-1)/2 previous and next name pairs,
// then a default name when params is odd.
func decodeGoToIfPrevious(c *Cursor, params uint8) (Action, error) {
	count := (int(params) - 1) / 2
	a := GoToIfPrevious{}
	for i := 0; i < count; i++ {
		prev, err := c.String()
		if err != nil {
			return nil, err
		}
		next, err := c.String()
		if err != nil {
			return nil, err
		}
		a.Previous = append(a.Previous, prev)
		a.Next = append(a.Next, next)
	}
	if params%2 == 1 {
		def, err := c.String()
		if err != nil {
			return nil, err
		}
		a.Default = &def
	}
	return a, nil
}

// decodeAddParticle reads a particle id and up to three params-gated
// offsets.
func decodeAddParticle(c *Cursor, params uint8) (Action, error) {
	id, err := c.Int32()
	if err != nil {
		return nil, err
	}
	a := AddParticle{ParticleID: id}
	for i, dst := range []**int16{&a.OffsetX, &a.OffsetY, &a.OffsetZ} {
		if int(params) <= i+1 {
			break
		}
		v, err := c.Int16()
		if err != nil {
			return nil, err
		}
		*dst = &v
	}
	return a, nil
}

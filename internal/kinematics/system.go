package kinematics

import "fmt"

// System is the fixed set of bodies animated by the engine.
type System struct {
	bodies []Body
	index  map[BodyID]int
}

// NewSystem validates bodies and freezes them. The slice is copied.
func NewSystem(bodies []Body) (*System, error) {
	if len(bodies) == 0 {
		return nil, ErrEmptySystem
	}
	s := &System{
		bodies: make([]Body, len(bodies)),
		index:  make(map[BodyID]int, len(bodies)),
	}
	for i, b := range bodies {
		if !b.IsValid() {
			return nil, &BodyError{ID: b.ID, Wrapped: ErrInvalidBody}
		}
		if _, dup := s.index[b.ID]; dup {
			return nil, &BodyError{ID: b.ID, Wrapped: ErrDuplicateBody}
		}
		s.bodies[i] = b
		s.index[b.ID] = i
	}
	return s, nil
}

// Bodies returns a copy of the body table.
func (s *System) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

func (s *System) Len() int { return len(s.bodies) }

func (s *System) Body(id BodyID) (Body, error) {
	i, ok := s.index[id]
	if !ok {
		return Body{}, fmt.Errorf("body %q: %w", id, ErrUnknownBody)
	}
	return s.bodies[i], nil
}

// Advance computes the frame at time t under p.
func (s *System) Advance(t float64, p Params) Frame {
	return Advance(s.bodies, t, p)
}

package gamepad

import (
	"sync/atomic"
	"time"

	"github.com/Alia5/serialpad/device/joystick"
)

// Event is the classified result of one frame. Handlers share the same
// *Event and must treat it as read-only.
type Event struct {
	ID    uint64             `json:"id"`
	Names []string           `json:"names"`
	State joystick.AxisState `json:"state"`
	Frame joystick.Frame     `json:"frame"`
	Time  time.Time          `json:"time"`
}

// Is reports whether the event carries name.
func (e *Event) Is(name string) bool {
	return joystick.Has(e.Names, name)
}

// Direction returns the repeatable direction of the event, or "".
func (e *Event) Direction() string {
	return joystick.Direction(e.Names)
}

func (e *Event) String() string {
	return "Event: " + e.State.String()
}

// IDSource hands out strictly increasing event ids starting at 1.
// Share one between gamepads only if they must share an id space.
type IDSource struct {
	n atomic.Uint64
}

// NewIDSource returns a counter whose first id is 1.
func NewIDSource() *IDSource { return &IDSource{} }

// Next returns the next id.
func (s *IDSource) Next() uint64 {
	return s.n.Add(1)
}

// Last returns the most recently issued id, 0 if none.
func (s *IDSource) Last() uint64 {
	return s.n.Load()
}

package joystick

import "fmt"

// AxisState is the last known value of every input. Each frame overwrites
// only the field of its own channel.
type AxisState struct {
	X           uint8   `json:"x"`
	Y           uint8   `json:"y"`
	Switch      bool    `json:"switch"`
	Button      bool    `json:"button"`
	LastChannel Channel `json:"lastChannel"`
}

// Update applies f to the state.
func (s *AxisState) Update(f Frame) {
	switch f.Channel {
	case AxisX:
		s.X = f.Param
	case AxisY:
		s.Y = f.Param
	case Switch:
		s.Switch = f.Param != 0
	case Button:
		s.Button = f.Param != 0
	}
	s.LastChannel = f.Channel
}

// Snapshot returns an independent copy of the state.
func (s *AxisState) Snapshot() AxisState {
	return *s
}

// Axes returns the (x, y) pair.
func (s AxisState) Axes() (uint8, uint8) {
	return s.X, s.Y
}

func (s AxisState) String() string {
	return fmt.Sprintf("xy(%d, %d) switch:%s, button:%s",
		s.X, s.Y, pressed(s.Switch), pressed(s.Button))
}

func pressed(b bool) string {
	if b {
		return "pressed"
	}
	return "released"
}

package joystick

// DeadZone is the inclusive [Low, High] band treated as neutral on both axes.
type DeadZone struct {
	Sensibility int `json:"sensibility"`
	Low         int `json:"low"`
	High        int `json:"high"`
}

// NewDeadZone derives the center band for a sensibility level 1..10.
// Higher levels give a narrower band. Levels outside the range are clamped.
func NewDeadZone(sensibility int) DeadZone {
	s := ClampSensibility(sensibility)
	factor := 30 - 3*s
	return DeadZone{
		Sensibility: s,
		Low:         CenterLow - factor,
		High:        CenterHigh + factor,
	}
}

// ClampSensibility limits level to [SensibilityLow, SensibilityHigh].
func ClampSensibility(level int) int {
	if level > SensibilityHigh {
		return SensibilityHigh
	}
	if level < SensibilityLow {
		return SensibilityLow
	}
	return level
}

// Width is the number of axis values inside the band.
func (d DeadZone) Width() int {
	return d.High - d.Low + 1
}

// Contains reports whether v lies inside the band.
func (d DeadZone) Contains(v uint8) bool {
	return int(v) >= d.Low && int(v) <= d.High
}

// Centered reports whether both axes of s lie inside the band.
func (d DeadZone) Centered(s AxisState) bool {
	return d.Contains(s.X) && d.Contains(s.Y)
}

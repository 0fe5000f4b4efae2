package joystick

// Classify returns the ordered event names for frame f given the state after
// f was applied and the active deadzone. Only the block of f's channel
// contributes, so the result never carries two directions of the same axis.
func Classify(f Frame, s AxisState, dz DeadZone) []string {
	switch f.Channel {
	case AxisX:
		names := []string{EventMove, EventMoveX}
		switch {
		case int(s.X) > dz.High:
			names = append(names, EventMoveRight)
		case int(s.X) < dz.Low:
			names = append(names, EventMoveLeft)
		case dz.Centered(s):
			names = append(names, EventMoveCenter)
		}
		return names
	case AxisY:
		names := []string{EventMove, EventMoveY}
		switch {
		case int(s.Y) < dz.Low:
			names = append(names, EventMoveUp)
		case int(s.Y) > dz.High:
			names = append(names, EventMoveDown)
		case dz.Centered(s):
			names = append(names, EventMoveCenter)
		}
		return names
	case Switch:
		if s.Switch {
			return []string{EventSwitch, EventSwitchPress}
		}
		return []string{EventSwitch, EventSwitchRelease}
	case Button:
		if s.Button {
			return []string{EventButton, EventButtonPress}
		}
		return []string{EventButton, EventButtonRelease}
	}
	return nil
}

// Has reports whether names contains name.
func Has(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// Direction returns the repeatable direction tag in names, or "".
func Direction(names []string) string {
	for _, n := range names {
		if IsRepeatable(n) {
			return n
		}
	}
	return ""
}

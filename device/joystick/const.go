package joystick

// Frame layout: top two bits select the channel, low six bits carry the value.
const (
	ChannelMask = 0b11000000
	ParamMask   = 0b00111111

	channelShift = 6
)

// Axis midpoint. Both values count as dead center at every sensibility.
const (
	CenterLow  = 31
	CenterHigh = 32
)

// Sensibility levels accepted by NewDeadZone. Out of range values are clamped.
const (
	SensibilityLow    = 1
	SensibilityMedium = 5
	SensibilityHigh   = 10
)

// Event names produced by Classify.
const (
	EventMove          = "move"
	EventMoveX         = "move-x"
	EventMoveY         = "move-y"
	EventMoveLeft      = "move-left"
	EventMoveRight     = "move-right"
	EventMoveUp        = "move-up"
	EventMoveDown      = "move-down"
	EventMoveCenter    = "move-center"
	EventSwitch        = "switch"
	EventSwitchPress   = "switch-press"
	EventSwitchRelease = "switch-release"
	EventButton        = "button"
	EventButtonPress   = "button-press"
	EventButtonRelease = "button-release"

	// EventAll is the opt-in wildcard registration name. Classify never emits it.
	EventAll = "all"
)

// EventNames lists every name Classify can emit, in protocol order.
var EventNames = []string{
	EventMove,
	EventMoveX,
	EventMoveY,
	EventMoveLeft,
	EventMoveRight,
	EventMoveUp,
	EventMoveDown,
	EventMoveCenter,
	EventSwitch,
	EventSwitchPress,
	EventSwitchRelease,
	EventButton,
	EventButtonPress,
	EventButtonRelease,
}

// KnownEvent reports whether name is a classifier output or the wildcard.
func KnownEvent(name string) bool {
	if name == EventAll {
		return true
	}
	for _, n := range EventNames {
		if n == name {
			return true
		}
	}
	return false
}

// IsRepeatable reports whether name is a directional tag that may claim a hold.
func IsRepeatable(name string) bool {
	switch name {
	case EventMoveLeft, EventMoveRight, EventMoveUp, EventMoveDown:
		return true
	}
	return false
}

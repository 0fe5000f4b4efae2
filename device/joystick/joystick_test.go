package joystick_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alia5/serialpad/device/joystick"
)

func TestDecodeAllBytes(t *testing.T) {
	for i := 0; i < 256; i++ {
		b := byte(i)
		f := joystick.Decode(b)
		assert.Equal(t, b&0x3f, f.Param, "param of %#08b", b)
		assert.Equal(t, joystick.Channel((b>>6)&0x3), f.Channel, "channel of %#08b", b)
		assert.Equal(t, b, f.Byte(), "round trip of %#08b", b)
	}
}

func TestDecodeChannels(t *testing.T) {
	cases := []struct {
		name    string
		in      byte
		channel joystick.Channel
		param   uint8
	}{
		{name: "x axis", in: 0b00_100000, channel: joystick.AxisX, param: 32},
		{name: "y axis", in: 0b01_000111, channel: joystick.AxisY, param: 7},
		{name: "switch pressed", in: 0b10_000001, channel: joystick.Switch, param: 1},
		{name: "button released", in: 0b11_000000, channel: joystick.Button, param: 0},
		{name: "max param", in: 0xff, channel: joystick.Button, param: 63},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := joystick.Decode(tc.in)
			assert.Equal(t, tc.channel, f.Channel)
			assert.Equal(t, tc.param, f.Param)
		})
	}
}

func TestFrameBinary(t *testing.T) {
	f := joystick.Encode(joystick.AxisY, 200)
	assert.Equal(t, uint8(200&0x3f), f.Param, "param truncated to six bits")

	b, err := f.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{0b01_001000}, b)

	var got joystick.Frame
	require.NoError(t, got.UnmarshalBinary(b))
	assert.Equal(t, f, got)

	assert.Error(t, got.UnmarshalBinary(nil))
	assert.Equal(t, "(Y, 8)", got.String())
}

func TestChannelText(t *testing.T) {
	for _, ch := range []joystick.Channel{joystick.AxisX, joystick.AxisY, joystick.Switch, joystick.Button} {
		txt, err := ch.MarshalText()
		require.NoError(t, err)
		var back joystick.Channel
		require.NoError(t, back.UnmarshalText(txt))
		assert.Equal(t, ch, back)
	}
	var c joystick.Channel
	assert.Error(t, c.UnmarshalText([]byte("Z")))
}

func TestUpdateLeavesOtherChannels(t *testing.T) {
	st := joystick.AxisState{X: 10, Y: 20, Switch: true, Button: false}

	st.Update(joystick.Decode(0b01_111111))
	assert.Equal(t, joystick.AxisState{X: 10, Y: 63, Switch: true, Button: false, LastChannel: joystick.AxisY}, st)

	st.Update(joystick.Decode(0b11_000101))
	assert.Equal(t, joystick.AxisState{X: 10, Y: 63, Switch: true, Button: true, LastChannel: joystick.Button}, st)

	st.Update(joystick.Decode(0b10_000000))
	assert.Equal(t, joystick.AxisState{X: 10, Y: 63, Switch: false, Button: true, LastChannel: joystick.Switch}, st)

	st.Update(joystick.Decode(0b00_000001))
	assert.Equal(t, joystick.AxisState{X: 1, Y: 63, Switch: false, Button: true, LastChannel: joystick.AxisX}, st)
}

func TestUpdateSequenceIsolation(t *testing.T) {
	var st joystick.AxisState
	for i := 0; i < 256; i++ {
		f := joystick.Decode(byte((i * 97) % 256))
		before := st
		st.Update(f)
		if f.Channel != joystick.AxisX {
			assert.Equal(t, before.X, st.X)
		}
		if f.Channel != joystick.AxisY {
			assert.Equal(t, before.Y, st.Y)
		}
		if f.Channel != joystick.Switch {
			assert.Equal(t, before.Switch, st.Switch)
		}
		if f.Channel != joystick.Button {
			assert.Equal(t, before.Button, st.Button)
		}
	}
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	var st joystick.AxisState
	st.Update(joystick.Decode(0b00_000101))
	snap := st.Snapshot()
	st.Update(joystick.Decode(0b00_111111))
	assert.Equal(t, uint8(5), snap.X)
	assert.Equal(t, uint8(63), st.X)
}

func TestAxisStateString(t *testing.T) {
	st := joystick.AxisState{X: 3, Y: 40, Switch: true}
	assert.Equal(t, "xy(3, 40) switch:pressed, button:released", st.String())
	x, y := st.Axes()
	assert.Equal(t, uint8(3), x)
	assert.Equal(t, uint8(40), y)
}

func TestAxisStateJSON(t *testing.T) {
	st := joystick.AxisState{X: 1, Y: 2, Button: true, LastChannel: joystick.Button}
	b, err := json.Marshal(st)
	require.NoError(t, err)
	assert.JSONEq(t, `{"x":1,"y":2,"switch":false,"button":true,"lastChannel":"BT"}`, string(b))
}

func TestNewDeadZone(t *testing.T) {
	cases := []struct {
		name        string
		sensibility int
		want        joystick.DeadZone
	}{
		{name: "lowest", sensibility: 1, want: joystick.DeadZone{Sensibility: 1, Low: 4, High: 59}},
		{name: "medium", sensibility: 5, want: joystick.DeadZone{Sensibility: 5, Low: 16, High: 47}},
		{name: "nine", sensibility: 9, want: joystick.DeadZone{Sensibility: 9, Low: 28, High: 35}},
		{name: "highest", sensibility: 10, want: joystick.DeadZone{Sensibility: 10, Low: 31, High: 32}},
		{name: "zero clamps to one", sensibility: 0, want: joystick.DeadZone{Sensibility: 1, Low: 4, High: 59}},
		{name: "negative clamps to one", sensibility: -7, want: joystick.DeadZone{Sensibility: 1, Low: 4, High: 59}},
		{name: "fifteen clamps to ten", sensibility: 15, want: joystick.DeadZone{Sensibility: 10, Low: 31, High: 32}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, joystick.NewDeadZone(tc.sensibility))
		})
	}
}

func TestDeadZoneMonotonic(t *testing.T) {
	for s1 := -2; s1 <= 12; s1++ {
		for s2 := s1 + 1; s2 <= 12; s2++ {
			w1 := joystick.NewDeadZone(s1).Width()
			w2 := joystick.NewDeadZone(s2).Width()
			assert.GreaterOrEqual(t, w1, w2, "width(%d) >= width(%d)", s1, s2)
		}
	}
}

func TestDeadZoneAlwaysHoldsMidpoint(t *testing.T) {
	for s := joystick.SensibilityLow; s <= joystick.SensibilityHigh; s++ {
		dz := joystick.NewDeadZone(s)
		assert.True(t, dz.Contains(joystick.CenterLow))
		assert.True(t, dz.Contains(joystick.CenterHigh))
	}
}

func TestClassify(t *testing.T) {
	high := joystick.NewDeadZone(joystick.SensibilityHigh)
	nine := joystick.NewDeadZone(9)

	cases := []struct {
		name  string
		state joystick.AxisState
		in    byte
		dz    joystick.DeadZone
		want  []string
	}{
		{
			name: "x inside band but y off center gives no tag",
			in:   0b00_100000,
			dz:   high,
			want: []string{"move", "move-x"},
		},
		{
			name: "x inside wide band but y off center gives no tag",
			in:   0b00_100000,
			dz:   nine,
			want: []string{"move", "move-x"},
		},
		{
			name:  "x centered with y centered",
			state: joystick.AxisState{Y: 31},
			in:    0b00_100000,
			dz:    high,
			want:  []string{"move", "move-x", "move-center"},
		},
		{
			name: "x right",
			in:   0b00_111111,
			dz:   high,
			want: []string{"move", "move-x", "move-right"},
		},
		{
			name:  "x left",
			state: joystick.AxisState{Y: 32},
			in:    0b00_000000,
			dz:    high,
			want:  []string{"move", "move-x", "move-left"},
		},
		{
			name:  "y up",
			state: joystick.AxisState{X: 32},
			in:    0b01_000011,
			dz:    high,
			want:  []string{"move", "move-y", "move-up"},
		},
		{
			name: "y down",
			in:   0b01_111000,
			dz:   high,
			want: []string{"move", "move-y", "move-down"},
		},
		{
			name:  "y centered with x centered",
			state: joystick.AxisState{X: 30},
			in:    0b01_100010,
			dz:    nine,
			want:  []string{"move", "move-y", "move-center"},
		},
		{
			name: "switch press",
			in:   0b10_000001,
			dz:   high,
			want: []string{"switch", "switch-press"},
		},
		{
			name: "switch release",
			in:   0b10_000000,
			dz:   high,
			want: []string{"switch", "switch-release"},
		},
		{
			name: "button press with any nonzero param",
			in:   0b11_101010,
			dz:   high,
			want: []string{"button", "button-press"},
		},
		{
			name:  "button release",
			state: joystick.AxisState{Button: true},
			in:    0b11_000000,
			dz:    high,
			want:  []string{"button", "button-release"},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := tc.state
			f := joystick.Decode(tc.in)
			st.Update(f)
			assert.Equal(t, tc.want, joystick.Classify(f, st, tc.dz))
		})
	}
}

func TestClassifyMutualExclusion(t *testing.T) {
	exclusive := [][2]string{
		{joystick.EventMoveLeft, joystick.EventMoveRight},
		{joystick.EventMoveUp, joystick.EventMoveDown},
		{joystick.EventMoveLeft, joystick.EventMoveCenter},
		{joystick.EventMoveRight, joystick.EventMoveCenter},
		{joystick.EventMoveUp, joystick.EventMoveCenter},
		{joystick.EventMoveDown, joystick.EventMoveCenter},
		{joystick.EventSwitchPress, joystick.EventSwitchRelease},
		{joystick.EventButtonPress, joystick.EventButtonRelease},
	}
	for s := joystick.SensibilityLow; s <= joystick.SensibilityHigh; s++ {
		dz := joystick.NewDeadZone(s)
		for other := 0; other < 64; other += 3 {
			for b := 0; b < 256; b++ {
				f := joystick.Decode(byte(b))
				st := joystick.AxisState{X: uint8(other), Y: uint8(other)}
				st.Update(f)
				names := joystick.Classify(f, st, dz)

				seen := map[string]bool{}
				for _, n := range names {
					assert.False(t, seen[n], "duplicate %q in %v", n, names)
					seen[n] = true
					assert.True(t, joystick.KnownEvent(n))
				}
				for _, pair := range exclusive {
					assert.False(t, seen[pair[0]] && seen[pair[1]], "%v holds both %s and %s", names, pair[0], pair[1])
				}
			}
		}
	}
}

func TestKnownEventAndRepeatable(t *testing.T) {
	assert.True(t, joystick.KnownEvent("all"))
	assert.True(t, joystick.KnownEvent("button-release"))
	assert.False(t, joystick.KnownEvent("press-button"))

	for _, n := range joystick.EventNames {
		switch n {
		case "move-left", "move-right", "move-up", "move-down":
			assert.True(t, joystick.IsRepeatable(n), n)
		default:
			assert.False(t, joystick.IsRepeatable(n), n)
		}
	}
	assert.Equal(t, "move-up", joystick.Direction([]string{"move", "move-y", "move-up"}))
	assert.Equal(t, "", joystick.Direction([]string{"move", "move-x"}))
	assert.True(t, joystick.Has([]string{"move", "move-center"}, "move-center"))
}

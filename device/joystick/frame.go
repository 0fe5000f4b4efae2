// Package joystick implements the single-byte serial protocol of the
// two-axis joystick peripheral: frame decoding, last-known axis state,
// the sensibility driven deadzone and event name classification.
package joystick

import (
	"fmt"
	"io"
)

// Channel selects which input a frame reports on.
type Channel uint8

const (
	AxisX Channel = iota
	AxisY
	Switch
	Button
)

var channelNames = [...]string{"X", "Y", "SW", "BT"}

func (c Channel) String() string {
	if int(c) < len(channelNames) {
		return channelNames[c]
	}
	return fmt.Sprintf("Channel(%d)", uint8(c))
}

// MarshalText renders the channel the way it is printed in logs and JSON.
func (c Channel) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText accepts the names produced by MarshalText.
func (c *Channel) UnmarshalText(b []byte) error {
	for i, n := range channelNames {
		if n == string(b) {
			*c = Channel(i)
			return nil
		}
	}
	return fmt.Errorf("unknown channel %q", string(b))
}

// Frame is one decoded (channel, param) pair.
//
// Wire format (1 byte):
//
//	bit 7-6: channel (00 = X, 01 = Y, 10 = switch, 11 = button)
//	bit 5-0: param 0..63, boolean channels use 0 = released
type Frame struct {
	Channel Channel `json:"channel"`
	Param   uint8   `json:"param"`
}

// Decode splits b into its channel and param. Every byte is a valid frame.
func Decode(b byte) Frame {
	return Frame{
		Channel: Channel((b & ChannelMask) >> channelShift),
		Param:   b & ParamMask,
	}
}

// Encode builds the frame for ch with param truncated to six bits.
func Encode(ch Channel, param uint8) Frame {
	return Frame{Channel: ch & 0b11, Param: param & ParamMask}
}

// Byte returns the wire byte of f.
func (f Frame) Byte() byte {
	return byte(f.Channel&0b11)<<channelShift | f.Param&ParamMask
}

// MarshalBinary encodes the frame to its single wire byte.
func (f Frame) MarshalBinary() ([]byte, error) {
	return []byte{f.Byte()}, nil
}

// UnmarshalBinary decodes the first byte of data.
func (f *Frame) UnmarshalBinary(data []byte) error {
	if len(data) < 1 {
		return io.ErrUnexpectedEOF
	}
	*f = Decode(data[0])
	return nil
}

func (f Frame) String() string {
	return fmt.Sprintf("(%s, %d)", f.Channel, f.Param)
}

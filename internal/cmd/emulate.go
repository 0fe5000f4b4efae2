package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/Alia5/serialpad/device/joystick"
	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/internal/serialport"
)

// Emulate turns the keyboard into a joystick and writes the protocol bytes
// to a serial device, or to stdout with --serial.device=-.
type Emulate struct {
	Serial serialport.Config `embed:"" prefix:"serial."`
	Step   uint8             `help:"Axis change per key press, 0 jumps to the axis end" default:"0" env:"SERIALPAD_EMULATE_STEP"`
}

const emulateHelp = "arrows/wasd move, c centers, space toggles the switch, enter clicks the button, q quits\r\n"

// Run is called by Kong when the emulate command is executed.
func (e *Emulate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("emulate needs an interactive terminal on stdin")
	}
	port, err := serialport.Open(e.Serial)
	if err != nil {
		return err
	}
	defer port.Close()

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	defer func() {
		if err := term.Restore(fd, state); err != nil {
			logger.Error("failed to restore terminal", "error", err)
		}
	}()

	if e.Serial.Device != serialport.Stdio {
		fmt.Fprint(os.Stderr, emulateHelp)
	}
	k := newKeypad(port, rawLogger, e.Step)
	if err := k.center(); err != nil {
		return err
	}
	return k.run(os.Stdin)
}

type emuKey int

const (
	keyNone emuKey = iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyCenter
	keySwitch
	keyButton
	keyQuit
)

var escapeKeys = map[string]emuKey{
	"\x1b[A": keyUp,
	"\x1b[B": keyDown,
	"\x1b[C": keyRight,
	"\x1b[D": keyLeft,
	"\x1bOA": keyUp,
	"\x1bOB": keyDown,
	"\x1bOC": keyRight,
	"\x1bOD": keyLeft,
}

var plainKeys = map[byte]emuKey{
	'w': keyUp, 'W': keyUp,
	's': keyDown, 'S': keyDown,
	'a': keyLeft, 'A': keyLeft,
	'd': keyRight, 'D': keyRight,
	'c': keyCenter, 'C': keyCenter,
	' ':  keySwitch,
	'\r': keyButton,
	'\n': keyButton,
	'q':  keyQuit, 'Q': keyQuit,
	0x03: keyQuit, // Ctrl-C
	0x04: keyQuit, // Ctrl-D
}

// decodeKeys splits one terminal read into keys. Unknown input is skipped.
func decodeKeys(b []byte) []emuKey {
	var keys []emuKey
	for i := 0; i < len(b); {
		if b[i] == 0x1b && i+2 < len(b) {
			if k, ok := escapeKeys[string(b[i:i+3])]; ok {
				keys = append(keys, k)
				i += 3
				continue
			}
		}
		if k, ok := plainKeys[b[i]]; ok {
			keys = append(keys, k)
		}
		i++
	}
	return keys
}

// keypad holds the emulated stick position and writes frames for key presses.
type keypad struct {
	w    io.Writer
	raw  log.RawLogger
	step uint8

	x, y   uint8
	closed bool
}

func newKeypad(w io.Writer, raw log.RawLogger, step uint8) *keypad {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &keypad{w: w, raw: raw, step: step, x: joystick.CenterHigh, y: joystick.CenterHigh}
}

const axisMax = joystick.ParamMask

// press applies k and reports whether the emulator should stop.
func (p *keypad) press(k emuKey) (quit bool, err error) {
	switch k {
	case keyLeft:
		p.x = p.move(p.x, false)
		return false, p.send(joystick.Encode(joystick.AxisX, p.x))
	case keyRight:
		p.x = p.move(p.x, true)
		return false, p.send(joystick.Encode(joystick.AxisX, p.x))
	case keyUp:
		p.y = p.move(p.y, false)
		return false, p.send(joystick.Encode(joystick.AxisY, p.y))
	case keyDown:
		p.y = p.move(p.y, true)
		return false, p.send(joystick.Encode(joystick.AxisY, p.y))
	case keyCenter:
		return false, p.center()
	case keySwitch:
		p.closed = !p.closed
		var param uint8
		if p.closed {
			param = 1
		}
		return false, p.send(joystick.Encode(joystick.Switch, param))
	case keyButton:
		return false, p.send(joystick.Encode(joystick.Button, 1), joystick.Encode(joystick.Button, 0))
	case keyQuit:
		return true, nil
	}
	return false, nil
}

func (p *keypad) move(v uint8, up bool) uint8 {
	switch {
	case p.step == 0 && up:
		return axisMax
	case p.step == 0:
		return 0
	case up:
		if int(v)+int(p.step) > axisMax {
			return axisMax
		}
		return v + p.step
	default:
		if v < p.step {
			return 0
		}
		return v - p.step
	}
}

func (p *keypad) center() error {
	p.x, p.y = joystick.CenterHigh, joystick.CenterHigh
	return p.send(joystick.Encode(joystick.AxisX, p.x), joystick.Encode(joystick.AxisY, p.y))
}

func (p *keypad) send(frames ...joystick.Frame) error {
	buf := make([]byte, 0, len(frames))
	for _, f := range frames {
		buf = append(buf, f.Byte())
	}
	if _, err := p.w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	p.raw.Log(false, buf)
	return nil
}

// run reads keys from r until quit or EOF.
func (p *keypad) run(r io.Reader) error {
	buf := make([]byte, 16)
	for {
		n, err := r.Read(buf)
		for _, k := range decodeKeys(buf[:n]) {
			quit, perr := p.press(k)
			if perr != nil {
				return perr
			}
			if quit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read keys: %w", err)
		}
	}
}

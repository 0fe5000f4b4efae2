// Package serialport opens the byte stream of the joystick peripheral.
package serialport

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/tarm/serial"
)

// Stdio is the device name that selects stdin/stdout instead of a tty.
const Stdio = "-"

// Config is embedded into CLI commands under the "serial." prefix.
type Config struct {
	Device      string        `help:"Serial device of the peripheral, '-' for stdin/stdout" default:"/dev/ttyUSB0" env:"SERIALPAD_SERIAL_DEVICE"`
	Baud        int           `help:"Baud rate" default:"9600" env:"SERIALPAD_SERIAL_BAUD"`
	ReadTimeout time.Duration `help:"Read timeout, 0 blocks until a byte arrives" default:"0s" env:"SERIALPAD_SERIAL_READ_TIMEOUT"`
}

// Open opens the configured device. The peripheral speaks 8N1.
func Open(c Config) (io.ReadWriteCloser, error) {
	if c.Device == Stdio {
		return stdio{}, nil
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        c.Device,
		Baud:        c.Baud,
		ReadTimeout: c.ReadTimeout,
		Size:        8,
		Parity:      serial.ParityNone,
		StopBits:    serial.Stop1,
	})
	if err != nil {
		return nil, fmt.Errorf("open serial device %s: %w", c.Device, err)
	}
	return p, nil
}

type stdio struct{}

func (stdio) Read(b []byte) (int, error)  { return os.Stdin.Read(b) }
func (stdio) Write(b []byte) (int, error) { return os.Stdout.Write(b) }
func (stdio) Close() error                { return nil }

package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/Alia5/serialpad/device/joystick"
)

// RawLogger dumps serial traffic, one line per byte.
type RawLogger interface {
	// Log records data; in is true for bytes received from the peripheral.
	Log(in bool, data []byte)
}

type rawLogger struct {
	w   io.Writer
	mu  sync.Mutex
	now func() time.Time
}

// NewRaw returns a RawLogger writing to w. A nil w discards everything.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w, now: time.Now}
}

// Log writes "<time> RX 0x20 (X, 32)" lines, TX for bytes sent by the emulator.
func (r *rawLogger) Log(in bool, data []byte) {
	if r.w == nil || len(data) == 0 {
		return
	}
	dir := "TX"
	if in {
		dir = "RX"
	}
	ts := r.now().Format("2006/01/02 15:04:05.000")

	var sb strings.Builder
	for _, b := range data {
		fmt.Fprintf(&sb, "%s %s 0x%02x %s\n", ts, dir, b, joystick.Decode(b))
	}

	r.mu.Lock()
	_, _ = io.WriteString(r.w, sb.String())
	r.mu.Unlock()
}

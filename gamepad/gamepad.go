// Package gamepad drives the joystick peripheral: it reads protocol bytes
// from a source, keeps the axis state, classifies every frame into an Event
// and dispatches it to registered handlers with hold-to-repeat semantics.
package gamepad

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Alia5/serialpad/device/joystick"
)

// FrameLogger receives every raw byte read from the source.
type FrameLogger interface {
	Log(in bool, data []byte)
}

// Options configures a Gamepad. Nil pointers and zero values select defaults.
type Options struct {
	// Sensibility level 1..10, defaults to joystick.SensibilityHigh.
	Sensibility *int
	// Wildcard enables registrations under joystick.EventAll.
	Wildcard bool
	// IDs is the event id counter. A fresh counter is used when nil.
	IDs       *IDSource
	Logger    *slog.Logger
	RawLogger FrameLogger
}

// Gamepad owns the byte source and the read, classify, dispatch loop.
type Gamepad struct {
	src *bufio.Reader

	// state is only touched by Listen; published holds the latest copy.
	state     joystick.AxisState
	published atomic.Pointer[joystick.AxisState]
	deadZone  atomic.Pointer[joystick.DeadZone]
	last      atomic.Pointer[Event]

	ids        *IDSource
	dispatcher *Dispatcher
	logger     *slog.Logger
	raw        FrameLogger
}

// New returns a gamepad reading frames from src.
func New(src io.Reader, o *Options) *Gamepad {
	g := &Gamepad{
		src: bufio.NewReader(src),
	}
	sensibility := joystick.SensibilityHigh
	var wildcard bool
	if o != nil {
		if o.Sensibility != nil {
			sensibility = *o.Sensibility
		}
		wildcard = o.Wildcard
		g.ids = o.IDs
		g.logger = o.Logger
		g.raw = o.RawLogger
	}
	if g.ids == nil {
		g.ids = NewIDSource()
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}
	g.dispatcher = NewDispatcher(wildcard, g.logger)
	g.SetSensibility(sensibility)
	g.published.Store(&joystick.AxisState{})
	return g
}

// On registers h for the event name. See Dispatcher.On.
func (g *Gamepad) On(name string, h HandlerFunc) error {
	return g.dispatcher.On(name, h)
}

// SetSensibility replaces the active deadzone. Levels are clamped to 1..10.
func (g *Gamepad) SetSensibility(level int) joystick.DeadZone {
	dz := joystick.NewDeadZone(level)
	g.deadZone.Store(&dz)
	return dz
}

// DeadZone returns the active deadzone.
func (g *Gamepad) DeadZone() joystick.DeadZone {
	return *g.deadZone.Load()
}

// IsHolding reports whether ev still holds its direction. Repeating
// handlers poll this and stop once it turns false.
func (g *Gamepad) IsHolding(ev *Event) bool {
	return ev != nil && g.dispatcher.IsHeld(ev.ID)
}

// Held returns the id of the event holding a direction and whether anything
// is held. The hold itself is only changed by dispatching.
func (g *Gamepad) Held() (uint64, bool) {
	return g.dispatcher.Held()
}

// State returns a copy of the axis state after the latest frame.
func (g *Gamepad) State() joystick.AxisState {
	return *g.published.Load()
}

// LastEvent returns the most recently dispatched event, nil before the first.
func (g *Gamepad) LastEvent() *Event {
	return g.last.Load()
}

// Subscribe streams dispatched events. See Dispatcher.Subscribe.
func (g *Gamepad) Subscribe(buffer int) (<-chan *Event, func()) {
	return g.dispatcher.Subscribe(buffer)
}

// Wait blocks until all launched handlers returned. See Dispatcher.Wait.
func (g *Gamepad) Wait() error {
	return g.dispatcher.Wait()
}

// Listen runs the loop until the source fails, reaches EOF or ctx is done.
// A blocking read is not interrupted by ctx; close the source to unblock it.
// On EOF the returned error wraps ErrSourceClosed.
func (g *Gamepad) Listen(ctx context.Context) error {
	defer g.dispatcher.Close()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		b, err := g.src.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				g.logger.Info("byte source closed")
				return fmt.Errorf("%w: %w", ErrSourceClosed, err)
			}
			g.logger.Error("read frame", "error", err)
			return fmt.Errorf("read frame: %w", err)
		}
		if g.raw != nil {
			g.raw.Log(true, []byte{b})
		}
		g.Process(b)
	}
}

// Process feeds a single protocol byte through decode, classify and
// dispatch. Listen calls it for every byte; it must not be called
// concurrently with Listen.
func (g *Gamepad) Process(b byte) *Event {
	f := joystick.Decode(b)
	g.state.Update(f)
	snap := g.state.Snapshot()
	g.published.Store(&snap)

	ev := &Event{
		ID:    g.ids.Next(),
		Names: joystick.Classify(f, snap, g.DeadZone()),
		State: snap,
		Frame: f,
		Time:  time.Now(),
	}
	g.last.Store(ev)
	g.logger.Debug("event", "id", ev.ID, "frame", f.String(), "names", ev.Names)

	g.dispatcher.Dispatch(ev)
	return ev
}

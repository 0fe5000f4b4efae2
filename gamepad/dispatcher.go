package gamepad

import (
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Alia5/serialpad/device/joystick"
)

// HandlerFunc reacts to one event. It runs on its own goroutine; a handler
// that repeats while held must poll Gamepad.IsHolding itself.
type HandlerFunc func(ev *Event)

type registration struct {
	name    string
	handler HandlerFunc
}

// Dispatcher matches events against registrations, maintains the hold and
// launches handlers concurrently. Dispatch must only be called from a single
// goroutine.
type Dispatcher struct {
	mu       sync.RWMutex
	exact    []registration
	wildcard []registration
	allowAll bool

	hold   holdRegistry
	logger *slog.Logger
	group  errgroup.Group

	subsMu  sync.Mutex
	subs    map[int]chan *Event
	nextSub int
	closed  bool
}

// NewDispatcher returns an empty dispatcher. With wildcard set, handlers may
// be registered under joystick.EventAll and fire once for every event.
func NewDispatcher(wildcard bool, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		allowAll: wildcard,
		logger:   logger,
		subs:     make(map[int]chan *Event),
	}
}

// On appends a registration. Registrations cannot be removed.
func (d *Dispatcher) On(name string, h HandlerFunc) error {
	if h == nil {
		return ErrNilHandler
	}
	if !joystick.KnownEvent(name) {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if name == joystick.EventAll {
		if !d.allowAll {
			return ErrWildcardDisabled
		}
		d.wildcard = append(d.wildcard, registration{name: name, handler: h})
		return nil
	}
	d.exact = append(d.exact, registration{name: name, handler: h})
	return nil
}

// Held returns the id of the event holding a direction and whether anything
// is held.
func (d *Dispatcher) Held() (uint64, bool) { return d.hold.held() }

// IsHeld reports whether id is the held event.
func (d *Dispatcher) IsHeld(id uint64) bool { return d.hold.isHeld(id) }

// Dispatch applies the hold rules for ev and launches every matching handler.
// Exact-name registrations run first in registration order, wildcard ones
// after. It returns the number of handlers launched.
func (d *Dispatcher) Dispatch(ev *Event) int {
	if ev.Is(joystick.EventMoveCenter) {
		d.hold.release()
	}

	d.mu.RLock()
	exact, wildcard := d.exact, d.wildcard
	d.mu.RUnlock()

	launched := 0
	for _, r := range exact {
		if !ev.Is(r.name) {
			continue
		}
		d.launch(r, ev)
		launched++
	}
	for _, r := range wildcard {
		d.launch(r, ev)
		launched++
	}

	d.publish(ev)
	return launched
}

func (d *Dispatcher) launch(r registration, ev *Event) {
	if ev.Direction() != "" && d.hold.tryHold(ev.ID) {
		d.logger.Debug("hold", "id", ev.ID, "direction", ev.Direction())
	}
	d.group.Go(func() (err error) {
		defer func() {
			if p := recover(); p != nil {
				d.logger.Error("handler panic", "event", r.name, "id", ev.ID, "panic", p)
				err = fmt.Errorf("handler %q for event %d: %v", r.name, ev.ID, p)
			}
		}()
		r.handler(ev)
		return nil
	})
}

// Wait blocks until every launched handler has returned and reports the
// first handler failure. Call it only after dispatching has stopped.
func (d *Dispatcher) Wait() error {
	return d.group.Wait()
}

// Subscribe returns a channel receiving every dispatched event. Events are
// dropped for a subscriber whose buffer is full. The channel is closed by
// cancel or when the dispatcher is closed.
func (d *Dispatcher) Subscribe(buffer int) (<-chan *Event, func()) {
	ch := make(chan *Event, buffer)

	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	if d.closed {
		close(ch)
		return ch, func() {}
	}
	id := d.nextSub
	d.nextSub++
	d.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			d.subsMu.Lock()
			defer d.subsMu.Unlock()
			if c, ok := d.subs[id]; ok {
				delete(d.subs, id)
				close(c)
			}
		})
	}
}

func (d *Dispatcher) publish(ev *Event) {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	for id, ch := range d.subs {
		select {
		case ch <- ev:
		default:
			d.logger.Debug("subscriber lagging, event dropped", "subscriber", id, "id", ev.ID)
		}
	}
}

// Close closes every subscriber channel. Later subscriptions receive an
// already closed channel.
func (d *Dispatcher) Close() {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	for id, ch := range d.subs {
		delete(d.subs, id)
		close(ch)
	}
}

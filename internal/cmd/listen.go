package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/Alia5/serialpad/apitypes"
	"github.com/Alia5/serialpad/device/joystick"
	"github.com/Alia5/serialpad/gamepad"
	"github.com/Alia5/serialpad/internal/log"
)

// Listen prints the events decoded from the peripheral.
type Listen struct {
	Pad    PadConfig `embed:""`
	Events []string  `help:"Only print these events (comma separated)" sep:"," env:"SERIALPAD_LISTEN_EVENTS"`
	Format string    `help:"Output format" enum:"text,json" default:"text" env:"SERIALPAD_LISTEN_FORMAT"`
}

// Run is called by Kong when the listen command is executed.
func (l *Listen) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, port, err := l.Pad.openPad(logger, rawLogger, len(l.Events) == 0)
	if err != nil {
		return err
	}
	if err := l.register(g, os.Stdout); err != nil {
		_ = port.Close()
		return err
	}
	return runPad(ctx, g, port, logger)
}

// register installs one printing handler per selected event, or a single
// wildcard handler when no events were selected.
func (l *Listen) register(g *gamepad.Gamepad, w io.Writer) error {
	p := &eventPrinter{w: w, json: l.Format == "json"}
	if len(l.Events) == 0 {
		return g.On(joystick.EventAll, func(ev *gamepad.Event) { p.print(g, joystick.EventAll, ev) })
	}
	for _, name := range l.Events {
		name := name
		if err := g.On(name, func(ev *gamepad.Event) { p.print(g, name, ev) }); err != nil {
			return fmt.Errorf("--events: %w", err)
		}
	}
	return nil
}

type eventPrinter struct {
	mu   sync.Mutex
	w    io.Writer
	json bool
}

func (p *eventPrinter) print(g *gamepad.Gamepad, registered string, ev *gamepad.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.json {
		_ = json.NewEncoder(p.w).Encode(apitypes.Event{
			ID:      ev.ID,
			Names:   ev.Names,
			State:   ev.State,
			Frame:   ev.Frame,
			Time:    ev.Time,
			Holding: g.IsHolding(ev),
		})
		return
	}
	if registered == joystick.EventAll {
		fmt.Fprintf(p.w, "#%d [%s] %s\n", ev.ID, strings.Join(ev.Names, " "), ev)
		return
	}
	fmt.Fprintf(p.w, "#%d %s %s\n", ev.ID, registered, ev)
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Alia5/serialpad/apiclient"
	"github.com/Alia5/serialpad/device/joystick"
)

// ClientConfig points client commands at a running "serve".
type ClientConfig struct {
	Addr    string        `help:"Event API address" default:"localhost:3243" env:"SERIALPAD_API_ADDR"`
	Timeout time.Duration `help:"Dial and request timeout" default:"5s" env:"SERIALPAD_CLIENT_TIMEOUT"`
}

func (c ClientConfig) client() *apiclient.Client {
	return apiclient.NewWithConfig(c.Addr, &apiclient.Config{
		DialTimeout:  c.Timeout,
		ReadTimeout:  c.Timeout,
		WriteTimeout: c.Timeout,
	})
}

// Tail prints the event stream of a running "serve" as JSON lines.
type Tail struct {
	Client ClientConfig `embed:"" prefix:"api."`
	Events []string     `arg:"" optional:"" help:"Only print these events"`
}

// Run is called by Kong when the tail command is executed.
func (t *Tail) Run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return t.tail(ctx, logger, os.Stdout)
}

func (t *Tail) tail(ctx context.Context, logger *slog.Logger, w io.Writer) error {
	for _, name := range t.Events {
		if !joystick.KnownEvent(name) {
			return fmt.Errorf("unknown event name %q", name)
		}
	}
	stream, err := t.Client.client().OpenEvents(ctx, t.Events...)
	if err != nil {
		return err
	}
	defer stream.Close()
	logger.Info("Tailing events", "addr", t.Client.Addr, "events", t.Events)

	events, errs := stream.Events(ctx, 16)
	enc := json.NewEncoder(w)
	for ev := range events {
		if err := enc.Encode(ev); err != nil {
			return err
		}
	}
	return <-errs
}

// State prints the live state, deadzone and hold reported by a running "serve".
// With --sensibility it changes the sensibility first.
type State struct {
	Client      ClientConfig `embed:"" prefix:"api."`
	Sensibility *int         `help:"Set the sensibility level (1..10) before printing"`
}

// Run is called by Kong when the state command is executed.
func (s *State) Run(logger *slog.Logger) error {
	return s.print(context.Background(), logger, os.Stdout)
}

func (s *State) print(ctx context.Context, logger *slog.Logger, w io.Writer) error {
	c := s.Client.client()
	if s.Sensibility != nil {
		resp, err := c.SetSensibility(ctx, *s.Sensibility)
		if err != nil {
			return fmt.Errorf("set sensibility: %w", err)
		}
		logger.Info("Sensibility changed", "sensibility", resp.DeadZone.Sensibility, "low", resp.DeadZone.Low, "high", resp.DeadZone.High)
	}
	st, err := c.State(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(st)
}

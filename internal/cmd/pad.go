package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Alia5/serialpad/gamepad"
	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/internal/serialport"
)

// PadConfig is shared by every command that reads the peripheral.
type PadConfig struct {
	Serial      serialport.Config `embed:"" prefix:"serial."`
	Sensibility int               `help:"Deadzone sensibility, 1 (wide) to 10 (narrow)" default:"10" env:"SERIALPAD_SENSIBILITY"`
}

// openPad opens the serial device and wraps it in a gamepad.
func (p *PadConfig) openPad(logger *slog.Logger, rawLogger log.RawLogger, wildcard bool) (*gamepad.Gamepad, io.Closer, error) {
	port, err := serialport.Open(p.Serial)
	if err != nil {
		return nil, nil, err
	}
	sensibility := p.Sensibility
	g := gamepad.New(port, &gamepad.Options{
		Sensibility: &sensibility,
		Wildcard:    wildcard,
		Logger:      logger,
		RawLogger:   rawLogger,
	})
	logger.Info("Reading joystick", "device", p.Serial.Device, "baud", p.Serial.Baud, "deadZone", g.DeadZone())
	return g, port, nil
}

// sourceCloseGrace bounds how long runPad waits for a read to unblock after
// the port was closed. Stdin cannot be unblocked by Close.
var sourceCloseGrace = time.Second

// runPad runs the gamepad loop until ctx is done or the source ends, then
// waits for the handlers. Closing the port unblocks a pending read; when it
// does not, runPad gives up on the read after sourceCloseGrace.
func runPad(ctx context.Context, g *gamepad.Gamepad, port io.Closer, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- g.Listen(ctx) }()

	var err error
	interrupted := false
	select {
	case err = <-done:
		interrupted = ctx.Err() != nil
	case <-ctx.Done():
		interrupted = true
		_ = port.Close()
		select {
		case err = <-done:
		case <-time.After(sourceCloseGrace):
			logger.Warn("Read did not unblock after closing the source, leaving it behind")
			return nil
		}
	}
	// Handlers repeating a held direction exit with ctx.
	cancel()
	_ = port.Close()
	if werr := g.Wait(); werr != nil {
		logger.Error("handler failed", "error", werr)
	}

	switch {
	case interrupted:
		return nil
	case errors.Is(err, gamepad.ErrSourceClosed):
		logger.Info("Joystick disconnected")
		return nil
	case err != nil:
		return fmt.Errorf("listen: %w", err)
	}
	return nil
}

package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Alia5/serialpad/gamepad"
	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/internal/server/api"
	"github.com/Alia5/serialpad/internal/server/api/handler"
)

// Serve runs the joystick loop together with the event API.
type Serve struct {
	Pad             PadConfig        `embed:""`
	ApiServerConfig api.ServerConfig `embed:"" prefix:"api."`
}

// Run is called by Kong when the serve command is executed.
func (s *Serve) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger)
}

// StartServer blocks until ctx is done or the joystick goes away.
func (s *Serve) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	g, port, err := s.Pad.openPad(logger, rawLogger, false)
	if err != nil {
		return err
	}

	apiSrv := api.New(s.ApiServerConfig, logger)
	registerRoutes(apiSrv.Router(), g, s.ApiServerConfig.StreamBuffer)
	if err := apiSrv.Start(); err != nil {
		logger.Error("failed to start API server", "error", err)
		_ = port.Close()
		return err
	}
	defer apiSrv.Close()

	return runPad(ctx, g, port, logger)
}

func registerRoutes(r *api.Router, g *gamepad.Gamepad, streamBuffer int) {
	r.Register("ping", handler.Ping(GetVersion()))
	r.Register("state", handler.State(g))
	r.Register("event/last", handler.LastEvent(g))
	r.Register("sensibility", handler.Sensibility(g))
	r.RegisterStream("events", handler.Events(g, streamBuffer))
}

// Package testing holds helpers shared by the API tests.
package testing

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/Alia5/serialpad/gamepad"
	"github.com/Alia5/serialpad/internal/server/api"
)

// QuietLogger discards everything.
func QuietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// StartAPIServer starts an API server on a random local port with a gamepad
// registered through register. When src is nil the gamepad is not listening
// and the test feeds it with Gamepad.Process; otherwise Listen runs on src
// until it ends. done stops the server.
func StartAPIServer(
	t *testing.T,
	src io.Reader,
	o *gamepad.Options,
	register func(r *api.Router, g *gamepad.Gamepad),
) (addr string, g *gamepad.Gamepad, done func()) {
	t.Helper()

	if o == nil {
		o = &gamepad.Options{}
	}
	if o.Logger == nil {
		o.Logger = QuietLogger()
	}
	if src == nil {
		g = gamepad.New(eofReader{}, o)
	} else {
		g = gamepad.New(src, o)
		go func() { _ = g.Listen(context.Background()) }()
	}

	srv := api.New(api.ServerConfig{Addr: "127.0.0.1:0", StreamBuffer: 16}, o.Logger)
	if register != nil {
		register(srv.Router(), g)
	}
	if err := srv.Start(); err != nil {
		t.Fatalf("failed to start API server: %v", err)
	}
	return srv.Addr(), g, srv.Close
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) { return 0, io.EOF }

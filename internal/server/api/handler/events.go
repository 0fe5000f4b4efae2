package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"unicode"

	"github.com/Alia5/serialpad/device/joystick"
	"github.com/Alia5/serialpad/gamepad"
	"github.com/Alia5/serialpad/internal/server/api"
	apierror "github.com/Alia5/serialpad/internal/server/api/error"
)

// Events returns a stream handler writing every dispatched event as one JSON
// line. An optional payload of space separated event names filters the
// stream. The stream ends when the client disconnects or the gamepad stops.
func Events(g *gamepad.Gamepad, buffer int) api.StreamHandlerFunc {
	return func(conn net.Conn, req *api.Request, logger *slog.Logger) error {
		defer conn.Close()

		filter, err := parseFilter(req.Payload)
		if err != nil {
			_ = json.NewEncoder(conn).Encode(apierror.ErrBadRequest(err.Error()))
			return err
		}

		events, cancel := g.Subscribe(buffer)
		defer cancel()

		// A client never sends after the request; a read returning means it left.
		gone := make(chan struct{})
		go func() {
			_, _ = io.Copy(io.Discard, conn)
			close(gone)
		}()

		enc := json.NewEncoder(conn)
		for {
			select {
			case <-gone:
				logger.Info("stream client disconnected")
				return nil
			case ev, ok := <-events:
				if !ok {
					logger.Info("gamepad stopped, closing stream")
					return nil
				}
				if !filter.match(ev) {
					continue
				}
				if err := enc.Encode(toEvent(g, ev)); err != nil {
					if errors.Is(err, net.ErrClosed) {
						return nil
					}
					return fmt.Errorf("write event: %w", err)
				}
			}
		}
	}
}

type eventFilter []string

func parseFilter(payload string) (eventFilter, error) {
	var f eventFilter
	for _, name := range strings.FieldsFunc(payload, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	}) {
		if !joystick.KnownEvent(name) {
			return nil, fmt.Errorf("unknown event name %q", name)
		}
		if name == joystick.EventAll {
			return nil, nil
		}
		f = append(f, name)
	}
	return f, nil
}

func (f eventFilter) match(ev *gamepad.Event) bool {
	if len(f) == 0 {
		return true
	}
	for _, name := range f {
		if ev.Is(name) {
			return true
		}
	}
	return false
}

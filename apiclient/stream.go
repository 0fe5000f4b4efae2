package apiclient

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/Alia5/serialpad/apitypes"
)

// EventStream is an open "events" stream.
type EventStream struct {
	conn net.Conn
	r    *bufio.Reader
}

// OpenEvents subscribes to dispatched events. With names given, only events
// carrying at least one of them are sent.
func (c *Client) OpenEvents(ctx context.Context, names ...string) (*EventStream, error) {
	if c.transport.mock != nil {
		return nil, fmt.Errorf("stream connections not supported with mock transport")
	}
	conn, err := c.transport.open(ctx, "events", strings.Join(names, " "), nil)
	if err != nil {
		return nil, err
	}
	return &EventStream{conn: conn, r: bufio.NewReader(conn)}, nil
}

// Next blocks until the next event arrives. A problem reply from the server
// is returned as *apitypes.ApiError.
func (s *EventStream) Next() (*apitypes.Event, error) {
	line, err := s.r.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	if problem, ok := parseProblem(line); ok {
		return nil, problem
	}
	var ev apitypes.Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &ev, nil
}

// Events pumps the stream into a channel until ctx is done or the stream
// ends. The error channel receives the terminal error, nil on a clean end.
func (s *EventStream) Events(ctx context.Context, size int) (<-chan *apitypes.Event, <-chan error) {
	out := make(chan *apitypes.Event, size)
	errCh := make(chan error, 1)
	go func() {
		defer close(out)
		stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })
		defer stop()
		for {
			ev, err := s.Next()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
					errCh <- nil
				} else {
					errCh <- err
				}
				return
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				errCh <- nil
				return
			}
		}
	}()
	return out, errCh
}

// Close ends the stream.
func (s *EventStream) Close() error {
	return s.conn.Close()
}

package apiclient_test

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"
	"time"

	apiclient "github.com/Alia5/serialpad/apiclient"
	apitypes "github.com/Alia5/serialpad/apitypes"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenEvents_NotSupportedWithMockTransport(t *testing.T) {
	c := testClient(map[string]string{}, nil)
	_, err := c.OpenEvents(context.Background())
	assert.ErrorContains(t, err, "not supported with mock transport")
}

// startStreamServer replies to one events request with the given lines.
func startStreamServer(t *testing.T, lines ...string) (addr string, request <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })
	req := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r, _ := bufio.NewReader(conn).ReadString('\x00')
		req <- r
		for _, l := range lines {
			_, _ = conn.Write([]byte(l + "\n"))
		}
	}()
	return ln.Addr().String(), req
}

func TestEventStreamNext(t *testing.T) {
	addr, req := startStreamServer(t,
		`{"id":1,"names":["switch","switch-press"],"state":{"x":0,"y":0,"switch":true,"button":false,"lastChannel":"SW"},`+
			`"frame":{"channel":"SW","param":1},"time":"2024-01-02T03:04:05Z","holding":false}`,
		`{"status":400,"title":"Bad Request","detail":"unknown event name \"jump\""}`,
	)

	stream, err := apiclient.New(addr).OpenEvents(context.Background(), "switch-press", "button")
	require.NoError(t, err)
	defer stream.Close()
	assert.Equal(t, "events switch-press button\x00", <-req)

	ev, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), ev.ID)
	assert.Equal(t, []string{"switch", "switch-press"}, ev.Names)
	assert.True(t, ev.State.Switch)
	assert.Equal(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), ev.Time.UTC())

	_, err = stream.Next()
	var problem *apitypes.ApiError
	require.ErrorAs(t, err, &problem)
	assert.Equal(t, 400, problem.Status)

	_, err = stream.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestEventStreamChannelEndsCleanly(t *testing.T) {
	addr, _ := startStreamServer(t,
		`{"id":4,"names":["button","button-press"],"state":{"x":0,"y":0,"switch":false,"button":true,"lastChannel":"BT"},`+
			`"frame":{"channel":"BT","param":1},"time":"2024-01-02T03:04:05Z","holding":false}`,
	)

	stream, err := apiclient.New(addr).OpenEvents(context.Background())
	require.NoError(t, err)
	defer stream.Close()

	events, errs := stream.Events(context.Background(), 1)
	var got []*apitypes.Event
	for ev := range events {
		got = append(got, ev)
	}
	require.Len(t, got, 1)
	assert.Equal(t, uint64(4), got[0].ID)
	assert.NoError(t, <-errs)
}

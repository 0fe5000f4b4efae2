package apiclient_test

import (
	"bufio"
	"net"
	"testing"
	"time"

	"github.com/Alia5/serialpad/apiclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startTestServer accepts one connection, records the request up to the
// terminator and replies with response.
func startTestServer(t *testing.T, response string) (addr string, gotReqLine <-chan string, closeFn func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	got := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		line, _ := bufio.NewReader(conn).ReadString('\x00')
		got <- line
		if response != "" {
			_, _ = conn.Write([]byte(response))
		}
	}()
	return ln.Addr().String(), got, func() { _ = ln.Close() }
}

func TestTransportPayloadEncoding(t *testing.T) {
	type S struct {
		A int    `json:"a"`
		B string `json:"b"`
	}
	cases := []struct {
		name         string
		path         string
		params       map[string]string
		payload      any
		expectedLine string
	}{
		{name: "nil payload", path: "echo", payload: nil, expectedLine: "echo\x00"},
		{name: "empty string payload", path: "echo", payload: "", expectedLine: "echo\x00"},
		{name: "bytes payload", path: "echo", payload: []byte("rawbytes"), expectedLine: "echo rawbytes\x00"},
		{name: "string payload", path: "sensibility", payload: "5", expectedLine: "sensibility 5\x00"},
		{name: "struct payload", path: "echo", payload: S{A: 1, B: "x"}, expectedLine: `echo {"a":1,"b":"x"}` + "\x00"},
		{name: "path params lowercased", path: "State/{Field}", params: map[string]string{"Field": "X"}, expectedLine: "state/x\x00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr, got, closeFn := startTestServer(t, "{}\n")
			defer closeFn()

			resp, err := apiclient.NewTransport(addr).Do(tc.path, tc.payload, tc.params)
			require.NoError(t, err)
			assert.Equal(t, "{}", resp)
			assert.Equal(t, tc.expectedLine, <-got)
		})
	}
}

func TestTransportEmptyReply(t *testing.T) {
	addr, _, closeFn := startTestServer(t, "")
	defer closeFn()

	resp, err := apiclient.NewTransport(addr).Do("events", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "", resp)
}

func TestTransportDialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	_ = ln.Close()

	tr := apiclient.NewTransportWithConfig(addr, &apiclient.Config{DialTimeout: 500 * time.Millisecond})
	_, err = tr.Do("ping", nil, nil)
	assert.ErrorContains(t, err, "dial")
}

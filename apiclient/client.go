// Package apiclient talks to the event API of "serialpad serve".
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/Alia5/serialpad/apitypes"
)

// Client wraps a Transport with typed calls.
type Client struct{ transport *Transport }

// New constructs a client for the API at addr (host:port).
func New(addr string) *Client { return &Client{transport: NewTransport(addr)} }

// NewWithConfig constructs a client with custom transport timeouts.
func NewWithConfig(addr string, cfg *Config) *Client {
	return &Client{transport: NewTransportWithConfig(addr, cfg)}
}

// WithTransport constructs a Client using a custom Transport, mostly for tests.
func WithTransport(t *Transport) *Client { return &Client{transport: t} }

func (c *Client) Ping(ctx context.Context) (*apitypes.PingResponse, error) {
	return call[apitypes.PingResponse](ctx, c, "ping", nil)
}

// State returns the live axis state, deadzone and hold of the gamepad.
func (c *Client) State(ctx context.Context) (*apitypes.StateResponse, error) {
	return call[apitypes.StateResponse](ctx, c, "state", nil)
}

// LastEvent returns the most recently dispatched event.
func (c *Client) LastEvent(ctx context.Context) (*apitypes.Event, error) {
	return call[apitypes.Event](ctx, c, "event/last", nil)
}

// Sensibility returns the active deadzone.
func (c *Client) Sensibility(ctx context.Context) (*apitypes.SensibilityResponse, error) {
	return call[apitypes.SensibilityResponse](ctx, c, "sensibility", nil)
}

// SetSensibility changes the sensibility level; the server clamps it to 1..10.
func (c *Client) SetSensibility(ctx context.Context, level int) (*apitypes.SensibilityResponse, error) {
	return call[apitypes.SensibilityResponse](ctx, c, "sensibility", strconv.Itoa(level))
}

func call[T any](ctx context.Context, c *Client, path string, payload any) (*T, error) {
	raw, err := c.transport.DoCtx(ctx, path, payload, nil)
	if err != nil {
		return nil, err
	}
	return parse[T](raw)
}

func parse[T any](data string) (*T, error) {
	if data == "" {
		return nil, errors.New("empty response")
	}
	if problem, ok := parseProblem([]byte(data)); ok {
		return nil, problem
	}
	var out T
	dec := json.NewDecoder(bytes.NewReader([]byte(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &out, nil
}

func parseProblem(data []byte) (*apitypes.ApiError, bool) {
	var problem apitypes.ApiError
	if err := json.Unmarshal(data, &problem); err == nil && (problem.Status != 0 || problem.Title != "") {
		return &problem, true
	}
	return nil, false
}

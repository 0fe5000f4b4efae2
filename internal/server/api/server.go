// Package api serves a small line-oriented TCP API for inspecting and
// steering a running gamepad.
//
// Request framing: `<path>[ SP <payload>] \x00`. Request routes answer with
// one JSON line and close the connection; stream routes keep it open.
package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"
)

// Server implements the event API.
type Server struct {
	config ServerConfig
	logger *slog.Logger
	router *Router

	mu      sync.Mutex
	ln      net.Listener
	closing bool
	conns   map[net.Conn]struct{}
	wg      sync.WaitGroup
}

// New creates a server; call Start to begin listening.
func New(config ServerConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config: config,
		logger: logger,
		router: NewRouter(),
		conns:  make(map[net.Conn]struct{}),
	}
}

// Router returns the router used by the API server so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Config returns the server configuration.
func (a *Server) Config() ServerConfig { return a.config }

// Addr returns the bound listen address, or the configured one before Start.
func (a *Server) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ln != nil {
		return a.ln.Addr().String()
	}
	return a.config.Addr
}

// Start listens on the configured address and serves incoming API commands.
func (a *Server) Start() error {
	ln, err := net.Listen("tcp", a.config.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.config.Addr, err)
	}
	a.mu.Lock()
	a.ln = ln
	a.mu.Unlock()
	a.logger.Info("API listening", "addr", ln.Addr().String())
	a.wg.Add(1)
	go a.serve(ln)
	return nil
}

// Close stops accepting, closes open connections and waits for their handlers.
// Connections accepted while closing are dropped.
func (a *Server) Close() {
	a.mu.Lock()
	a.closing = true
	if a.ln != nil {
		_ = a.ln.Close()
	}
	for c := range a.conns {
		_ = c.Close()
	}
	a.mu.Unlock()
	a.wg.Wait()
}

func (a *Server) serve(ln net.Listener) {
	defer a.wg.Done()
	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				a.logger.Info("API server stopped")
				return
			}
			a.logger.Error("API accept error", "error", err)
			return
		}
		if !a.track(c, true) {
			_ = c.Close()
			continue
		}
		go func() {
			defer a.wg.Done()
			defer a.track(c, false)
			a.handleConn(c)
		}()
	}
}

// track adds or removes c from the open connections. Adding fails once
// Close has started; a successful add also counts c in wg.
func (a *Server) track(c net.Conn, add bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !add {
		delete(a.conns, c)
		return true
	}
	if a.closing {
		return false
	}
	a.conns[c] = struct{}{}
	a.wg.Add(1)
	return true
}

func (a *Server) writeError(w io.Writer, err error) {
	problemJSON, _ := json.Marshal(WrapError(err))
	fmt.Fprintf(w, "%s\n", problemJSON)
}

func (a *Server) writeOK(w io.Writer, rest string) {
	fmt.Fprintf(w, "%s\n", rest)
}

func (a *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	connLogger := a.logger.With("remote", conn.RemoteAddr().String())

	if a.config.ReadTimeout > 0 {
		_ = conn.SetReadDeadline(time.Now().Add(a.config.ReadTimeout))
	}
	reqData, err := bufio.NewReader(conn).ReadString('\x00')
	if err != nil {
		if errors.Is(err, io.EOF) {
			connLogger.Error("api incomplete request (no null terminator)")
		} else {
			connLogger.Error("read api data", "error", err)
		}
		return
	}
	_ = conn.SetReadDeadline(time.Time{})

	path, payload, _ := strings.Cut(strings.TrimSuffix(reqData, "\x00"), " ")
	path = strings.ToLower(strings.TrimSpace(path))
	if path == "" {
		connLogger.Error("api empty path")
		a.writeError(conn, ErrBadRequest("empty path"))
		return
	}
	connLogger.Debug("api cmd", "path", path)

	if h, params := a.router.Match(path); h != nil {
		req := &Request{Ctx: connCtx, Params: params, Payload: payload}
		res := &Response{}
		if err := h(req, res, connLogger); err != nil {
			connLogger.Error("api handler error", "path", path, "error", err)
			a.writeError(conn, err)
			return
		}
		a.writeOK(conn, res.JSON)
		return
	}

	if sh, params := a.router.MatchStream(path); sh != nil {
		connLogger.Info("api stream begin", "path", path)
		req := &Request{Ctx: connCtx, Params: params, Payload: payload}
		if err := sh(conn, req, connLogger); err != nil {
			connLogger.Error("api stream handler error", "path", path, "error", err)
		}
		connLogger.Info("api stream end", "path", path)
		return
	}

	connLogger.Error("api unknown path", "path", path)
	a.writeError(conn, ErrNotFound(fmt.Sprintf("unknown path: %s", path)))
}

package api

import "time"

// ServerConfig configures the event API of the serve command.
type ServerConfig struct {
	Addr         string        `help:"Event API listen address" default:"localhost:3243" env:"SERIALPAD_API_ADDR"`
	StreamBuffer int           `help:"Events buffered per stream client before dropping" default:"64" env:"SERIALPAD_API_STREAM_BUFFER"`
	ReadTimeout  time.Duration `help:"Time a client has to send its request" default:"5s" env:"SERIALPAD_API_READ_TIMEOUT"`
}

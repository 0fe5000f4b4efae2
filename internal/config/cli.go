// Package config declares the command line of serialpad.
package config

import (
	"io"

	"github.com/Alia5/serialpad/internal/cmd"
	"github.com/Alia5/serialpad/internal/log"
	"github.com/Alia5/serialpad/internal/serialport"
)

// CLI is the root kong model. Values come from flags, SERIALPAD_ env vars and
// JSON/YAML/TOML config files, in that order of precedence.
type CLI struct {
	Log        log.Config `embed:"" prefix:"log."`
	ConfigFile string     `name:"config" help:"Path to a JSON, YAML or TOML configuration file" type:"path" env:"SERIALPAD_CONFIG"`

	Listen  cmd.Listen        `cmd:"" help:"Print the events decoded from the joystick"`
	Watch   cmd.Watch         `cmd:"" help:"Styled live view, repeating held directions"`
	Serve   cmd.Serve         `cmd:"" help:"Read the joystick and serve the event API"`
	Emulate cmd.Emulate       `cmd:"" help:"Emulate the joystick with the keyboard"`
	Tail    cmd.Tail          `cmd:"" help:"Print the event stream of a running serve"`
	State   cmd.State         `cmd:"" help:"Print the state of a running serve"`
	Config  cmd.ConfigCommand `cmd:"" help:"Configuration file helpers"`
}

// LogStdout picks the writer for non-error logs and the trace frame dump.
// When emulate writes protocol bytes to stdout, logs move to stderr.
func (c *CLI) LogStdout(command string, stdout, stderr io.Writer) io.Writer {
	if command == "emulate" && c.Emulate.Serial.Device == serialport.Stdio {
		return stderr
	}
	return stdout
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/Alia5/serialpad/device/joystick"
	"github.com/Alia5/serialpad/gamepad"
	"github.com/Alia5/serialpad/internal/log"
)

// Watch shows a styled live view of the joystick. A held direction is
// printed again every --repeat until it is released or superseded.
type Watch struct {
	Pad    PadConfig     `embed:""`
	Repeat time.Duration `help:"Interval between repeats of a held direction" default:"250ms" env:"SERIALPAD_WATCH_REPEAT"`
}

type watchStyles struct {
	direction lipgloss.Style
	center    lipgloss.Style
	pressed   lipgloss.Style
	released  lipgloss.Style
	state     lipgloss.Style
}

func newWatchStyles() watchStyles {
	return watchStyles{
		direction: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		center:    lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(6)),
		pressed:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(2)),
		released:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
		state:     lipgloss.NewStyle().Faint(true),
	}
}

var arrows = map[string]string{
	joystick.EventMoveLeft:  "←",
	joystick.EventMoveRight: "→",
	joystick.EventMoveUp:    "↑",
	joystick.EventMoveDown:  "↓",
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, port, err := w.Pad.openPad(logger, rawLogger, false)
	if err != nil {
		return err
	}
	v := &watchView{out: os.Stdout, styles: newWatchStyles()}
	if err := v.register(ctx, g, w.Repeat); err != nil {
		_ = port.Close()
		return err
	}
	return runPad(ctx, g, port, logger)
}

type watchView struct {
	mu     sync.Mutex
	out    io.Writer
	styles watchStyles
}

func (v *watchView) register(ctx context.Context, g *gamepad.Gamepad, repeat time.Duration) error {
	if repeat <= 0 {
		return fmt.Errorf("--repeat must be positive, got %s", repeat)
	}
	for _, dir := range []string{joystick.EventMoveLeft, joystick.EventMoveRight, joystick.EventMoveUp, joystick.EventMoveDown} {
		dir := dir
		err := g.On(dir, func(ev *gamepad.Event) {
			gamepad.Repeat(ctx, g, ev, repeat, func(ev *gamepad.Event) {
				v.line(v.styles.direction.Render(arrows[dir]+" "+dir), ev)
			})
		})
		if err != nil {
			return err
		}
	}
	handlers := map[string]func(*gamepad.Event){
		joystick.EventMoveCenter: func(ev *gamepad.Event) {
			v.line(v.styles.center.Render("· center"), ev)
		},
		joystick.EventSwitchPress: func(ev *gamepad.Event) {
			v.line(v.styles.pressed.Render(" SWITCH ON "), ev)
		},
		joystick.EventSwitchRelease: func(ev *gamepad.Event) {
			v.line(v.styles.released.Render(" SWITCH OFF "), ev)
		},
		joystick.EventButtonPress: func(ev *gamepad.Event) {
			v.line(v.styles.pressed.Render(" BUTTON "), ev)
		},
		joystick.EventButtonRelease: func(ev *gamepad.Event) {
			v.line(v.styles.released.Render(" button "), ev)
		},
	}
	for _, name := range joystick.EventNames {
		if h, ok := handlers[name]; ok {
			if err := g.On(name, h); err != nil {
				return err
			}
		}
	}
	return nil
}

func (v *watchView) line(label string, ev *gamepad.Event) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fmt.Fprintf(v.out, "%s %s\n", label, v.styles.state.Render(fmt.Sprintf("#%d %s", ev.ID, ev.State)))
}

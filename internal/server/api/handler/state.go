package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/serialpad/apitypes"
	"github.com/Alia5/serialpad/gamepad"
	"github.com/Alia5/serialpad/internal/server/api"
	apierror "github.com/Alia5/serialpad/internal/server/api/error"
)

// State returns a handler reporting the live axis state, deadzone and hold.
func State(g *gamepad.Gamepad) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		held, _ := g.Held()
		payload := apitypes.StateResponse{
			State:    g.State(),
			DeadZone: g.DeadZone(),
			Held:     held,
		}
		if last := g.LastEvent(); last != nil {
			payload.LastID = last.ID
		}
		return writeJSON(res, payload)
	}
}

// LastEvent returns a handler reporting the most recently dispatched event.
func LastEvent(g *gamepad.Gamepad) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		ev := g.LastEvent()
		if ev == nil {
			return apierror.ErrNotFound("no event dispatched yet")
		}
		return writeJSON(res, toEvent(g, ev))
	}
}

func toEvent(g *gamepad.Gamepad, ev *gamepad.Event) apitypes.Event {
	return apitypes.Event{
		ID:      ev.ID,
		Names:   ev.Names,
		State:   ev.State,
		Frame:   ev.Frame,
		Time:    ev.Time,
		Holding: g.IsHolding(ev),
	}
}

func writeJSON(res *api.Response, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return apierror.ErrInternal(err.Error())
	}
	res.JSON = string(b)
	return nil
}

package handler

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/Alia5/serialpad/apitypes"
	"github.com/Alia5/serialpad/gamepad"
	"github.com/Alia5/serialpad/internal/server/api"
	apierror "github.com/Alia5/serialpad/internal/server/api/error"
)

// Sensibility returns a handler that reports the active deadzone, or sets a
// new sensibility level when the payload carries one. Levels are clamped.
func Sensibility(g *gamepad.Gamepad) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		payload := strings.TrimSpace(req.Payload)
		if payload == "" {
			return writeJSON(res, apitypes.SensibilityResponse{DeadZone: g.DeadZone()})
		}
		level, err := strconv.Atoi(payload)
		if err != nil {
			return apierror.ErrBadRequest(fmt.Sprintf("invalid sensibility: %q", payload))
		}
		dz := g.SetSensibility(level)
		logger.Info("sensibility changed", "requested", level, "sensibility", dz.Sensibility, "low", dz.Low, "high", dz.High)
		return writeJSON(res, apitypes.SensibilityResponse{DeadZone: dz})
	}
}

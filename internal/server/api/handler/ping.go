package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/Alia5/serialpad/apitypes"
	"github.com/Alia5/serialpad/internal/server/api"
)

// Ping returns a handler identifying the server.
func Ping(version string) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		b, err := json.Marshal(apitypes.PingResponse{Server: "serialpad", Version: version})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}

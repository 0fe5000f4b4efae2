package apitypes

import (
	"fmt"
	"time"

	"github.com/Alia5/serialpad/device/joystick"
)

// ApiError represents an RFC 7807 (problem+json) error response.
type ApiError struct {
	// Status is the HTTP-style status code (e.g., 400, 404, 500)
	Status int `json:"status"`
	// Title is a short, human-readable summary of the problem type
	Title string `json:"title"`
	// Detail is a human-readable explanation specific to this occurrence
	Detail string `json:"detail"`
}

func (e ApiError) Error() string {
	if e.Status == 0 && e.Title == "" {
		return "unknown error"
	}
	if e.Status == 0 {
		return fmt.Sprintf("%s: %s", e.Title, e.Detail)
	}
	return fmt.Sprintf("%d %s: %s", e.Status, e.Title, e.Detail)
}

// --

type PingResponse struct {
	Server  string `json:"server"`
	Version string `json:"version"`
}

type StateResponse struct {
	State    joystick.AxisState `json:"state"`
	DeadZone joystick.DeadZone  `json:"deadZone"`
	// Held is the id of the event holding a direction, 0 when idle.
	Held uint64 `json:"held"`
	// LastID is the id of the last dispatched event, 0 before the first.
	LastID uint64 `json:"lastId"`
}

type SensibilityResponse struct {
	DeadZone joystick.DeadZone `json:"deadZone"`
}

// Event is one dispatched event as sent by "event/last" and the "events" stream.
type Event struct {
	ID    uint64             `json:"id"`
	Names []string           `json:"names"`
	State joystick.AxisState `json:"state"`
	Frame joystick.Frame     `json:"frame"`
	Time  time.Time          `json:"time"`
	// Holding is true when the event held its direction at the time it was sent.
	Holding bool `json:"holding"`
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NXFinity/beamify-application/internal/core/domain"
)

// SessionHandler exposes the gate snapshot pages read to decide what to render.
type SessionHandler struct{}

func NewSessionHandler() *SessionHandler {
	return &SessionHandler{}
}

type sessionResponse struct {
	User         *domain.User `json:"user"`
	IsAdmin      bool         `json:"isAdmin"`
	Checked      bool         `json:"checked"`
	Disconnected bool         `json:"disconnected"`
}

// Snapshot returns the resolved gate for this request. Runs behind the
// SessionGate middleware, which has already done the backend check.
func (h *SessionHandler) Snapshot(c echo.Context) error {
	gate, err := ctxGate(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sessionResponse{
		User:         gate.User,
		IsAdmin:      gate.IsAdmin,
		Checked:      gate.Checked,
		Disconnected: gate.Disconnected,
	})
}

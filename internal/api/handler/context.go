package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NXFinity/beamify-application/internal/api/middleware"
	"github.com/NXFinity/beamify-application/internal/core/domain"
)

// ctxGate extracts the gate snapshot injected by the SessionGate middleware
// and fast-fails when a handler that depends on it was mounted outside the
// gated route tree.
func ctxGate(c echo.Context) (domain.Gate, error) {
	gate, ok := middleware.GateFromContext(c)
	if !ok {
		return domain.Gate{}, echo.NewHTTPError(http.StatusInternalServerError, "session gate did not run")
	}
	return gate, nil
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/NXFinity/beamify-application/internal/core/ports"
)

const maxAuditPage = 500

// AuditHandler exposes the session audit trail to the admin console.
type AuditHandler struct {
	repo ports.AuditRepository
}

func NewAuditHandler(repo ports.AuditRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// Recent lists the newest audit events, newest first. Admin only; the route
// is mounted behind RequireRoles.
func (h *AuditHandler) Recent(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > maxAuditPage {
		limit = 50
	}

	events, err := h.repo.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"events": events})
}

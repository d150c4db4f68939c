package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NXFinity/beamify-application/internal/core/ports"
)

// BootstrapHandler serves the one-time administrator setup page's endpoints.
// These routes skip the session gate entirely: the whole point of the page is
// that no session can exist yet.
type BootstrapHandler struct {
	bootstrap ports.BootstrapService
}

func NewBootstrapHandler(bootstrap ports.BootstrapService) *BootstrapHandler {
	return &BootstrapHandler{bootstrap: bootstrap}
}

type bootstrapStatusResponse struct {
	AdminExists bool `json:"adminExists"`
}

// Status reports whether the setup already happened, so the page can redirect
// away once an administrator exists. A failed probe reads as "not yet".
func (h *BootstrapHandler) Status(c echo.Context) error {
	exists, err := h.bootstrap.AdminExists(c.Request().Context())
	if err != nil {
		exists = false
	}
	return c.JSON(http.StatusOK, bootstrapStatusResponse{AdminExists: exists})
}

type initAdminRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Create registers the first SYSTEM_ADMINISTRATOR account.
func (h *BootstrapHandler) Create(c echo.Context) error {
	var req initAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	in := ports.InitAdminInput{Username: req.Username, Email: req.Email, Password: req.Password}
	if err := h.bootstrap.CreateAdmin(c.Request().Context(), in); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "System Administrator account created"})
}

// Wait long-polls until the backend confirms the administrator account, then
// answers like Status. The poll runs on the service's fixed interval and is
// torn down when the browser abandons the request.
func (h *BootstrapHandler) Wait(c echo.Context) error {
	if err := h.bootstrap.WaitForAdmin(c.Request().Context()); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			// Client went away; nothing left to answer.
			return nil
		}
		return err
	}
	return c.JSON(http.StatusOK, bootstrapStatusResponse{AdminExists: true})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// appShell is the minimal document the browser boots the storefront bundle
// from. The bundle itself is deployed alongside the gateway under /assets.
const appShell = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Beamify</title>
<link rel="stylesheet" href="/assets/app.css">
</head>
<body>
<div id="root"></div>
<script src="/assets/app.js"></script>
</body>
</html>
`

// PageHandler serves the application shell for every page navigation. By the
// time it runs, the session gate has already decided the request is allowed
// to render here.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

func (h *PageHandler) Page(c echo.Context) error {
	return c.HTML(http.StatusOK, appShell)
}

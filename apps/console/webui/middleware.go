package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core/session"
)

// requireSession redirects unauthenticated visitors to the login screen.
// Role gating happens per screen against the policy table; this only
// guarantees a session exists.
func requireSession(store *session.Store) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if !store.Current().Authenticated() {
				return ctx.Redirect(http.StatusFound, "/login")
			}
			return next(ctx)
		}
	}
}

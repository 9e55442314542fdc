package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/policy"
	"github.com/edusuite/campus-console/core/session"
	"github.com/edusuite/campus-console/services/gateway"
)

// newUIErrorHandler renders errors that escape the handlers. Most screens
// handle their own gateway failures inline; what lands here is either an
// unknown route, an expired backend session, or a genuine server error.
// signalShutdown is called whenever a core shutdown error is caught.
func newUIErrorHandler(logger core.Logger, store *session.Store, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		code := http.StatusInternalServerError
		message := "something went wrong"

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			code = origErr.Code
			if msg, ok := origErr.Message.(string); ok {
				message = msg
			}
		case *gateway.APIError:
			if gateway.IsUnauthorized(err) {
				// the backend no longer honors the credential; force re-login
				store.Logout()
				if !ctx.Response().Committed {
					_ = ctx.Redirect(http.StatusFound, "/login")
				}
				return
			}
			code = http.StatusBadGateway
			message = origErr.Message
		default:
			logger.Error("webui: unhandled error", errors.Wrap(err, "handling request"), store.Current())
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		if ctx.Echo().Debug {
			message = err.Error()
		}

		if ctx.Response().Committed {
			return
		}
		sess := store.Current()
		p := Page{
			Title: http.StatusText(code),
			Sess:  sess,
			Nav:   policy.Nav(sess.Role),
			Error: message,
		}
		if rErr := ctx.Render(code, "error", p); rErr != nil {
			ctx.Echo().Logger.Error(rErr)
		}
	}
}

package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/policy"
)

type authUI struct {
	uiBase
}

func registerAuthUI(e *echo.Echo, base uiBase) {
	ui := authUI{base}
	e.GET("/", ui.landing)
	e.GET("/login", ui.loginForm)
	e.POST("/login", ui.login)
	e.POST("/logout", ui.logout)
}

// landing is the public entry point; an authenticated operator is sent
// straight to their role's designated screen.
func (ui authUI) landing(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if sess.Authenticated() {
		return ctx.Redirect(http.StatusFound, policy.Landing(sess.Role))
	}
	return ctx.Render(http.StatusOK, "landing", ui.page("Welcome"))
}

func (ui authUI) loginForm(ctx echo.Context) error {
	if ui.deps.Store.Current().Authenticated() {
		return ctx.Redirect(http.StatusFound, policy.Landing(ui.deps.Store.Current().Role))
	}
	p := ui.page("Portal Login")
	p.Data = loginForm("")
	return ctx.Render(http.StatusOK, "login", p)
}

func (ui authUI) login(ctx echo.Context) error {
	identifier := core.CleanString(ctx.FormValue("identifier"))
	secret := ctx.FormValue("secret")

	if identifier == "" || secret == "" {
		p := ui.page("Portal Login")
		p.Error = "email/USN and password are required"
		p.Data = loginForm(identifier)
		return ctx.Render(http.StatusBadRequest, "login", p)
	}

	if err := ui.deps.Store.Login(ctx.Request().Context(), ui.deps.API, identifier, secret); err != nil {
		// recoverable: prior state untouched, entered identifier preserved
		p := ui.page("Portal Login")
		p.Error = "Login failed: invalid credentials or backend error."
		p.Data = loginForm(identifier)
		return ctx.Render(http.StatusUnauthorized, "login", p)
	}

	return ctx.Redirect(http.StatusFound, policy.Landing(ui.deps.Store.Current().Role))
}

// logout is a hard reset, not a network call.
func (ui authUI) logout(ctx echo.Context) error {
	ui.deps.Store.Logout()
	return ctx.Redirect(http.StatusFound, "/login")
}

func loginForm(identifier string) FormData {
	return FormData{
		Action:      "/login",
		SubmitLabel: "Login",
		Fields: []Field{
			{Label: "Email or USN", Name: "identifier", Type: "text", Value: identifier, Required: true},
			{Label: "Password", Name: "secret", Type: "password", Required: true},
		},
	}
}

package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core/campus"
)

type dashboardUI struct {
	uiBase
}

func registerDashboardUI(g *echo.Group, base uiBase) {
	ui := dashboardUI{base}
	g.GET("/home", ui.home)
}

// home shows the fresh-notification ticker shared by every role.
func (ui dashboardUI) home(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	p := ui.page("Home")

	notes, err := ui.deps.API.NotificationsForRecipient(ctx.Request().Context(), sess.SubjectID)
	if err != nil {
		ui.deps.Logger.Warn("dashboard: loading notifications", err)
		p.Error = userMessage(err)
		return ctx.Render(http.StatusOK, "dashboard", p)
	}

	fresh := campus.FreshNotifications(notes, timeNow())
	p.Data = struct {
		Notifications []campus.Notification
		Unread        int
	}{fresh, campus.UnreadCount(fresh)}
	return ctx.Render(http.StatusOK, "dashboard", p)
}

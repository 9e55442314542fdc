package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type notificationUI struct {
	uiBase
}

func registerNotificationUI(g *echo.Group, base uiBase) {
	ui := notificationUI{base}
	g.GET("/notifications", ui.list)
	g.GET("/notifications/new", ui.createForm)
	g.POST("/notifications/new", ui.create)
	g.GET("/notifications/:id", ui.view)
}

// list shows only fresh notifications: the 72-hour window is a display
// filter applied on every load, not a deletion.
func (ui notificationUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapNotifications)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Notifications")

	var notes []campus.Notification
	var err error
	if perm.OwnOnly {
		notes, err = ui.deps.API.NotificationsForRecipient(ctx.Request().Context(), sess.SubjectID)
	} else {
		notes, err = ui.deps.API.Notifications(ctx.Request().Context())
	}
	if err != nil {
		p.Data = listError(err, "/notifications")
		return ctx.Render(http.StatusOK, "list", p)
	}

	fresh := campus.FreshNotifications(notes, timeNow())

	rows := make([]Row, 0, len(fresh))
	for _, n := range fresh {
		read := "unread"
		if n.ReadStatus {
			read = "read"
		}
		rows = append(rows, Row{
			Cells:    []string{n.Title, n.Type, n.CreatedAt.Local().Format("2006-01-02 15:04"), read},
			ViewPath: "/notifications/" + itoa(n.ID),
		})
	}

	data := ListData{
		Columns:   []string{"Title", "Type", "Created", "Status"},
		Rows:      rows,
		EmptyText: "No active notifications (items expire after 72 hours).",
	}
	if perm.Create {
		data.CreatePath = "/notifications/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

// view marks the notification read on load, the one side-effecting view
// screen in the console.
func (ui notificationUI) view(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapNotifications).View {
		return ui.denied(ctx)
	}

	id := ctx.Param("id")
	n, err := ui.deps.API.Notification(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	if !n.ReadStatus {
		if err := ui.deps.API.MarkNotificationRead(ctx.Request().Context(), id); err != nil {
			ui.deps.Logger.Warn("notifications: marking read", err)
		}
	}

	p := ui.page(n.Title)
	p.Data = DetailData{
		BackPath: "/notifications",
		Rows: []KV{
			{"Title", n.Title},
			{"Type", n.Type},
			{"Message", n.Message},
			{"Created", n.CreatedAt.Local().Format("2006-01-02 15:04")},
		},
	}
	return ctx.Render(http.StatusOK, "detail", p)
}

func (ui notificationUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapNotifications).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Create Notification")
	p.Data = notificationForm(campus.NewNotification{Type: "Info"})
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui notificationUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapNotifications).Create {
		return ui.denied(ctx)
	}
	payload := campus.NewNotification{
		Title:       core.CleanString(ctx.FormValue("title")),
		Message:     core.CleanString(ctx.FormValue("message")),
		Type:        core.CleanString(ctx.FormValue("type")),
		RecipientID: formInt(ctx, "recipientId"),
	}
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	if err := ui.deps.API.CreateNotification(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/notifications")
}

func notificationForm(payload campus.NewNotification) FormData {
	types := []string{"Info", "Alert", "Warning", "Success"}
	opts := make([]Option, 0, len(types))
	for _, t := range types {
		opts = append(opts, Option{Value: t, Label: t, Selected: t == payload.Type})
	}
	return FormData{
		Action:      "/notifications/new",
		SubmitLabel: "Send Notification",
		CancelPath:  "/notifications",
		Fields: []Field{
			{Label: "Title", Name: "title", Type: "text", Value: payload.Title, Required: true},
			{Label: "Message", Name: "message", Type: "textarea", Value: payload.Message, Required: true},
			{Label: "Type", Name: "type", Type: "select", Options: opts, Required: true},
			{Label: "Recipient ID (blank for all)", Name: "recipientId", Type: "number", Value: itoa(payload.RecipientID)},
		},
	}
}

func (ui notificationUI) rerender(ctx echo.Context, payload campus.NewNotification, err error) error {
	p := ui.page("Create Notification")
	form := notificationForm(payload)
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type timetableUI struct {
	uiBase
}

func registerTimetableUI(g *echo.Group, base uiBase) {
	ui := timetableUI{base}
	g.GET("/timetable", ui.weekly)
	g.GET("/timetable/new", ui.createForm)
	g.POST("/timetable/new", ui.create)
	g.POST("/timetable/:id/delete", ui.destroy)
}

// WeeklyData drives the Mon-Fri timetable grid.
type WeeklyData struct {
	Days       [5]string
	Grouped    map[string][]campus.TimetableSlot
	CreatePath string
	CanDelete  bool

	LoadErr   string
	RetryPath string
}

// weekly renders the full week grid; ?class=<id> narrows to one class.
func (ui timetableUI) weekly(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapTimetable)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Timetable")

	var slots []campus.TimetableSlot
	var err error
	if classID := core.CleanString(ctx.QueryParam("class")); classID != "" {
		slots, err = ui.deps.API.TimetableByClass(ctx.Request().Context(), classID)
	} else {
		slots, err = ui.deps.API.Timetable(ctx.Request().Context())
	}
	if err != nil {
		p.Data = WeeklyData{LoadErr: userMessage(err), RetryPath: "/timetable"}
		return ctx.Render(http.StatusOK, "weekly", p)
	}

	data := WeeklyData{
		Days:      campus.Weekdays,
		Grouped:   campus.GroupWeekly(slots),
		CanDelete: perm.Delete,
	}
	if perm.Create {
		data.CreatePath = "/timetable/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "weekly", p)
}

func (ui timetableUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapTimetable).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Add Timetable Slot")
	form, err := ui.form(ctx, campus.NewTimetableSlot{})
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui timetableUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapTimetable).Create {
		return ui.denied(ctx)
	}
	payload := campus.NewTimetableSlot{
		ClassID:   formInt(ctx, "classId"),
		FacultyID: formInt(ctx, "facultyId"),
		Subject:   core.CleanString(ctx.FormValue("subject")),
		Date:      core.CleanString(ctx.FormValue("date")),
		StartTime: core.CleanString(ctx.FormValue("startTime")),
		EndTime:   core.CleanString(ctx.FormValue("endTime")),
	}
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	if err := ui.deps.API.CreateTimetableSlot(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/timetable")
}

func (ui timetableUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapTimetable).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteTimetableSlot(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/timetable")
}

func (ui timetableUI) form(ctx echo.Context, payload campus.NewTimetableSlot) (FormData, error) {
	classes, err := ui.deps.API.Classes(ctx.Request().Context())
	var faculty []campus.Faculty
	if err == nil {
		faculty, err = ui.deps.API.Faculties(ctx.Request().Context())
	}
	return FormData{
		Action:      "/timetable/new",
		SubmitLabel: "Add Slot",
		CancelPath:  "/timetable",
		Fields: []Field{
			{Label: "Class", Name: "classId", Type: "select", Options: classOptions(classes, payload.ClassID), Required: true},
			{Label: "Faculty", Name: "facultyId", Type: "select", Options: facultyOptions(faculty, payload.FacultyID), Required: true},
			{Label: "Subject", Name: "subject", Type: "text", Value: payload.Subject, Required: true},
			{Label: "Date", Name: "date", Type: "date", Value: payload.Date, Required: true},
			{Label: "Start Time", Name: "startTime", Type: "time", Value: payload.StartTime, Required: true},
			{Label: "End Time", Name: "endTime", Type: "time", Value: payload.EndTime, Required: true},
		},
	}, err
}

func (ui timetableUI) rerender(ctx echo.Context, payload campus.NewTimetableSlot, err error) error {
	p := ui.page("Add Timetable Slot")
	form, formErr := ui.form(ctx, payload)
	if formErr != nil {
		ui.deps.Logger.Warn("timetable: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

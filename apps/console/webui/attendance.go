package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type attendanceUI struct {
	uiBase
}

func registerAttendanceUI(g *echo.Group, base uiBase) {
	ui := attendanceUI{base}
	g.GET("/attendance", ui.list)
	g.GET("/attendance/new", ui.createForm)
	g.POST("/attendance/new", ui.create)
	g.GET("/attendance/:id/edit", ui.editForm)
	g.POST("/attendance/:id/edit", ui.update)
	g.POST("/attendance/:id/delete", ui.destroy)
}

// list shows the records scoped to the role, with the derived summary:
// students see their own history, faculty their classes, admins all.
func (ui attendanceUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapAttendance)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Attendance")

	var records []campus.AttendanceRecord
	var err error
	switch {
	case sess.Role == policy.RoleStudent:
		records, err = ui.deps.API.AttendanceByStudent(ctx.Request().Context(), sess.StudentID)
	case perm.OwnOnly:
		records, err = ui.facultyRecords(ctx, sess.SubjectID)
	default:
		records, err = ui.deps.API.Attendance(ctx.Request().Context())
	}
	if err != nil {
		p.Data = listError(err, "/attendance")
		return ctx.Render(http.StatusOK, "list", p)
	}

	summary := campus.SummarizeAttendance(records)

	rows := make([]Row, 0, len(records))
	for _, r := range records {
		status := "ABSENT"
		if r.Present {
			status = "PRESENT"
		}
		row := Row{Cells: []string{r.Date, itoa(r.StudentID), itoa(r.ClassID), status, r.Remarks}}
		if perm.Edit {
			row.EditPath = "/attendance/" + itoa(r.ID) + "/edit"
		}
		if perm.Delete {
			row.DeletePath = "/attendance/" + itoa(r.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"Date", "Student", "Class", "Status", "Remarks"},
		Rows:      rows,
		EmptyText: "No attendance records.",
		Summary:   &summary,
	}
	if perm.Create {
		data.CreatePath = "/attendance/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

// facultyRecords resolves the faculty's assigned classes first, then
// collects the attendance of each class. A faculty user id is never a
// class id.
func (ui attendanceUI) facultyRecords(ctx echo.Context, facultyID string) ([]campus.AttendanceRecord, error) {
	classes, err := ui.deps.API.ClassesByFaculty(ctx.Request().Context(), facultyID)
	if err != nil {
		return nil, err
	}
	var records []campus.AttendanceRecord
	for _, cl := range classes {
		recs, err := ui.deps.API.AttendanceByClass(ctx.Request().Context(), itoa(cl.ID))
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}
	return records, nil
}

func (ui attendanceUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapAttendance).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Mark Attendance")
	payload := campus.NewAttendance{Date: timeNow().Format(core.DateLayout), Present: true}
	form, err := ui.form(ctx, payload)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui attendanceUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapAttendance).Create {
		return ui.denied(ctx)
	}
	payload := campus.NewAttendance{
		StudentID: formInt(ctx, "studentId"),
		ClassID:   formInt(ctx, "classId"),
		Date:      core.CleanString(ctx.FormValue("date")),
		Present:   formBool(ctx, "present"),
		Remarks:   core.CleanString(ctx.FormValue("remarks")),
	}
	// today-only is checked client-side before any network call
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	if err := ui.deps.API.MarkAttendance(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/attendance")
}

func (ui attendanceUI) editForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapAttendance).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	rec, err := ui.deps.API.AttendanceRecord(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	p := ui.page("Edit Attendance")
	p.Data = attendanceEditForm(id, rec, campus.UpdateAttendance{Present: rec.Present, Remarks: rec.Remarks})
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui attendanceUI) update(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapAttendance).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	payload := campus.UpdateAttendance{
		Present: formBool(ctx, "present"),
		Remarks: core.CleanString(ctx.FormValue("remarks")),
	}
	if err := payload.Validate(); err != nil {
		return ui.rerenderEdit(ctx, id, payload, err)
	}
	if err := ui.deps.API.UpdateAttendance(ctx.Request().Context(), id, payload); err != nil {
		return ui.rerenderEdit(ctx, id, payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/attendance")
}

func (ui attendanceUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapAttendance).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteAttendance(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/attendance")
}

func (ui attendanceUI) form(ctx echo.Context, payload campus.NewAttendance) (FormData, error) {
	students, err := ui.deps.API.Students(ctx.Request().Context())
	var classes []campus.Class
	if err == nil {
		classes, err = ui.deps.API.Classes(ctx.Request().Context())
	}
	return FormData{
		Action:      "/attendance/new",
		SubmitLabel: "Mark Attendance",
		CancelPath:  "/attendance",
		Fields: []Field{
			{Label: "Student", Name: "studentId", Type: "select", Options: studentOptions(students, payload.StudentID), Required: true},
			{Label: "Class", Name: "classId", Type: "select", Options: classOptions(classes, payload.ClassID), Required: true},
			{Label: "Date (today only)", Name: "date", Type: "date", Value: payload.Date, Required: true},
			{Label: "Present", Name: "present", Type: "checkbox", Checked: payload.Present},
			{Label: "Remarks", Name: "remarks", Type: "text", Value: payload.Remarks},
		},
	}, err
}

// attendanceEditForm only opens the correctable fields; the identity of
// the record (student, class, date) stays read-only.
func attendanceEditForm(id string, rec campus.AttendanceRecord, payload campus.UpdateAttendance) FormData {
	return FormData{
		Action:      "/attendance/" + id + "/edit",
		SubmitLabel: "Save Attendance",
		CancelPath:  "/attendance",
		Fields: []Field{
			{Label: "Student", Name: "studentId", Type: "text", Value: itoa(rec.StudentID), ReadOnly: true},
			{Label: "Class", Name: "classId", Type: "text", Value: itoa(rec.ClassID), ReadOnly: true},
			{Label: "Date", Name: "date", Type: "text", Value: rec.Date, ReadOnly: true},
			{Label: "Present", Name: "present", Type: "checkbox", Checked: payload.Present},
			{Label: "Remarks", Name: "remarks", Type: "text", Value: payload.Remarks},
		},
	}
}

func (ui attendanceUI) rerenderEdit(ctx echo.Context, id string, payload campus.UpdateAttendance, err error) error {
	p := ui.page("Edit Attendance")
	rec, recErr := ui.deps.API.AttendanceRecord(ctx.Request().Context(), id)
	if recErr != nil {
		ui.deps.Logger.Warn("attendance: reloading record", recErr)
	}
	form := attendanceEditForm(id, rec, payload)
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

func (ui attendanceUI) rerender(ctx echo.Context, payload campus.NewAttendance, err error) error {
	p := ui.page("Mark Attendance")
	form, formErr := ui.form(ctx, payload)
	if formErr != nil {
		ui.deps.Logger.Warn("attendance: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

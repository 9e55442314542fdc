package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type studentUI struct {
	uiBase
}

func registerStudentUI(g *echo.Group, base uiBase) {
	ui := studentUI{base}
	g.GET("/students", ui.list)
	g.GET("/students/new", ui.createForm)
	g.POST("/students/new", ui.create)
	g.GET("/students/:id/edit", ui.editForm)
	g.POST("/students/:id/edit", ui.update)
	g.POST("/students/:id/delete", ui.destroy)
}

func (ui studentUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapStudents)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Students")
	students, err := ui.deps.API.Students(ctx.Request().Context())
	if err != nil {
		p.Data = listError(err, "/students")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(students))
	for _, stu := range students {
		row := Row{Cells: []string{stu.USN, stu.Name, stu.Email, stu.Department, itoa(stu.Semester)}}
		if perm.Edit {
			row.EditPath = "/students/" + itoa(stu.ID) + "/edit"
		}
		if perm.Delete {
			row.DeletePath = "/students/" + itoa(stu.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"USN", "Name", "Email", "Department", "Semester"},
		Rows:      rows,
		EmptyText: "No students found.",
	}
	if perm.Create {
		data.CreatePath = "/students/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

func (ui studentUI) createForm(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapStudents).Create {
		return ui.denied(ctx)
	}

	p := ui.page("Add Student")
	form, err := ui.form(ctx, "/students/new", campus.NewStudent{})
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui studentUI) create(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapStudents).Create {
		return ui.denied(ctx)
	}

	payload := ui.bind(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Add Student", "/students/new", payload, err)
	}
	if err := ui.deps.API.CreateStudent(ctx.Request().Context(), payload); err != nil {
		// entered values preserved so the operator can retry
		return ui.rerender(ctx, "Add Student", "/students/new", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/students")
}

func (ui studentUI) editForm(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapStudents).Edit {
		return ui.denied(ctx)
	}

	id := ctx.Param("id")
	stu, err := ui.deps.API.Student(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	payload := campus.NewStudent{
		Name:       stu.Name,
		USN:        stu.USN,
		Email:      stu.Email,
		Phone:      stu.Phone,
		Department: stu.Department,
		Semester:   stu.Semester,
		ClassID:    stu.ClassID,
	}
	p := ui.page("Edit Student")
	form, err := ui.form(ctx, "/students/"+id+"/edit", payload)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui studentUI) update(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapStudents).Edit {
		return ui.denied(ctx)
	}

	id := ctx.Param("id")
	payload := ui.bind(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Edit Student", "/students/"+id+"/edit", payload, err)
	}
	if err := ui.deps.API.UpdateStudent(ctx.Request().Context(), id, payload); err != nil {
		return ui.rerender(ctx, "Edit Student", "/students/"+id+"/edit", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/students")
}

func (ui studentUI) destroy(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapStudents).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteStudent(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/students")
}

func (ui studentUI) bind(ctx echo.Context) campus.NewStudent {
	return campus.NewStudent{
		Name:       core.CleanString(ctx.FormValue("name")),
		USN:        core.CleanString(ctx.FormValue("usn")),
		Email:      core.CleanString(ctx.FormValue("email")),
		Phone:      core.CleanString(ctx.FormValue("phone")),
		Department: core.CleanString(ctx.FormValue("department")),
		Semester:   formInt(ctx, "semester"),
		ClassID:    formInt(ctx, "classId"),
	}
}

// form builds the student form with the class dropdown preloaded.
func (ui studentUI) form(ctx echo.Context, action string, payload campus.NewStudent) (FormData, error) {
	classes, err := ui.deps.API.Classes(ctx.Request().Context())
	return FormData{
		Action:      action,
		SubmitLabel: "Save Student",
		CancelPath:  "/students",
		Fields: []Field{
			{Label: "Name", Name: "name", Type: "text", Value: payload.Name, Required: true},
			{Label: "USN", Name: "usn", Type: "text", Value: payload.USN, Required: true},
			{Label: "Email", Name: "email", Type: "text", Value: payload.Email},
			{Label: "Phone", Name: "phone", Type: "text", Value: payload.Phone},
			{Label: "Department", Name: "department", Type: "text", Value: payload.Department, Required: true},
			{Label: "Semester", Name: "semester", Type: "number", Value: itoa(payload.Semester)},
			{Label: "Class", Name: "classId", Type: "select", Options: classOptions(classes, payload.ClassID)},
		},
	}, err
}

func (ui studentUI) rerender(ctx echo.Context, title, action string, payload campus.NewStudent, err error) error {
	p := ui.page(title)
	form, formErr := ui.form(ctx, action, payload)
	if formErr != nil {
		ui.deps.Logger.Warn("students: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

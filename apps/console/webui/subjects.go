package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type subjectUI struct {
	uiBase
}

func registerSubjectUI(g *echo.Group, base uiBase) {
	ui := subjectUI{base}
	g.GET("/subjects", ui.list)
	g.GET("/subjects/new", ui.createForm)
	g.POST("/subjects/new", ui.create)
	g.POST("/subjects/:id/delete", ui.destroy)
}

func (ui subjectUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapSubjects)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Subjects")

	subjects, err := ui.deps.API.Subjects(ctx.Request().Context())
	if err != nil {
		p.Data = listError(err, "/subjects")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(subjects))
	for _, s := range subjects {
		row := Row{Cells: []string{s.Name, s.Code, s.Department, itoa(s.Semester)}}
		if perm.Delete {
			row.DeletePath = "/subjects/" + itoa(s.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"Name", "Code", "Department", "Semester"},
		Rows:      rows,
		EmptyText: "No subjects defined.",
	}
	if perm.Create {
		data.CreatePath = "/subjects/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

func (ui subjectUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapSubjects).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Add Subject")
	p.Data = subjectForm(campus.NewSubject{Semester: 1})
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui subjectUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapSubjects).Create {
		return ui.denied(ctx)
	}
	payload := campus.NewSubject{
		Name:       core.CleanString(ctx.FormValue("name")),
		Code:       core.CleanString(ctx.FormValue("code")),
		Department: core.CleanString(ctx.FormValue("department")),
		Semester:   formInt(ctx, "semester"),
	}
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	if err := ui.deps.API.CreateSubject(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/subjects")
}

func (ui subjectUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapSubjects).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteSubject(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/subjects")
}

func subjectForm(payload campus.NewSubject) FormData {
	return FormData{
		Action:      "/subjects/new",
		SubmitLabel: "Save Subject",
		CancelPath:  "/subjects",
		Fields: []Field{
			{Label: "Name", Name: "name", Type: "text", Value: payload.Name, Required: true},
			{Label: "Code", Name: "code", Type: "text", Value: payload.Code, Required: true},
			{Label: "Department", Name: "department", Type: "text", Value: payload.Department},
			{Label: "Semester", Name: "semester", Type: "number", Value: itoa(payload.Semester), Required: true},
		},
	}
}

func (ui subjectUI) rerender(ctx echo.Context, payload campus.NewSubject, err error) error {
	p := ui.page("Add Subject")
	form := subjectForm(payload)
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type facultyUI struct {
	uiBase
}

func registerFacultyUI(g *echo.Group, base uiBase) {
	ui := facultyUI{base}
	g.GET("/faculty", ui.list)
	g.GET("/faculty/new", ui.createForm)
	g.POST("/faculty/new", ui.create)
	g.GET("/faculty/:id/edit", ui.editForm)
	g.POST("/faculty/:id/edit", ui.update)
	g.POST("/faculty/:id/delete", ui.destroy)
}

func (ui facultyUI) list(ctx echo.Context) error {
	perm := policy.Can(ui.deps.Store.Current().Role, policy.CapFaculty)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Faculty")
	faculty, err := ui.deps.API.Faculties(ctx.Request().Context())
	if err != nil {
		p.Data = listError(err, "/faculty")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(faculty))
	for _, f := range faculty {
		row := Row{Cells: []string{f.Name, f.Email, f.Department, f.Designation}}
		if perm.Edit {
			row.EditPath = "/faculty/" + itoa(f.ID) + "/edit"
		}
		if perm.Delete {
			row.DeletePath = "/faculty/" + itoa(f.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"Name", "Email", "Department", "Designation"},
		Rows:      rows,
		EmptyText: "No faculty found.",
	}
	if perm.Create {
		data.CreatePath = "/faculty/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

func (ui facultyUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFaculty).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Add Faculty")
	p.Data = facultyForm("/faculty/new", campus.NewFaculty{})
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui facultyUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFaculty).Create {
		return ui.denied(ctx)
	}
	payload := bindFaculty(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Add Faculty", "/faculty/new", payload, err)
	}
	if err := ui.deps.API.CreateFaculty(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, "Add Faculty", "/faculty/new", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/faculty")
}

func (ui facultyUI) editForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFaculty).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	f, err := ui.deps.API.Faculty(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	payload := campus.NewFaculty{Name: f.Name, Email: f.Email, Phone: f.Phone, Department: f.Department, Designation: f.Designation}
	p := ui.page("Edit Faculty")
	p.Data = facultyForm("/faculty/"+id+"/edit", payload)
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui facultyUI) update(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFaculty).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	payload := bindFaculty(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Edit Faculty", "/faculty/"+id+"/edit", payload, err)
	}
	if err := ui.deps.API.UpdateFaculty(ctx.Request().Context(), id, payload); err != nil {
		return ui.rerender(ctx, "Edit Faculty", "/faculty/"+id+"/edit", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/faculty")
}

func (ui facultyUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFaculty).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteFaculty(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/faculty")
}

func bindFaculty(ctx echo.Context) campus.NewFaculty {
	return campus.NewFaculty{
		Name:        core.CleanString(ctx.FormValue("name")),
		Email:       core.CleanString(ctx.FormValue("email")),
		Phone:       core.CleanString(ctx.FormValue("phone")),
		Department:  core.CleanString(ctx.FormValue("department")),
		Designation: core.CleanString(ctx.FormValue("designation")),
	}
}

func facultyForm(action string, payload campus.NewFaculty) FormData {
	return FormData{
		Action:      action,
		SubmitLabel: "Save Faculty",
		CancelPath:  "/faculty",
		Fields: []Field{
			{Label: "Name", Name: "name", Type: "text", Value: payload.Name, Required: true},
			{Label: "Email", Name: "email", Type: "text", Value: payload.Email},
			{Label: "Phone", Name: "phone", Type: "text", Value: payload.Phone},
			{Label: "Department", Name: "department", Type: "text", Value: payload.Department, Required: true},
			{Label: "Designation", Name: "designation", Type: "text", Value: payload.Designation},
		},
	}
}

func (ui facultyUI) rerender(ctx echo.Context, title, action string, payload campus.NewFaculty, err error) error {
	p := ui.page(title)
	form := facultyForm(action, payload)
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

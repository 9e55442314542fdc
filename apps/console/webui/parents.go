package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type parentUI struct {
	uiBase
}

func registerParentUI(g *echo.Group, base uiBase) {
	ui := parentUI{base}
	g.GET("/parents", ui.list)
	g.GET("/parents/new", ui.createForm)
	g.POST("/parents/new", ui.create)
	g.GET("/parents/:id/edit", ui.editForm)
	g.POST("/parents/:id/edit", ui.update)
	g.POST("/parents/:id/delete", ui.destroy)
}

func (ui parentUI) list(ctx echo.Context) error {
	perm := policy.Can(ui.deps.Store.Current().Role, policy.CapParents)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Parents")
	parents, err := ui.deps.API.Parents(ctx.Request().Context())
	if err != nil {
		p.Data = listError(err, "/parents")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(parents))
	for _, par := range parents {
		row := Row{Cells: []string{par.Name, par.Email, par.Phone, itoa(par.StudentID)}}
		if perm.Edit {
			row.EditPath = "/parents/" + itoa(par.ID) + "/edit"
		}
		if perm.Delete {
			row.DeletePath = "/parents/" + itoa(par.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"Name", "Email", "Phone", "Student ID"},
		Rows:      rows,
		EmptyText: "No parents found.",
	}
	if perm.Create {
		data.CreatePath = "/parents/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

func (ui parentUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapParents).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Add Parent")
	form, err := ui.form(ctx, "/parents/new", campus.NewParent{})
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui parentUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapParents).Create {
		return ui.denied(ctx)
	}
	payload := bindParent(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Add Parent", "/parents/new", payload, err)
	}
	if err := ui.deps.API.CreateParent(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, "Add Parent", "/parents/new", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/parents")
}

func (ui parentUI) editForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapParents).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	par, err := ui.deps.API.Parent(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	payload := campus.NewParent{Name: par.Name, Email: par.Email, Phone: par.Phone, StudentID: par.StudentID}
	p := ui.page("Edit Parent")
	form, err := ui.form(ctx, "/parents/"+id+"/edit", payload)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui parentUI) update(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapParents).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	payload := bindParent(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Edit Parent", "/parents/"+id+"/edit", payload, err)
	}
	if err := ui.deps.API.UpdateParent(ctx.Request().Context(), id, payload); err != nil {
		return ui.rerender(ctx, "Edit Parent", "/parents/"+id+"/edit", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/parents")
}

func (ui parentUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapParents).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteParent(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/parents")
}

func bindParent(ctx echo.Context) campus.NewParent {
	return campus.NewParent{
		Name:      core.CleanString(ctx.FormValue("name")),
		Email:     core.CleanString(ctx.FormValue("email")),
		Phone:     core.CleanString(ctx.FormValue("phone")),
		StudentID: formInt(ctx, "studentId"),
	}
}

// form preloads the student dropdown; each parent declares exactly one
// student by id.
func (ui parentUI) form(ctx echo.Context, action string, payload campus.NewParent) (FormData, error) {
	students, err := ui.deps.API.Students(ctx.Request().Context())
	return FormData{
		Action:      action,
		SubmitLabel: "Save Parent",
		CancelPath:  "/parents",
		Fields: []Field{
			{Label: "Name", Name: "name", Type: "text", Value: payload.Name, Required: true},
			{Label: "Email", Name: "email", Type: "text", Value: payload.Email},
			{Label: "Phone", Name: "phone", Type: "text", Value: payload.Phone, Required: true},
			{Label: "Student", Name: "studentId", Type: "select", Options: studentOptions(students, payload.StudentID), Required: true},
		},
	}, err
}

func (ui parentUI) rerender(ctx echo.Context, title, action string, payload campus.NewParent, err error) error {
	p := ui.page(title)
	form, formErr := ui.form(ctx, action, payload)
	if formErr != nil {
		ui.deps.Logger.Warn("parents: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type classUI struct {
	uiBase
}

func registerClassUI(g *echo.Group, base uiBase) {
	ui := classUI{base}
	g.GET("/classes", ui.list)
	g.GET("/classes/new", ui.createForm)
	g.POST("/classes/new", ui.create)
	g.GET("/classes/:id/edit", ui.editForm)
	g.POST("/classes/:id/edit", ui.update)
	g.POST("/classes/:id/delete", ui.destroy)
}

func (ui classUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapClasses)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Classes")

	// faculty see only their own classes; admins see all
	var classes []campus.Class
	var err error
	if perm.OwnOnly {
		classes, err = ui.deps.API.ClassesByFaculty(ctx.Request().Context(), sess.SubjectID)
	} else {
		classes, err = ui.deps.API.Classes(ctx.Request().Context())
	}
	if err != nil {
		p.Data = listError(err, "/classes")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(classes))
	for _, cl := range classes {
		row := Row{Cells: []string{
			cl.Name, cl.Section, cl.Department, cl.RoomNumber,
			itoa(cl.CurrentStrength) + " / " + itoa(cl.Capacity),
		}}
		if perm.Edit {
			row.EditPath = "/classes/" + itoa(cl.ID) + "/edit"
		}
		if perm.Delete {
			row.DeletePath = "/classes/" + itoa(cl.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"Name", "Section", "Department", "Room", "Strength"},
		Rows:      rows,
		EmptyText: "No classes found.",
	}
	if perm.Create {
		data.CreatePath = "/classes/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

func (ui classUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapClasses).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Add Class")
	form, err := ui.form(ctx, "/classes/new", campus.NewClass{Capacity: 60})
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui classUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapClasses).Create {
		return ui.denied(ctx)
	}
	payload := bindClass(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Add Class", "/classes/new", payload, err)
	}
	if err := ui.deps.API.CreateClass(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, "Add Class", "/classes/new", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/classes")
}

func (ui classUI) editForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapClasses).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	cl, err := ui.deps.API.Class(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	payload := campus.NewClass{
		Name:              cl.Name,
		Section:           cl.Section,
		Department:        cl.Department,
		AssignedFacultyID: cl.AssignedFacultyID,
		RoomNumber:        cl.RoomNumber,
		Capacity:          cl.Capacity,
	}
	p := ui.page("Edit Class")
	form, err := ui.form(ctx, "/classes/"+id+"/edit", payload)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui classUI) update(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapClasses).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	payload := bindClass(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Edit Class", "/classes/"+id+"/edit", payload, err)
	}
	if err := ui.deps.API.UpdateClass(ctx.Request().Context(), id, payload); err != nil {
		return ui.rerender(ctx, "Edit Class", "/classes/"+id+"/edit", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/classes")
}

func (ui classUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapClasses).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteClass(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/classes")
}

func bindClass(ctx echo.Context) campus.NewClass {
	return campus.NewClass{
		Name:              core.CleanString(ctx.FormValue("name")),
		Section:           core.CleanString(ctx.FormValue("section")),
		Department:        core.CleanString(ctx.FormValue("department")),
		AssignedFacultyID: formInt(ctx, "assignedFacultyId"),
		RoomNumber:        core.CleanString(ctx.FormValue("roomNumber")),
		Capacity:          formInt(ctx, "capacity"),
	}
}

func (ui classUI) form(ctx echo.Context, action string, payload campus.NewClass) (FormData, error) {
	faculty, err := ui.deps.API.Faculties(ctx.Request().Context())
	return FormData{
		Action:      action,
		SubmitLabel: "Save Class",
		CancelPath:  "/classes",
		Fields: []Field{
			{Label: "Name", Name: "name", Type: "text", Value: payload.Name, Required: true},
			{Label: "Section", Name: "section", Type: "text", Value: payload.Section},
			{Label: "Department", Name: "department", Type: "text", Value: payload.Department, Required: true},
			{Label: "Assigned Faculty", Name: "assignedFacultyId", Type: "select", Options: facultyOptions(faculty, payload.AssignedFacultyID)},
			{Label: "Room Number", Name: "roomNumber", Type: "text", Value: payload.RoomNumber},
			{Label: "Capacity", Name: "capacity", Type: "number", Value: itoa(payload.Capacity)},
		},
	}, err
}

func (ui classUI) rerender(ctx echo.Context, title, action string, payload campus.NewClass, err error) error {
	p := ui.page(title)
	form, formErr := ui.form(ctx, action, payload)
	if formErr != nil {
		ui.deps.Logger.Warn("classes: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

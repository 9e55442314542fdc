package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type gradeUI struct {
	uiBase
}

func registerGradeUI(g *echo.Group, base uiBase) {
	ui := gradeUI{base}
	g.GET("/grades", ui.list)
	g.GET("/grades/new", ui.createForm)
	g.POST("/grades/new", ui.create)
	g.GET("/grades/:id/edit", ui.editForm)
	g.POST("/grades/:id/edit", ui.update)
	g.POST("/grades/:id/delete", ui.destroy)
}

func (ui gradeUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapGrades)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Grades")

	var grades []campus.Grade
	var err error
	if perm.OwnOnly {
		grades, err = ui.deps.API.GradesByStudent(ctx.Request().Context(), sess.StudentID)
	} else {
		grades, err = ui.deps.API.Grades(ctx.Request().Context())
	}
	if err != nil {
		p.Data = listError(err, "/grades")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(grades))
	for _, gr := range grades {
		pctCell := "n/a"
		if pct, ok := campus.GradePercentage(gr.MarksObtained, gr.MaxMarks); ok {
			pctCell = fmtPct1(pct) + "%"
		}
		row := Row{Cells: []string{itoa(gr.StudentID), gr.Subject, ftoa(gr.MarksObtained), ftoa(gr.MaxMarks), pctCell, gr.Remarks}}
		if perm.Edit {
			row.EditPath = "/grades/" + itoa(gr.ID) + "/edit"
		}
		if perm.Delete {
			row.DeletePath = "/grades/" + itoa(gr.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"Student", "Subject", "Marks", "Max", "Percentage", "Remarks"},
		Rows:      rows,
		EmptyText: "No grades recorded.",
	}
	if perm.Create {
		data.CreatePath = "/grades/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

func (ui gradeUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapGrades).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Add Grade")
	form, err := ui.form(ctx, "/grades/new", campus.NewGrade{MaxMarks: 100})
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui gradeUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapGrades).Create {
		return ui.denied(ctx)
	}
	payload := bindGrade(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Add Grade", "/grades/new", payload, err)
	}
	if err := ui.deps.API.CreateGrade(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, "Add Grade", "/grades/new", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/grades")
}

func (ui gradeUI) editForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapGrades).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	gr, err := ui.deps.API.Grade(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	payload := campus.NewGrade{
		StudentID:     gr.StudentID,
		Subject:       gr.Subject,
		MarksObtained: gr.MarksObtained,
		MaxMarks:      gr.MaxMarks,
		Remarks:       gr.Remarks,
	}
	p := ui.page("Edit Grade")
	form, err := ui.form(ctx, "/grades/"+id+"/edit", payload)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui gradeUI) update(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapGrades).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	payload := bindGrade(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Edit Grade", "/grades/"+id+"/edit", payload, err)
	}
	if err := ui.deps.API.UpdateGrade(ctx.Request().Context(), id, payload); err != nil {
		return ui.rerender(ctx, "Edit Grade", "/grades/"+id+"/edit", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/grades")
}

func (ui gradeUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapGrades).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteGrade(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/grades")
}

func bindGrade(ctx echo.Context) campus.NewGrade {
	return campus.NewGrade{
		StudentID:     formInt(ctx, "studentId"),
		Subject:       core.CleanString(ctx.FormValue("subject")),
		MarksObtained: formFloat(ctx, "marksObtained"),
		MaxMarks:      formFloat(ctx, "maxMarks"),
		Remarks:       core.CleanString(ctx.FormValue("remarks")),
	}
}

func (ui gradeUI) form(ctx echo.Context, action string, payload campus.NewGrade) (FormData, error) {
	students, err := ui.deps.API.Students(ctx.Request().Context())
	return FormData{
		Action:      action,
		SubmitLabel: "Save Grade",
		CancelPath:  "/grades",
		Fields: []Field{
			{Label: "Student", Name: "studentId", Type: "select", Options: studentOptions(students, payload.StudentID), Required: true},
			{Label: "Subject", Name: "subject", Type: "text", Value: payload.Subject, Required: true},
			{Label: "Marks Obtained", Name: "marksObtained", Type: "number", Value: ftoa(payload.MarksObtained)},
			{Label: "Max Marks", Name: "maxMarks", Type: "number", Value: ftoa(payload.MaxMarks), Required: true},
			{Label: "Remarks", Name: "remarks", Type: "text", Value: payload.Remarks},
		},
	}, err
}

func (ui gradeUI) rerender(ctx echo.Context, title, action string, payload campus.NewGrade, err error) error {
	p := ui.page(title)
	form, formErr := ui.form(ctx, action, payload)
	if formErr != nil {
		ui.deps.Logger.Warn("grades: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

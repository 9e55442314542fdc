package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type examUI struct {
	uiBase
}

func registerExamUI(g *echo.Group, base uiBase) {
	ui := examUI{base}
	g.GET("/exams", ui.list)
	g.GET("/exams/new", ui.createForm)
	g.POST("/exams/new", ui.create)
	g.GET("/exams/:id/edit", ui.editForm)
	g.POST("/exams/:id/edit", ui.update)
	g.POST("/exams/:id/delete", ui.destroy)
}

func (ui examUI) list(ctx echo.Context) error {
	perm := policy.Can(ui.deps.Store.Current().Role, policy.CapExams)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Exams")
	exams, err := ui.deps.API.Exams(ctx.Request().Context())
	if err != nil {
		p.Data = listError(err, "/exams")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(exams))
	for _, e := range exams {
		status := "Inactive"
		if e.Active {
			status = "Active"
		}
		row := Row{Cells: []string{e.Subject, itoa(e.ClassID), e.ExamDate, e.ExamType, status}}
		if perm.Edit {
			row.EditPath = "/exams/" + itoa(e.ID) + "/edit"
		}
		if perm.Delete {
			row.DeletePath = "/exams/" + itoa(e.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"Subject", "Class", "Date", "Type", "Status"},
		Rows:      rows,
		EmptyText: "No exams scheduled.",
	}
	if perm.Create {
		data.CreatePath = "/exams/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

func (ui examUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapExams).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Schedule Exam")
	form, err := ui.form(ctx, "/exams/new", campus.NewExam{ExamType: "MIDTERM", Active: true})
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui examUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapExams).Create {
		return ui.denied(ctx)
	}
	payload := bindExam(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Schedule Exam", "/exams/new", payload, err)
	}
	if err := ui.deps.API.CreateExam(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, "Schedule Exam", "/exams/new", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/exams")
}

func (ui examUI) editForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapExams).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	e, err := ui.deps.API.Exam(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	payload := campus.NewExam{ClassID: e.ClassID, Subject: e.Subject, ExamDate: e.ExamDate, ExamType: e.ExamType, Active: e.Active}
	p := ui.page("Edit Exam")
	form, err := ui.form(ctx, "/exams/"+id+"/edit", payload)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui examUI) update(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapExams).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	payload := bindExam(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Edit Exam", "/exams/"+id+"/edit", payload, err)
	}
	if err := ui.deps.API.UpdateExam(ctx.Request().Context(), id, payload); err != nil {
		return ui.rerender(ctx, "Edit Exam", "/exams/"+id+"/edit", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/exams")
}

func (ui examUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapExams).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteExam(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/exams")
}

func bindExam(ctx echo.Context) campus.NewExam {
	return campus.NewExam{
		ClassID:  formInt(ctx, "classId"),
		Subject:  core.CleanString(ctx.FormValue("subject")),
		ExamDate: core.CleanString(ctx.FormValue("examDate")),
		ExamType: core.CleanString(ctx.FormValue("examType")),
		Active:   formBool(ctx, "active"),
	}
}

func (ui examUI) form(ctx echo.Context, action string, payload campus.NewExam) (FormData, error) {
	classes, err := ui.deps.API.Classes(ctx.Request().Context())

	types := []string{"MIDTERM", "FINAL", "UNIT TEST", "ASSESSMENT"}
	typeOpts := make([]Option, 0, len(types))
	for _, t := range types {
		typeOpts = append(typeOpts, Option{Value: t, Label: t, Selected: t == payload.ExamType})
	}

	return FormData{
		Action:      action,
		SubmitLabel: "Save Exam",
		CancelPath:  "/exams",
		Fields: []Field{
			{Label: "Class", Name: "classId", Type: "select", Options: classOptions(classes, payload.ClassID), Required: true},
			{Label: "Subject", Name: "subject", Type: "text", Value: payload.Subject, Required: true},
			{Label: "Exam Date", Name: "examDate", Type: "date", Value: payload.ExamDate, Required: true},
			{Label: "Exam Type", Name: "examType", Type: "select", Options: typeOpts, Required: true},
			{Label: "Active", Name: "active", Type: "checkbox", Checked: payload.Active},
		},
	}, err
}

func (ui examUI) rerender(ctx echo.Context, title, action string, payload campus.NewExam, err error) error {
	p := ui.page(title)
	form, formErr := ui.form(ctx, action, payload)
	if formErr != nil {
		ui.deps.Logger.Warn("exams: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

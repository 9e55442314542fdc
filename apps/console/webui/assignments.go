package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type assignmentUI struct {
	uiBase
}

func registerAssignmentUI(g *echo.Group, base uiBase) {
	ui := assignmentUI{base}
	g.GET("/assignments", ui.list)
	g.GET("/assignments/new", ui.createForm)
	g.POST("/assignments/new", ui.create)
	g.GET("/assignments/:id", ui.view)
	g.GET("/assignments/:id/submit", ui.submitForm)
	g.POST("/assignments/:id/submit", ui.submit)
	g.POST("/assignments/:id/delete", ui.destroy)
}

// list is role-scoped: students see their class's assignments with a
// submitted/pending flag, faculty see the ones they issued, admins all.
func (ui assignmentUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapAssignments)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Assignments")

	var assignments []campus.Assignment
	var subs []campus.Submission
	var err error
	switch {
	case sess.Role == policy.RoleStudent:
		var stu campus.Student
		stu, err = ui.deps.API.Student(ctx.Request().Context(), sess.StudentID)
		if err == nil {
			assignments, err = ui.deps.API.AssignmentsByClass(ctx.Request().Context(), itoa(stu.ClassID))
		}
		if err == nil {
			subs, err = ui.deps.API.SubmissionsByStudent(ctx.Request().Context(), sess.StudentID)
		}
	case perm.OwnOnly:
		assignments, err = ui.deps.API.Assignments(ctx.Request().Context())
		if err == nil {
			own := assignments[:0]
			for _, a := range assignments {
				if itoa(a.FacultyID) == sess.SubjectID {
					own = append(own, a)
				}
			}
			assignments = own
		}
	default:
		assignments, err = ui.deps.API.Assignments(ctx.Request().Context())
	}
	if err != nil {
		p.Data = listError(err, "/assignments")
		return ctx.Render(http.StatusOK, "list", p)
	}

	isStudent := sess.Role == policy.RoleStudent
	columns := []string{"Title", "Class", "Due"}
	if isStudent {
		columns = append(columns, "Status")
	}

	rows := make([]Row, 0, len(assignments))
	for _, a := range assignments {
		cells := []string{a.Title, itoa(a.ClassID), a.DueDate}
		row := Row{ViewPath: "/assignments/" + itoa(a.ID)}
		if isStudent {
			if campus.HasSubmitted(subs, a.ID) {
				cells = append(cells, "Submitted")
			} else {
				cells = append(cells, "Pending")
				row.ViewPath = "/assignments/" + itoa(a.ID) + "/submit"
			}
		}
		if perm.Delete {
			row.DeletePath = "/assignments/" + itoa(a.ID) + "/delete"
		}
		row.Cells = cells
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   columns,
		Rows:      rows,
		EmptyText: "No assignments.",
	}
	if perm.Create && !isStudent {
		data.CreatePath = "/assignments/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

// view shows the assignment detail; for faculty it includes who submitted.
func (ui assignmentUI) view(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapAssignments).View {
		return ui.denied(ctx)
	}

	id := ctx.Param("id")
	a, err := ui.deps.API.Assignment(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	rows := []KV{
		{"Title", a.Title},
		{"Description", a.Description},
		{"Class", itoa(a.ClassID)},
		{"Due Date", a.DueDate},
	}
	if a.AttachmentURL != "" {
		rows = append(rows, KV{"Attachment", a.AttachmentURL})
	}

	if sess.Role != policy.RoleStudent {
		subs, err := ui.deps.API.SubmissionsByAssignment(ctx.Request().Context(), id)
		if err != nil {
			return err
		}
		rows = append(rows, KV{"Submissions", itoa(len(subs))})
		for _, s := range subs {
			rows = append(rows, KV{"Student " + itoa(s.StudentID), s.SubmittedAt.Local().Format("2006-01-02 15:04")})
		}
	}

	p := ui.page(a.Title)
	p.Data = DetailData{BackPath: "/assignments", Rows: rows}
	return ctx.Render(http.StatusOK, "detail", p)
}

func (ui assignmentUI) createForm(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapAssignments).Create || sess.Role == policy.RoleStudent {
		return ui.denied(ctx)
	}
	p := ui.page("Create Assignment")
	form, err := ui.form(ctx, campus.NewAssignment{})
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui assignmentUI) create(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapAssignments).Create || sess.Role == policy.RoleStudent {
		return ui.denied(ctx)
	}
	payload := campus.NewAssignment{
		ClassID:     formInt(ctx, "classId"),
		FacultyID:   formInt(ctx, "facultyId"),
		Title:       core.CleanString(ctx.FormValue("title")),
		Description: core.CleanString(ctx.FormValue("description")),
		DueDate:     core.CleanString(ctx.FormValue("dueDate")),
	}
	if sess.Role == policy.RoleFaculty && payload.FacultyID == 0 {
		payload.FacultyID = atoi(sess.SubjectID)
	}
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	if err := ui.deps.API.CreateAssignment(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/assignments")
}

// submitForm is the student's file upload screen for one assignment.
func (ui assignmentUI) submitForm(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapAssignments)
	if !perm.Create || sess.Role != policy.RoleStudent {
		return ui.denied(ctx)
	}

	id := ctx.Param("id")
	a, err := ui.deps.API.Assignment(ctx.Request().Context(), id)
	if err != nil {
		return err
	}

	p := ui.page("Submit: " + a.Title)
	p.Data = submissionForm(id)
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui assignmentUI) submit(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapAssignments).Create || sess.Role != policy.RoleStudent {
		return ui.denied(ctx)
	}

	id := ctx.Param("id")
	fh, err := ctx.FormFile("file")
	if err != nil {
		return ui.rerenderSubmit(ctx, id, core.NewValidationError(nil, core.FieldError{Field: "file", Error: "a file is required"}))
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	if err := ui.deps.API.SubmitAssignment(ctx.Request().Context(), id, sess.StudentID, fh.Filename, file); err != nil {
		return ui.rerenderSubmit(ctx, id, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/assignments")
}

func (ui assignmentUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapAssignments).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteAssignment(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/assignments")
}

func (ui assignmentUI) form(ctx echo.Context, payload campus.NewAssignment) (FormData, error) {
	sess := ui.deps.Store.Current()

	var classes []campus.Class
	var err error
	if policy.Can(sess.Role, policy.CapAssignments).OwnOnly {
		classes, err = ui.deps.API.ClassesByFaculty(ctx.Request().Context(), sess.SubjectID)
	} else {
		classes, err = ui.deps.API.Classes(ctx.Request().Context())
	}

	var faculty []campus.Faculty
	if err == nil && sess.Role == policy.RoleAdmin {
		faculty, err = ui.deps.API.Faculties(ctx.Request().Context())
	}

	fields := []Field{
		{Label: "Class", Name: "classId", Type: "select", Options: classOptions(classes, payload.ClassID), Required: true},
	}
	if sess.Role == policy.RoleAdmin {
		fields = append(fields, Field{Label: "Faculty", Name: "facultyId", Type: "select", Options: facultyOptions(faculty, payload.FacultyID), Required: true})
	}
	fields = append(fields,
		Field{Label: "Title", Name: "title", Type: "text", Value: payload.Title, Required: true},
		Field{Label: "Description", Name: "description", Type: "textarea", Value: payload.Description},
		Field{Label: "Due Date", Name: "dueDate", Type: "date", Value: payload.DueDate, Required: true},
	)

	return FormData{
		Action:      "/assignments/new",
		SubmitLabel: "Create Assignment",
		CancelPath:  "/assignments",
		Fields:      fields,
	}, err
}

func submissionForm(assignmentID string) FormData {
	return FormData{
		Action:      "/assignments/" + assignmentID + "/submit",
		SubmitLabel: "Submit Assignment",
		Multipart:   true,
		CancelPath:  "/assignments",
		Fields: []Field{
			{Label: "File", Name: "file", Type: "file", Required: true},
		},
	}
}

func (ui assignmentUI) rerender(ctx echo.Context, payload campus.NewAssignment, err error) error {
	p := ui.page("Create Assignment")
	form, formErr := ui.form(ctx, payload)
	if formErr != nil {
		ui.deps.Logger.Warn("assignments: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

func (ui assignmentUI) rerenderSubmit(ctx echo.Context, assignmentID string, err error) error {
	p := ui.page("Submit Assignment")
	form := submissionForm(assignmentID)
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/policy"
)

type noteUI struct {
	uiBase
}

func registerNoteUI(g *echo.Group, base uiBase) {
	ui := noteUI{base}
	g.GET("/notes", ui.list)
	g.GET("/notes/new", ui.uploadForm)
	g.POST("/notes/new", ui.upload)
}

func (ui noteUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapNotes)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Lecture Notes")

	notes, err := ui.deps.API.Notes(ctx.Request().Context())
	if err != nil {
		p.Data = listError(err, "/notes")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(notes))
	for _, n := range notes {
		rows = append(rows, Row{
			Cells:    []string{n.Title, n.Subject, itoa(n.ClassID), n.Uploader},
			ViewPath: n.FileURL,
		})
	}

	data := ListData{
		Columns:   []string{"Title", "Subject", "Class", "Uploaded By"},
		Rows:      rows,
		EmptyText: "No notes uploaded.",
	}
	if perm.Create {
		data.CreatePath = "/notes/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

func (ui noteUI) uploadForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapNotes).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Upload Notes")
	form, err := ui.form(ctx, "", "", 0)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui noteUI) upload(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapNotes).Create {
		return ui.denied(ctx)
	}

	classID := formInt(ctx, "classId")
	subject := core.CleanString(ctx.FormValue("subject"))
	title := core.CleanString(ctx.FormValue("title"))

	fieldErrs := make([]core.FieldError, 0, 3)
	if classID == 0 {
		fieldErrs = append(fieldErrs, core.FieldError{Field: "classId", Error: "a class is required"})
	}
	if subject == "" {
		fieldErrs = append(fieldErrs, core.FieldError{Field: "subject", Error: "subject is required"})
	}
	if title == "" {
		fieldErrs = append(fieldErrs, core.FieldError{Field: "title", Error: "title is required"})
	}
	fh, fileErr := ctx.FormFile("file")
	if fileErr != nil {
		fieldErrs = append(fieldErrs, core.FieldError{Field: "file", Error: "a file is required"})
	}
	if len(fieldErrs) > 0 {
		return ui.rerender(ctx, title, subject, classID, core.NewValidationError(nil, fieldErrs...))
	}

	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	if err := ui.deps.API.UploadNote(ctx.Request().Context(), itoa(classID), subject, title, fh.Filename, file); err != nil {
		return ui.rerender(ctx, title, subject, classID, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/notes")
}

func (ui noteUI) form(ctx echo.Context, title, subject string, classID int) (FormData, error) {
	classes, err := ui.deps.API.Classes(ctx.Request().Context())
	return FormData{
		Action:      "/notes/new",
		SubmitLabel: "Upload Notes",
		Multipart:   true,
		CancelPath:  "/notes",
		Fields: []Field{
			{Label: "Class", Name: "classId", Type: "select", Options: classOptions(classes, classID), Required: true},
			{Label: "Subject", Name: "subject", Type: "text", Value: subject, Required: true},
			{Label: "Title", Name: "title", Type: "text", Value: title, Required: true},
			{Label: "File", Name: "file", Type: "file", Required: true},
		},
	}, err
}

func (ui noteUI) rerender(ctx echo.Context, title, subject string, classID int, err error) error {
	p := ui.page("Upload Notes")
	form, formErr := ui.form(ctx, title, subject, classID)
	if formErr != nil {
		ui.deps.Logger.Warn("notes: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

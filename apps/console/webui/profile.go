package webui

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type profileUI struct {
	uiBase
}

type profileUploadFunc func(ctx context.Context, userID, filename string, file io.Reader) error

func registerProfileUI(g *echo.Group, base uiBase) {
	ui := profileUI{base}
	g.GET("/profile", ui.view)
	g.GET("/profile/edit", ui.editForm)
	g.POST("/profile/edit", ui.update)
	g.POST("/profile/photo", ui.uploadPhoto)
	g.POST("/profile/resume", ui.uploadResume)
}

func (ui profileUI) view(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapProfile).View {
		return ui.denied(ctx)
	}

	prof, err := ui.deps.API.ProfileByUser(ctx.Request().Context(), sess.SubjectID)
	if err != nil {
		return err
	}

	rows := []KV{
		{"Name", prof.Name},
		{"Role", sess.Role.Display()},
		{"Email", prof.Email},
		{"Phone", prof.Phone},
		{"Bio", prof.Bio},
	}
	if prof.PhotoURL != "" {
		rows = append(rows, KV{"Photo", prof.PhotoURL})
	}
	if prof.Resume != "" {
		rows = append(rows, KV{"Resume", prof.Resume})
	}

	p := ui.page("My Profile")
	p.Data = DetailData{Rows: rows, BackPath: "/home"}
	return ctx.Render(http.StatusOK, "detail", p)
}

func (ui profileUI) editForm(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapProfile).Edit {
		return ui.denied(ctx)
	}

	prof, err := ui.deps.API.ProfileByUser(ctx.Request().Context(), sess.SubjectID)
	if err != nil {
		return err
	}
	payload := campus.UpdateProfile{
		Name:  prof.Name,
		Email: prof.Email,
		Phone: prof.Phone,
		Bio:   prof.Bio,
	}

	p := ui.page("Edit Profile")
	p.Data = profileForm(payload)
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui profileUI) update(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapProfile).Edit {
		return ui.denied(ctx)
	}

	payload := campus.UpdateProfile{
		Name:  core.CleanString(ctx.FormValue("name")),
		Email: core.CleanString(ctx.FormValue("email")),
		Phone: core.CleanString(ctx.FormValue("phone")),
		Bio:   core.CleanString(ctx.FormValue("bio")),
	}
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	if err := ui.deps.API.UpdateProfile(ctx.Request().Context(), sess.SubjectID, payload); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/profile")
}

func (ui profileUI) uploadPhoto(ctx echo.Context) error {
	return ui.uploadFile(ctx, "photo", ui.deps.API.UploadProfilePhoto)
}

func (ui profileUI) uploadResume(ctx echo.Context) error {
	return ui.uploadFile(ctx, "resume", ui.deps.API.UploadProfileResume)
}

func (ui profileUI) uploadFile(ctx echo.Context, field string, send profileUploadFunc) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapProfile).Edit {
		return ui.denied(ctx)
	}

	fh, err := ctx.FormFile(field)
	if err != nil {
		p := ui.page("My Profile")
		p.Error = "a file is required"
		p.Data = DetailData{BackPath: "/home"}
		return ctx.Render(http.StatusBadRequest, "detail", p)
	}
	file, err := fh.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	if err := send(ctx.Request().Context(), sess.SubjectID, fh.Filename, file); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/profile")
}

func profileForm(payload campus.UpdateProfile) FormData {
	return FormData{
		Action:      "/profile/edit",
		SubmitLabel: "Save Profile",
		CancelPath:  "/profile",
		Fields: []Field{
			{Label: "Name", Name: "name", Type: "text", Value: payload.Name, Required: true},
			{Label: "Email", Name: "email", Type: "text", Value: payload.Email},
			{Label: "Phone", Name: "phone", Type: "text", Value: payload.Phone},
			{Label: "Bio", Name: "bio", Type: "textarea", Value: payload.Bio},
		},
	}
}

func (ui profileUI) rerender(ctx echo.Context, payload campus.UpdateProfile, err error) error {
	p := ui.page("Edit Profile")
	form := profileForm(payload)
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

package webui

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type skillUI struct {
	uiBase
}

func registerSkillUI(g *echo.Group, base uiBase) {
	ui := skillUI{base}
	g.GET("/skills", ui.list)
	g.GET("/skills/career", ui.career)
	g.GET("/skills/new", ui.createForm)
	g.POST("/skills/new", ui.create)
	g.POST("/skills/:id/delete", ui.destroy)
}

func (ui skillUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapSkills)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Skills")

	var skills []campus.Skill
	var err error
	if perm.OwnOnly {
		skills, err = ui.deps.API.SkillsByStudent(ctx.Request().Context(), sess.StudentID)
	} else {
		skills, err = ui.deps.API.Skills(ctx.Request().Context())
	}
	if err != nil {
		p.Data = listError(err, "/skills")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(skills))
	for _, s := range skills {
		row := Row{Cells: []string{s.Name, s.Level, s.Certification}}
		if perm.Delete {
			row.DeletePath = "/skills/" + itoa(s.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"Skill", "Level", "Certification"},
		Rows:      rows,
		EmptyText: "No skills recorded yet.",
	}
	if perm.Create {
		data.CreatePath = "/skills/new"
	}
	if perm.OwnOnly {
		data.ExtraPath = "/skills/career"
		data.ExtraLabel = "Career suggestions"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

// career shows the backend's suggestion list computed from the student's
// recorded skills.
func (ui skillUI) career(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapSkills)
	if !perm.View || !perm.OwnOnly {
		return ui.denied(ctx)
	}

	p := ui.page("Career Suggestions")
	sugg, err := ui.deps.API.CareerSuggestion(ctx.Request().Context(), sess.SubjectID)
	if err != nil {
		p.Data = listError(err, "/skills/career")
		return ctx.Render(http.StatusOK, "list", p)
	}

	p.Data = DetailData{
		Rows: []KV{
			{Key: "Recommended Careers", Val: strings.Join(sugg.SuggestedCareers, ", ")},
			{Key: "Recommended Certifications", Val: strings.Join(sugg.RecommendedCertifications, ", ")},
			{Key: "Skills Analyzed", Val: itoa(sugg.TotalSkillsAnalyzed)},
		},
		BackPath: "/skills",
	}
	return ctx.Render(http.StatusOK, "detail", p)
}

func (ui skillUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapSkills).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Add Skill")
	p.Data = skillForm(campus.NewSkill{Level: "Beginner"})
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui skillUI) create(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapSkills)
	if !perm.Create {
		return ui.denied(ctx)
	}
	payload := campus.NewSkill{
		StudentID:     formInt(ctx, "studentId"),
		Name:          core.CleanString(ctx.FormValue("name")),
		Level:         core.CleanString(ctx.FormValue("level")),
		Certification: core.CleanString(ctx.FormValue("certification")),
	}
	// own-only roles always write against their own student record
	if perm.OwnOnly {
		payload.StudentID = atoi(sess.StudentID)
	}
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	if err := ui.deps.API.CreateSkill(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/skills")
}

func (ui skillUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapSkills).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteSkill(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/skills")
}

func skillForm(payload campus.NewSkill) FormData {
	levels := []string{"Beginner", "Intermediate", "Advanced"}
	opts := make([]Option, 0, len(levels))
	for _, l := range levels {
		opts = append(opts, Option{Value: l, Label: l, Selected: l == payload.Level})
	}
	return FormData{
		Action:      "/skills/new",
		SubmitLabel: "Add Skill",
		CancelPath:  "/skills",
		Fields: []Field{
			{Label: "Skill", Name: "name", Type: "text", Value: payload.Name, Required: true},
			{Label: "Level", Name: "level", Type: "select", Options: opts, Required: true},
			{Label: "Certification", Name: "certification", Type: "text", Value: payload.Certification},
		},
	}
}

func (ui skillUI) rerender(ctx echo.Context, payload campus.NewSkill, err error) error {
	p := ui.page("Add Skill")
	form := skillForm(payload)
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

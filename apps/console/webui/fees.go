package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type feeUI struct {
	uiBase
}

func registerFeeUI(g *echo.Group, base uiBase) {
	ui := feeUI{base}
	g.GET("/fees", ui.list)
	g.GET("/fees/new", ui.createForm)
	g.POST("/fees/new", ui.create)
	g.POST("/fees/new/recalc", ui.recalc)
	g.GET("/fees/:id", ui.view)
	g.GET("/fees/:id/edit", ui.editForm)
	g.POST("/fees/:id/edit", ui.update)
	g.POST("/fees/:id/delete", ui.destroy)
}

func (ui feeUI) list(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapFees)
	if !perm.View {
		return ui.denied(ctx)
	}

	p := ui.page("Fees")

	var fees []campus.Fee
	var err error
	if perm.OwnOnly {
		fees, err = ui.deps.API.FeesByStudent(ctx.Request().Context(), sess.StudentID)
	} else {
		fees, err = ui.deps.API.Fees(ctx.Request().Context())
	}
	if err != nil {
		p.Data = listError(err, "/fees")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(fees))
	for _, fee := range fees {
		// display is always the re-derived triple, never trusted as stored
		b := fee.Breakdown()
		row := Row{
			Cells:    []string{itoa(fee.StudentID), fmtMoney(b.Total), fmtMoney(fee.AmountPaid), fmtMoney(b.Pending), string(b.Status), fee.DueDate},
			ViewPath: "/fees/" + itoa(fee.ID),
		}
		if perm.Edit {
			row.EditPath = "/fees/" + itoa(fee.ID) + "/edit"
		}
		if perm.Delete {
			row.DeletePath = "/fees/" + itoa(fee.ID) + "/delete"
		}
		rows = append(rows, row)
	}

	data := ListData{
		Columns:   []string{"Student", "Total", "Paid", "Pending", "Status", "Due"},
		Rows:      rows,
		EmptyText: "No fee records.",
	}
	if perm.Create {
		data.CreatePath = "/fees/new"
	}
	p.Data = data
	return ctx.Render(http.StatusOK, "list", p)
}

func (ui feeUI) view(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapFees).View {
		return ui.denied(ctx)
	}
	fee, err := ui.deps.API.Fee(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	b := fee.Breakdown()
	p := ui.page("Fee Details")
	p.Data = DetailData{
		BackPath: "/fees",
		Rows: []KV{
			{"Student", itoa(fee.StudentID)},
			{"Tuition Fee", fmtMoney(fee.TuitionFee)},
			{"Development Fee", fmtMoney(fee.DevelopmentFee)},
			{"University Fee", fmtMoney(fee.UniversityFee)},
			{"Other Fee", fmtMoney(fee.OtherFee)},
			{"Total", fmtMoney(b.Total)},
			{"Paid", fmtMoney(fee.AmountPaid)},
			{"Pending", fmtMoney(b.Pending)},
			{"Status", string(b.Status)},
			{"Due Date", fee.DueDate},
		},
	}
	return ctx.Render(http.StatusOK, "detail", p)
}

func (ui feeUI) createForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFees).Create {
		return ui.denied(ctx)
	}
	p := ui.page("Generate Fee Structure")
	payload := campus.NewFee{}
	payload.Derive()
	form, err := ui.form(ctx, "/fees/new", payload)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

// recalc re-renders the create form with the derived triple refreshed,
// keeping the displayed total consistent with the entered components.
func (ui feeUI) recalc(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFees).Create {
		return ui.denied(ctx)
	}
	payload := bindFee(ctx)
	payload.Derive()

	p := ui.page("Generate Fee Structure")
	form, err := ui.form(ctx, "/fees/new", payload)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui feeUI) create(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFees).Create {
		return ui.denied(ctx)
	}
	payload := bindFee(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Generate Fee Structure", "/fees/new", payload, err)
	}
	if err := ui.deps.API.CreateFee(ctx.Request().Context(), payload); err != nil {
		return ui.rerender(ctx, "Generate Fee Structure", "/fees/new", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/fees")
}

func (ui feeUI) editForm(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFees).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	fee, err := ui.deps.API.Fee(ctx.Request().Context(), id)
	if err != nil {
		return err
	}
	payload := campus.NewFee{
		StudentID:      fee.StudentID,
		TuitionFee:     fee.TuitionFee,
		DevelopmentFee: fee.DevelopmentFee,
		UniversityFee:  fee.UniversityFee,
		OtherFee:       fee.OtherFee,
		AmountPaid:     fee.AmountPaid,
		DueDate:        fee.DueDate,
	}
	payload.Derive()

	p := ui.page("Edit Fee")
	form, err := ui.form(ctx, "/fees/"+id+"/edit", payload)
	if err != nil {
		p.Error = userMessage(err)
	}
	p.Data = form
	return ctx.Render(http.StatusOK, "form", p)
}

func (ui feeUI) update(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFees).Edit {
		return ui.denied(ctx)
	}
	id := ctx.Param("id")
	payload := bindFee(ctx)
	if err := payload.Validate(); err != nil {
		return ui.rerender(ctx, "Edit Fee", "/fees/"+id+"/edit", payload, err)
	}
	if err := ui.deps.API.UpdateFee(ctx.Request().Context(), id, payload); err != nil {
		return ui.rerender(ctx, "Edit Fee", "/fees/"+id+"/edit", payload, err)
	}
	return ctx.Redirect(http.StatusSeeOther, "/fees")
}

func (ui feeUI) destroy(ctx echo.Context) error {
	if !policy.Can(ui.deps.Store.Current().Role, policy.CapFees).Delete {
		return ui.denied(ctx)
	}
	if err := ui.deps.API.DeleteFee(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return err
	}
	return ctx.Redirect(http.StatusSeeOther, "/fees")
}

func bindFee(ctx echo.Context) campus.NewFee {
	payload := campus.NewFee{
		StudentID:      formInt(ctx, "studentId"),
		TuitionFee:     formFloat(ctx, "tuitionFee"),
		DevelopmentFee: formFloat(ctx, "developmentFee"),
		UniversityFee:  formFloat(ctx, "universityFee"),
		OtherFee:       formFloat(ctx, "otherFee"),
		AmountPaid:     formFloat(ctx, "amountPaid"),
		DueDate:        core.CleanString(ctx.FormValue("dueDate")),
	}
	payload.Derive()
	return payload
}

func (ui feeUI) form(ctx echo.Context, action string, payload campus.NewFee) (FormData, error) {
	students, err := ui.deps.API.Students(ctx.Request().Context())
	return FormData{
		Action:      action,
		SubmitLabel: "Save Fee Record",
		CancelPath:  "/fees",
		Fields: []Field{
			{Label: "Student", Name: "studentId", Type: "select", Options: studentOptions(students, payload.StudentID), Required: true},
			{Label: "Tuition Fee", Name: "tuitionFee", Type: "number", Value: ftoa(payload.TuitionFee)},
			{Label: "Development Fee", Name: "developmentFee", Type: "number", Value: ftoa(payload.DevelopmentFee)},
			{Label: "University Fee", Name: "universityFee", Type: "number", Value: ftoa(payload.UniversityFee)},
			{Label: "Other Fee", Name: "otherFee", Type: "number", Value: ftoa(payload.OtherFee)},
			{Label: "Amount Paid", Name: "amountPaid", Type: "number", Value: ftoa(payload.AmountPaid)},
			{Label: "Due Date", Name: "dueDate", Type: "date", Value: payload.DueDate},
			// derived triple: display only, recomputed on every re-render
			{Label: "Total Amount", Name: "totalAmount", Type: "number", Value: ftoa(payload.TotalAmount), ReadOnly: true},
			{Label: "Pending Amount", Name: "pendingAmount", Type: "number", Value: ftoa(payload.PendingAmount), ReadOnly: true},
			{Label: "Status", Name: "status", Type: "text", Value: payload.Status, ReadOnly: true},
		},
	}, err
}

func (ui feeUI) rerender(ctx echo.Context, title, action string, payload campus.NewFee, err error) error {
	p := ui.page(title)
	form, formErr := ui.form(ctx, action, payload)
	if formErr != nil {
		ui.deps.Logger.Warn("fees: reloading form data", formErr)
	}
	fields, banner := formErrors(err)
	applyFieldErrors(&form, fields)
	p.Error = banner
	p.Data = form
	return ctx.Render(http.StatusBadRequest, "form", p)
}

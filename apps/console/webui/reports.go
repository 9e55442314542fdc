package webui

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core/policy"
)

type reportsUI struct {
	uiBase
}

func registerReportsUI(g *echo.Group, base uiBase) {
	ui := reportsUI{base}
	g.GET("/reports", ui.dashboard)
}

// dashboard renders the backend's precomputed summary: the full
// institution view for admins, the academic slice for everyone else.
func (ui reportsUI) dashboard(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapReports)
	if !perm.View {
		return ui.denied(ctx)
	}

	title := "My Academic Report"
	if sess.Role == policy.RoleAdmin {
		title = "Institution Reports"
	}
	p := ui.page(title)

	summary, err := ui.deps.API.ReportSummary(ctx.Request().Context())
	if err != nil {
		p.Data = listError(err, "/reports")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := []KV{
		{Key: "Average Grade", Val: reportPct(summary.AverageGrade)},
		{Key: "Average Attendance", Val: reportPct(summary.AttendancePercent)},
	}
	if sess.Role == policy.RoleAdmin {
		rows = append([]KV{{Key: "Total Students", Val: itoa(summary.TotalStudents)}}, rows...)
		rows = append(rows, KV{Key: "Fees Collected", Val: fmtMoney(summary.TotalFeesCollected)})
	}

	p.Data = DetailData{Rows: rows}
	return ctx.Render(http.StatusOK, "detail", p)
}

func reportPct(v float64) string {
	if v == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(v, 'f', 2, 64) + "%"
}

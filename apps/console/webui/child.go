package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type childUI struct {
	uiBase
}

func registerChildUI(g *echo.Group, base uiBase) {
	ui := childUI{base}
	g.GET("/child", ui.overview)
}

// ChildData is the parent's one-screen composite over the linked student.
type ChildData struct {
	Student    campus.Student
	Attendance campus.AttendanceSummary
	Fees       []campus.Fee
	Grades     []campus.Grade

	LoadErr   string
	RetryPath string
}

// overview aggregates the linked child's attendance, fees and grades.
// Everything here is read-only; parents act through the school, not
// through the console.
func (ui childUI) overview(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapChildOverview).View {
		return ui.denied(ctx)
	}

	p := ui.page("Child Overview")

	rctx := ctx.Request().Context()
	stu, err := ui.deps.API.Student(rctx, sess.StudentID)
	if err != nil {
		p.Data = ChildData{LoadErr: userMessage(err), RetryPath: "/child"}
		return ctx.Render(http.StatusOK, "child", p)
	}

	records, err := ui.deps.API.AttendanceByStudent(rctx, sess.StudentID)
	if err != nil {
		p.Data = ChildData{Student: stu, LoadErr: userMessage(err), RetryPath: "/child"}
		return ctx.Render(http.StatusOK, "child", p)
	}

	fees, err := ui.deps.API.FeesByStudent(rctx, sess.StudentID)
	if err != nil {
		p.Data = ChildData{Student: stu, LoadErr: userMessage(err), RetryPath: "/child"}
		return ctx.Render(http.StatusOK, "child", p)
	}

	grades, err := ui.deps.API.GradesByStudent(rctx, sess.StudentID)
	if err != nil {
		p.Data = ChildData{Student: stu, LoadErr: userMessage(err), RetryPath: "/child"}
		return ctx.Render(http.StatusOK, "child", p)
	}

	p.Data = ChildData{
		Student:    stu,
		Attendance: campus.SummarizeAttendance(records),
		Fees:       fees,
		Grades:     grades,
	}
	return ctx.Render(http.StatusOK, "child", p)
}

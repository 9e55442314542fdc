package webui

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
	"github.com/edusuite/campus-console/core/session"
	"github.com/edusuite/campus-console/services/gateway"
)

// uiBase carries the shared dependencies into every feature's handlers.
type uiBase struct {
	deps ServerDeps
}

var timeNow = time.Now // mockable

// Page is the view model every template receives.
type Page struct {
	Title   string
	AppName string
	Sess    session.Session
	Nav     []policy.NavItem
	Error   string
	Notice  string
	Data    interface{}
}

func (b uiBase) page(title string) Page {
	sess := b.deps.Store.Current()
	return Page{
		Title:   title,
		AppName: b.deps.Conf.AppName,
		Sess:    sess,
		Nav:     policy.Nav(sess.Role),
	}
}

// denied renders the explicit Access Denied view; never a blank screen.
func (b uiBase) denied(ctx echo.Context) error {
	p := b.page("Access Denied")
	return ctx.Render(http.StatusForbidden, "denied", p)
}

// List screens

type Row struct {
	Cells      []string
	ViewPath   string
	EditPath   string
	DeletePath string
}

type ListData struct {
	Columns    []string
	Rows       []Row
	CreatePath string
	ExtraPath  string
	ExtraLabel string
	EmptyText  string

	// read-failure state: explicit error + retry, never fabricated records
	LoadErr   string
	RetryPath string

	Summary *campus.AttendanceSummary
}

// listError builds the error/retry state for a failed read.
func listError(err error, retryPath string) ListData {
	return ListData{LoadErr: userMessage(err), RetryPath: retryPath}
}

// Forms

type Option struct {
	Value    string
	Label    string
	Selected bool
}

type Field struct {
	Label       string
	Name        string
	Type        string // text | number | date | time | checkbox | select | textarea | file | password
	Value       string
	Options     []Option
	Required    bool
	Checked     bool
	ReadOnly    bool
	Err         string
}

type FormData struct {
	Action      string
	SubmitLabel string
	Multipart   bool
	Fields      []Field
	CancelPath  string
}

// applyFieldErrors attaches translated per-field messages to a form.
func applyFieldErrors(form *FormData, fields map[string]string) {
	for i := range form.Fields {
		if msg, ok := fields[form.Fields[i].Name]; ok {
			form.Fields[i].Err = msg
		}
	}
}

// formErrors splits an error into per-field messages and a banner message.
func formErrors(err error) (fields map[string]string, banner string) {
	switch origErr := errors.Cause(err).(type) {
	case validator.ValidationErrors:
		fields = make(map[string]string, len(origErr))
		for _, vErr := range origErr {
			fields[vErr.Field()] = vErr.Translate(core.Translator)
		}
		return fields, "please correct the highlighted fields"
	case *core.ValidationError:
		fields = make(map[string]string, len(origErr.Fields))
		for _, fErr := range origErr.Fields {
			fields[fErr.Field] = fErr.Error
		}
		banner = origErr.Error()
		if banner == "" {
			banner = "please correct the highlighted fields"
		}
		return fields, banner
	case *gateway.APIError:
		return nil, origErr.Message
	default:
		return nil, "request failed; please try again"
	}
}

// userMessage is the screen-facing text for a failed read.
func userMessage(err error) string {
	if apiErr, ok := errors.Cause(err).(*gateway.APIError); ok {
		return apiErr.Message
	}
	return "could not reach the campus backend"
}

// Detail screens

type KV struct {
	Key string
	Val string
}

type DetailData struct {
	Rows     []KV
	BackPath string
}

// form value helpers

func formInt(ctx echo.Context, name string) int {
	n, _ := strconv.Atoi(core.CleanString(ctx.FormValue(name)))
	return n
}

func formFloat(ctx echo.Context, name string) float64 {
	f, _ := strconv.ParseFloat(core.CleanString(ctx.FormValue(name)), 64)
	return f
}

func formBool(ctx echo.Context, name string) bool {
	v := core.CleanString(ctx.FormValue(name), true /* lower */)
	return v == "on" || v == "true" || v == "1"
}

func fmtMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func fmtPct1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func itoa(v int) string { return strconv.Itoa(v) }

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// classOptions builds the dependent class dropdown preloaded by several
// create screens.
func classOptions(classes []campus.Class, selected int) []Option {
	opts := make([]Option, 0, len(classes))
	for _, cl := range classes {
		opts = append(opts, Option{
			Value:    itoa(cl.ID),
			Label:    fmt.Sprintf("%s %s", cl.Name, cl.Section),
			Selected: cl.ID == selected && selected != 0,
		})
	}
	return opts
}

func studentOptions(students []campus.Student, selected int) []Option {
	opts := make([]Option, 0, len(students))
	for _, stu := range students {
		opts = append(opts, Option{
			Value:    itoa(stu.ID),
			Label:    fmt.Sprintf("%s (%s)", stu.Name, stu.USN),
			Selected: stu.ID == selected && selected != 0,
		})
	}
	return opts
}

func facultyOptions(faculty []campus.Faculty, selected int) []Option {
	opts := make([]Option, 0, len(faculty))
	for _, f := range faculty {
		opts = append(opts, Option{
			Value:    itoa(f.ID),
			Label:    f.Name,
			Selected: f.ID == selected && selected != 0,
		})
	}
	return opts
}

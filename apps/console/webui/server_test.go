package webui

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
	"github.com/edusuite/campus-console/core/session"
	"github.com/edusuite/campus-console/services/gateway"
	"github.com/edusuite/campus-console/services/poller"
)

func TestMain(m *testing.M) {
	validate := validator.New()
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	core.InitValidators(validate, translator)
	os.Exit(m.Run())
}

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type fakeAuth struct {
	result session.LoginResult
}

func (f *fakeAuth) Authenticate(ctx context.Context, identifier, secret string) (session.LoginResult, error) {
	return f.result, nil
}

func (f *fakeAuth) StudentIDForUser(ctx context.Context, userID string) (string, error) {
	return f.result.StudentID, nil
}

// setup wires a full server against a stubbed campus backend.
func setup(t *testing.T, backend http.Handler) (*Server, *session.Store) {
	t.Helper()

	backendSrv := httptest.NewServer(backend)
	t.Cleanup(backendSrv.Close)

	conf := &core.Config{
		TestMode:               true,
		AppName:                "CampusConsole",
		BackendBaseURL:         backendSrv.URL,
		RequestTimeout:         5 * time.Second,
		SessionFile:            filepath.Join(t.TempDir(), "session.json"),
		DiscussionPollInterval: time.Hour,
	}
	logger := nopLogger{}
	store := session.NewStore(conf, logger)
	api := gateway.NewClient(conf, store, logger)
	feeds := poller.NewRegistry(conf.DiscussionPollInterval, func(classID string) poller.FetchFunc {
		return func(ctx context.Context) ([]campus.DiscussionPost, error) {
			return api.DiscussionByClass(ctx, classID)
		}
	}, logger)
	t.Cleanup(feeds.Close)

	srv := NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		Store:          store,
		API:            api,
		Feeds:          feeds,
		DisableReqLogs: true,
	})
	return srv, store
}

func loginAs(t *testing.T, store *session.Store, role policy.Role) {
	t.Helper()
	auth := &fakeAuth{result: session.LoginResult{
		Credential:  "tok",
		Role:        string(role),
		SubjectID:   "7",
		DisplayName: "Test Operator",
		StudentID:   "34",
	}}
	if err := store.Login(context.Background(), auth, "op", "pwd"); err != nil {
		t.Fatalf("loginAs() failed: %v", err)
	}
}

func doGET(srv *Server, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func doForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echoHeaderContentType, "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

const echoHeaderContentType = "Content-Type"

func jsonHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}

func TestRequireSessionRedirects(t *testing.T) {
	srv, _ := setup(t, jsonHandler(`[]`))

	for _, path := range []string{"/home", "/students", "/fees", "/timetable", "/profile"} {
		rec := doGET(srv, path)
		assert.Equal(t, http.StatusFound, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestLoginScreen(t *testing.T) {
	srv, _ := setup(t, jsonHandler(`[]`))

	rec := doGET(srv, "/login")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `name="identifier"`)
	assert.Contains(t, body, `type="password"`)
}

func TestLoginFailureKeepsIdentifier(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
	})
	srv, store := setup(t, backend)

	rec := doForm(srv, "/login", url.Values{"identifier": {"jane@campus.test"}, "secret": {"wrong"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "jane@campus.test", "entered identifier is preserved")
	assert.False(t, store.Current().Authenticated())
}

func TestPublicLanding(t *testing.T) {
	srv, _ := setup(t, jsonHandler(`[]`))

	rec := doGET(srv, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Welcome to the campus portal")
	assert.Contains(t, body, `href="/login"`)
}

func TestLandingRedirectsByRole(t *testing.T) {
	tests := []struct {
		role policy.Role
		want string
	}{
		{policy.RoleAdmin, "/students"},
		{policy.RoleFaculty, "/classes"},
		{policy.RoleStudent, "/profile"},
		{policy.RoleParent, "/child"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			srv, store := setup(t, jsonHandler(`[]`))
			loginAs(t, store, tt.role)

			rec := doGET(srv, "/")
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tt.want, rec.Header().Get("Location"))
		})
	}
}

func TestStudentsListForAdmin(t *testing.T) {
	srv, store := setup(t, jsonHandler(`[{"id":1,"name":"Jane Poe","usn":"1ab20cs001","department":"CSE","semester":3}]`))
	loginAs(t, store, policy.RoleAdmin)

	rec := doGET(srv, "/students")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Jane Poe")
	assert.Contains(t, body, "1ab20cs001")
	assert.Contains(t, body, "/students/new", "admin sees the create action")
	assert.Contains(t, body, "/students/1/delete", "admin sees the delete action")
}

func TestStudentsDeniedForStudentRole(t *testing.T) {
	srv, store := setup(t, jsonHandler(`[]`))
	loginAs(t, store, policy.RoleStudent)

	rec := doGET(srv, "/students")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Access Denied")
}

func TestListBackendFailureShowsRetry(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"backend exploded"}`))
	})
	srv, store := setup(t, backend)
	loginAs(t, store, policy.RoleAdmin)

	rec := doGET(srv, "/students")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "backend exploded")
	assert.Contains(t, body, `href="/students"`, "retry link points back at the screen")
	assert.NotContains(t, body, "<td>", "no fabricated rows on failure")
}

func TestFeesListShowsDerivedState(t *testing.T) {
	// stale server-side derived fields must be ignored in favor of the
	// client-side recomputation
	srv, store := setup(t, jsonHandler(`[{"id":1,"studentId":5,"tuitionFee":1000,"developmentFee":200,"universityFee":150,"otherFee":50,"amountPaid":1000,"totalAmount":1,"pendingAmount":1,"status":"Paid","dueDate":"2026-09-01"}]`))
	loginAs(t, store, policy.RoleAdmin)

	rec := doGET(srv, "/fees")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "1400.00")
	assert.Contains(t, body, "400.00")
	assert.Contains(t, body, "Partial")
}

func TestAttendanceCreateRejectsNonToday(t *testing.T) {
	var backendHits int
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			backendHits++
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[]`))
	})
	srv, store := setup(t, backend)
	loginAs(t, store, policy.RoleFaculty)

	yesterday := time.Now().AddDate(0, 0, -1).Format(core.DateLayout)
	rec := doForm(srv, "/attendance/new", url.Values{
		"studentId": {"1"},
		"classId":   {"2"},
		"date":      {yesterday},
		"present":   {"on"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "must be today")
	assert.Equal(t, 0, backendHits, "invalid payload must not reach the backend")
}

func TestAttendanceListFacultyResolvesOwnClasses(t *testing.T) {
	var paths []string
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/classes/faculty/7":
			_, _ = w.Write([]byte(`[{"id":2,"name":"CS","section":"A"},{"id":5,"name":"CS","section":"B"}]`))
		case "/attendance/class/2":
			_, _ = w.Write([]byte(`[{"id":10,"studentId":1,"classId":2,"date":"2026-08-28","present":true}]`))
		case "/attendance/class/5":
			_, _ = w.Write([]byte(`[{"id":11,"studentId":9,"classId":5,"date":"2026-08-28","present":false,"remarks":"sick leave"}]`))
		default:
			_, _ = w.Write([]byte(`[]`))
		}
	})
	srv, store := setup(t, backend)
	loginAs(t, store, policy.RoleFaculty)

	rec := doGET(srv, "/attendance")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "sick leave", "records of every assigned class are listed")
	assert.Contains(t, paths, "/classes/faculty/7", "classes are resolved before attendance")
	assert.Contains(t, paths, "/attendance/class/2")
	assert.Contains(t, paths, "/attendance/class/5")
	assert.NotContains(t, paths, "/attendance/class/7", "the user id is never used as a class id")
}

func TestAttendanceEdit(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPut {
			gotMethod, gotPath = r.Method, r.URL.Path
			b, _ := ioutil.ReadAll(r.Body)
			gotBody = string(b)
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte(`{"id":3,"studentId":1,"classId":2,"date":"2026-08-28","present":false,"remarks":""}`))
	})
	srv, store := setup(t, backend)
	loginAs(t, store, policy.RoleFaculty)

	rec := doGET(srv, "/attendance/3/edit")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "2026-08-28")
	assert.Contains(t, body, "readonly", "record identity fields stay read-only")

	rec = doForm(srv, "/attendance/3/edit", url.Values{"present": {"on"}, "remarks": {"late arrival"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/attendance", rec.Header().Get("Location"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/attendance/update/3", gotPath)
	assert.Contains(t, gotBody, `"present":true`)
	assert.Contains(t, gotBody, "late arrival")
}

func TestExamsList(t *testing.T) {
	srv, store := setup(t, jsonHandler(
		`[{"id":1,"classId":2,"subject":"Operating Systems","examDate":"2026-09-10","examType":"MIDTERM","active":true}]`))
	loginAs(t, store, policy.RoleFaculty)

	rec := doGET(srv, "/exams")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Operating Systems")
	assert.Contains(t, body, "MIDTERM")
	assert.Contains(t, body, "Active")
	assert.Contains(t, body, "/exams/new", "faculty can schedule exams")
	assert.NotContains(t, body, "/exams/1/delete", "only admins can delete exams")
}

func TestReportsDashboard(t *testing.T) {
	body := `{"totalStudents":120,"averageGrade":78.5,"attendancePercent":91.25,"totalFeesCollected":250000}`

	t.Run("admin sees the institution view", func(t *testing.T) {
		srv, store := setup(t, jsonHandler(body))
		loginAs(t, store, policy.RoleAdmin)

		rec := doGET(srv, "/reports")
		assert.Equal(t, http.StatusOK, rec.Code)
		got := rec.Body.String()
		assert.Contains(t, got, "Institution Reports")
		assert.Contains(t, got, "120")
		assert.Contains(t, got, "78.50%")
		assert.Contains(t, got, "91.25%")
		assert.Contains(t, got, "250000.00")
	})

	t.Run("student sees the academic slice", func(t *testing.T) {
		srv, store := setup(t, jsonHandler(body))
		loginAs(t, store, policy.RoleStudent)

		rec := doGET(srv, "/reports")
		assert.Equal(t, http.StatusOK, rec.Code)
		got := rec.Body.String()
		assert.Contains(t, got, "My Academic Report")
		assert.Contains(t, got, "78.50%")
		assert.NotContains(t, got, "Total Students")
		assert.NotContains(t, got, "Fees Collected")
	})
}

func TestNotificationsListFiltersStale(t *testing.T) {
	now := time.Now().UTC()
	fresh := now.Add(-71 * time.Hour).Format(time.RFC3339)
	stale := now.Add(-73 * time.Hour).Format(time.RFC3339)
	srv, store := setup(t, jsonHandler(
		`[{"id":1,"title":"Fresh Exam Notice","type":"Info","createdAt":"`+fresh+`"},`+
			`{"id":2,"title":"Stale Holiday Notice","type":"Info","createdAt":"`+stale+`"}]`))
	loginAs(t, store, policy.RoleAdmin)

	rec := doGET(srv, "/notifications")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Fresh Exam Notice")
	assert.NotContains(t, body, "Stale Holiday Notice")
}

func TestTimetableWeeklyGrid(t *testing.T) {
	srv, store := setup(t, jsonHandler(
		`[{"id":1,"classId":2,"facultyId":3,"subject":"Operating Systems","date":"2026-08-24","startTime":"09:00","endTime":"10:00"}]`))
	loginAs(t, store, policy.RoleStudent)

	rec := doGET(srv, "/timetable")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Monday")
	assert.Contains(t, body, "Friday")
	assert.Contains(t, body, "Operating Systems")
	assert.NotContains(t, body, "+ Add slot", "students cannot create slots")
}

func TestDiscussionFeedAndPost(t *testing.T) {
	var posted bool
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.Method == http.MethodPost:
			posted = true
			w.WriteHeader(http.StatusCreated)
		default:
			_, _ = w.Write([]byte(`[{"id":1,"classId":2,"authorName":"Prof X","message":"welcome","postedAt":"2026-08-29T10:00:00Z"}]`))
		}
	})
	srv, store := setup(t, backend)
	loginAs(t, store, policy.RoleStudent)

	rec := doGET(srv, "/discussion/2")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "welcome")
	assert.Contains(t, rec.Body.String(), "Prof X")

	rec = doForm(srv, "/discussion/2", url.Values{"message": {"hello all"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/discussion/2", rec.Header().Get("Location"))
	assert.True(t, posted)
}

func TestExpiredBackendSessionForcesRelogin(t *testing.T) {
	backend := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"token expired"}`))
	})
	srv, store := setup(t, backend)
	loginAs(t, store, policy.RoleAdmin)

	// detail screens bubble gateway errors to the central handler
	rec := doGET(srv, "/fees/1")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, store.Current().Authenticated(), "local session is cleared")
}

func TestLogout(t *testing.T) {
	srv, store := setup(t, jsonHandler(`[]`))
	loginAs(t, store, policy.RoleAdmin)

	rec := doForm(srv, "/logout", url.Values{})
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.False(t, store.Current().Authenticated())
}

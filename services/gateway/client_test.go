package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

type staticCreds struct{ cred string }

func (s *staticCreds) Credential() string { return s.cred }

func newTestClient(t *testing.T, handler http.Handler) (*Client, *staticCreds, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	conf := &core.Config{BackendBaseURL: srv.URL, RequestTimeout: 5 * time.Second}
	creds := &staticCreds{}
	return NewClient(conf, creds, nopLogger{}), creds, srv
}

func TestClientCredentialPropagation(t *testing.T) {
	var gotAuth []string
	client, creds, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]campus.Student{})
	}))
	ctx := context.Background()

	// unauthenticated: no Authorization header at all
	_, err := client.Students(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "", gotAuth[0])

	// after login the very next request carries the credential
	creds.cred = "tok-abc"
	_, err = client.Students(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-abc", gotAuth[1])

	// after logout it is gone again
	creds.cred = ""
	_, err = client.Students(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "", gotAuth[2])
}

func TestClientRequestHeaders(t *testing.T) {
	var requestIDs []string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestIDs = append(requestIDs, r.Header.Get("X-Request-ID"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		_ = json.NewEncoder(w).Encode([]campus.Student{})
	}))

	_, err := client.Students(context.Background())
	assert.NoError(t, err)
	_, err = client.Students(context.Background())
	assert.NoError(t, err)

	assert.NotEmpty(t, requestIDs[0])
	assert.NotEqual(t, requestIDs[0], requestIDs[1], "each request gets its own id")
}

func TestClientAPIErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "message field", status: 400, body: `{"message":"usn already taken"}`, wantMessage: "usn already taken"},
		{name: "error field", status: 422, body: `{"error":"bad input"}`, wantMessage: "bad input"},
		{name: "no body falls back to status text", status: 500, body: "", wantMessage: "Internal Server Error"},
		{name: "non-json body falls back to status text", status: 502, body: "<html>boom</html>", wantMessage: "Bad Gateway"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))

			_, err := client.Students(context.Background())
			assert.Error(t, err)
			apiErr, ok := err.(*APIError)
			if assert.True(t, ok, "expected *APIError, got %T", err) {
				assert.Equal(t, tt.status, apiErr.Status)
				assert.Equal(t, tt.wantMessage, apiErr.Message)
			}
		})
	}
}

func TestClientErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(&APIError{Status: 404}))
	assert.False(t, IsNotFound(&APIError{Status: 500}))
	assert.True(t, IsUnauthorized(&APIError{Status: 401}))
	assert.True(t, IsUnauthorized(&APIError{Status: 403}))
	assert.False(t, IsUnauthorized(&APIError{Status: 404}))
	assert.False(t, IsUnauthorized(context.Canceled))
}

func TestClientAuthenticate(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var req map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jane@campus.test", req["emailOrUsn"])
		assert.Equal(t, "pwd", req["password"])

		// ids arrive as bare JSON numbers
		_, _ = w.Write([]byte(`{"token":"tok","role":"ROLE_STUDENT","userId":12,"fullName":"Jane","studentId":34}`))
	}))

	res, err := client.Authenticate(context.Background(), "jane@campus.test", "pwd")
	assert.NoError(t, err)
	assert.Equal(t, "tok", res.Credential)
	assert.Equal(t, "ROLE_STUDENT", res.Role)
	assert.Equal(t, "12", res.SubjectID)
	assert.Equal(t, "Jane", res.DisplayName)
	assert.Equal(t, "34", res.StudentID)
}

func TestClientStudentIDForUser(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/students/by-user/12", r.URL.Path)
			_ = json.NewEncoder(w).Encode(campus.Student{ID: 34})
		}))
		sid, err := client.StudentIDForUser(context.Background(), "12")
		assert.NoError(t, err)
		assert.Equal(t, "34", sid)
	})

	t.Run("empty record", func(t *testing.T) {
		client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(campus.Student{})
		}))
		_, err := client.StudentIDForUser(context.Background(), "12")
		assert.True(t, IsNotFound(err))
	})
}

func TestClientCRUDPaths(t *testing.T) {
	var gotMethod, gotPath string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	ctx := context.Background()

	tests := []struct {
		name       string
		call       func() error
		wantMethod string
		wantPath   string
	}{
		{name: "create student", call: func() error { return client.CreateStudent(ctx, campus.NewStudent{}) }, wantMethod: "POST", wantPath: "/students/create"},
		{name: "update student", call: func() error { return client.UpdateStudent(ctx, "3", campus.NewStudent{}) }, wantMethod: "PUT", wantPath: "/students/3"},
		{name: "delete student", call: func() error { return client.DeleteStudent(ctx, "3") }, wantMethod: "DELETE", wantPath: "/students/3"},
		{name: "mark attendance", call: func() error { return client.MarkAttendance(ctx, campus.NewAttendance{}) }, wantMethod: "POST", wantPath: "/attendance/create"},
		{name: "update attendance", call: func() error { return client.UpdateAttendance(ctx, "3", campus.UpdateAttendance{}) }, wantMethod: "PUT", wantPath: "/attendance/update/3"},
		{name: "create exam", call: func() error { return client.CreateExam(ctx, campus.NewExam{}) }, wantMethod: "POST", wantPath: "/exams/create"},
		{name: "update exam", call: func() error { return client.UpdateExam(ctx, "5", campus.NewExam{}) }, wantMethod: "PUT", wantPath: "/exams/5"},
		{name: "delete exam", call: func() error { return client.DeleteExam(ctx, "5") }, wantMethod: "DELETE", wantPath: "/exams/5"},
		{name: "mark notification read", call: func() error { return client.MarkNotificationRead(ctx, "9") }, wantMethod: "PUT", wantPath: "/notifications/9/read"},
		{name: "post discussion", call: func() error { return client.PostDiscussion(ctx, campus.NewDiscussionPost{}) }, wantMethod: "POST", wantPath: "/discussions/create"},
		{name: "update profile", call: func() error { return client.UpdateProfile(ctx, "12", campus.UpdateProfile{}) }, wantMethod: "PUT", wantPath: "/profiles/user/12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.call())
			assert.Equal(t, tt.wantMethod, gotMethod)
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}

func TestClientScopedReads(t *testing.T) {
	var gotPath string
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte("[]"))
	}))
	ctx := context.Background()

	tests := []struct {
		name     string
		call     func() error
		wantPath string
	}{
		{name: "attendance by student", call: func() error { _, err := client.AttendanceByStudent(ctx, "5"); return err }, wantPath: "/attendance/student/5"},
		{name: "attendance by class", call: func() error { _, err := client.AttendanceByClass(ctx, "2"); return err }, wantPath: "/attendance/class/2"},
		{name: "fees by student", call: func() error { _, err := client.FeesByStudent(ctx, "5"); return err }, wantPath: "/fees/student/5"},
		{name: "grades by student", call: func() error { _, err := client.GradesByStudent(ctx, "5"); return err }, wantPath: "/grades/student/5"},
		{name: "classes by faculty", call: func() error { _, err := client.ClassesByFaculty(ctx, "8"); return err }, wantPath: "/classes/faculty/8"},
		{name: "notifications for recipient", call: func() error { _, err := client.NotificationsForRecipient(ctx, "12"); return err }, wantPath: "/notifications/recipient/12"},
		{name: "discussion by class", call: func() error { _, err := client.DiscussionByClass(ctx, "2"); return err }, wantPath: "/discussions/class/2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NoError(t, tt.call())
			assert.Equal(t, tt.wantPath, gotPath)
		})
	}
}

func TestClientReportSummary(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/summary", r.URL.Path)
		_, _ = w.Write([]byte(`{"totalStudents":120,"averageGrade":78.5,"attendancePercent":91.25,"totalFeesCollected":250000}`))
	}))

	summary, err := client.ReportSummary(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 120, summary.TotalStudents)
	assert.Equal(t, 78.5, summary.AverageGrade)
	assert.Equal(t, 91.25, summary.AttendancePercent)
	assert.Equal(t, float64(250000), summary.TotalFeesCollected)
}

func TestClientCareerSuggestion(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/career/suggest/12", r.URL.Path)
		_, _ = w.Write([]byte(`{"suggestedCareers":["Data Engineer"],"recommendedCertifications":["SQL Associate"],"totalSkillsAnalyzed":4}`))
	}))

	sugg, err := client.CareerSuggestion(context.Background(), "12")
	assert.NoError(t, err)
	assert.Equal(t, []string{"Data Engineer"}, sugg.SuggestedCareers)
	assert.Equal(t, []string{"SQL Associate"}, sugg.RecommendedCertifications)
	assert.Equal(t, 4, sugg.TotalSkillsAnalyzed)
}

func TestClientUpload(t *testing.T) {
	client, _, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/submissions/submit", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "7", r.FormValue("assignmentId"))
		assert.Equal(t, "34", r.FormValue("studentId"))

		file, header, err := r.FormFile("file")
		assert.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "answers.pdf", header.Filename)
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.SubmitAssignment(context.Background(), "7", "34", "answers.pdf", strings.NewReader("content"))
	assert.NoError(t, err)
}

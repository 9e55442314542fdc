// Package webui is the browser-facing console: server-rendered screens
// over the campus REST backend. It holds no authoritative state; every
// screen is a view over gateway responses.
package webui

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/session"
	"github.com/edusuite/campus-console/services/gateway"
	"github.com/edusuite/campus-console/services/poller"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		Store          *session.Store
		API            *gateway.Client
		Feeds          *poller.Registry
		DisableReqLogs bool
	}

	Server struct {
		deps ServerDeps
		app  *echo.Echo

		shutdown chan struct{}
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		shutdown: make(chan struct{}),
	}
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.Renderer = newRenderer()
	// the rewrite would turn "/" into "" and break the landing route
	s.app.Pre(middleware.RemoveTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		Skipper: func(ctx echo.Context) bool { return ctx.Request().URL.Path == "/" },
	}))
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.HTTPErrorHandler = newUIErrorHandler(s.deps.Logger, s.deps.Store, s.signalShutdown)
	s.app.Debug = conf.Debug

	base := uiBase{deps: s.deps}

	// public screens
	registerAuthUI(s.app, base)

	// authenticated screens
	ag := s.app.Group("", requireSession(s.deps.Store))
	registerDashboardUI(ag, base)
	registerStudentUI(ag, base)
	registerFacultyUI(ag, base)
	registerParentUI(ag, base)
	registerClassUI(ag, base)
	registerAttendanceUI(ag, base)
	registerGradeUI(ag, base)
	registerFeeUI(ag, base)
	registerNotificationUI(ag, base)
	registerTimetableUI(ag, base)
	registerSubjectUI(ag, base)
	registerExamUI(ag, base)
	registerAssignmentUI(ag, base)
	registerSkillUI(ag, base)
	registerNoteUI(ag, base)
	registerDiscussionUI(ag, base)
	registerProfileUI(ag, base)
	registerChildUI(ag, base)
	registerReportsUI(ag, base)
}

func (s *Server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.deps.Conf.Server.Host + ":" + s.deps.Conf.Server.Port))
}

func (s *Server) Stop(ctx context.Context) error {
	s.deps.Feeds.Close()
	return s.app.Shutdown(ctx)
}

// Shutdown is closed when an unrecoverable error asks for a graceful stop.
func (s *Server) Shutdown() <-chan struct{} {
	return s.shutdown
}

func (s *Server) signalShutdown() {
	select {
	case <-s.shutdown:
	default:
		close(s.shutdown)
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

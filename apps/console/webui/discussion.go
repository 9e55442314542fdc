package webui

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
	"github.com/edusuite/campus-console/core/policy"
)

type discussionUI struct {
	uiBase
}

func registerDiscussionUI(g *echo.Group, base uiBase) {
	ui := discussionUI{base}
	g.GET("/discussion", ui.classPicker)
	g.GET("/discussion/:classId", ui.feed)
	g.POST("/discussion/:classId", ui.post)
}

// DiscussionData drives the auto-refreshing feed screen.
type DiscussionData struct {
	ClassID        string
	Posts          []campus.DiscussionPost
	CanPost        bool
	RefreshSeconds int

	LoadErr   string
	RetryPath string
}

// classPicker lists the classes with an open discussion board.
func (ui discussionUI) classPicker(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapDiscussion).View {
		return ui.denied(ctx)
	}

	p := ui.page("Discussion Boards")

	classes, err := ui.deps.API.Classes(ctx.Request().Context())
	if err != nil {
		p.Data = listError(err, "/discussion")
		return ctx.Render(http.StatusOK, "list", p)
	}

	rows := make([]Row, 0, len(classes))
	for _, cl := range classes {
		rows = append(rows, Row{
			Cells:    []string{cl.Name, cl.Section, cl.Department},
			ViewPath: "/discussion/" + itoa(cl.ID),
		})
	}
	p.Data = ListData{
		Columns:   []string{"Class", "Section", "Department"},
		Rows:      rows,
		EmptyText: "No classes available.",
	}
	return ctx.Render(http.StatusOK, "list", p)
}

// feed serves the polled snapshot for one class. The page refreshes
// itself on the poll interval, so each load marks the feed active and
// the poller keeps it warm; once the viewer navigates away the feed
// goes idle and its refresh loop stops.
func (ui discussionUI) feed(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	perm := policy.Can(sess.Role, policy.CapDiscussion)
	if !perm.View {
		return ui.denied(ctx)
	}

	classID := ctx.Param("classId")
	p := ui.page("Class Discussion")

	posts, err := ui.deps.Feeds.Feed(classID).Snapshot(ctx.Request().Context())
	if err != nil {
		p.Data = DiscussionData{ClassID: classID, LoadErr: userMessage(err), RetryPath: "/discussion/" + classID}
		return ctx.Render(http.StatusOK, "discussion", p)
	}

	p.Data = DiscussionData{
		ClassID:        classID,
		Posts:          posts,
		CanPost:        perm.Create,
		RefreshSeconds: int(ui.deps.Conf.DiscussionPollInterval.Seconds()),
	}
	return ctx.Render(http.StatusOK, "discussion", p)
}

func (ui discussionUI) post(ctx echo.Context) error {
	sess := ui.deps.Store.Current()
	if !policy.Can(sess.Role, policy.CapDiscussion).Create {
		return ui.denied(ctx)
	}

	classID := ctx.Param("classId")
	payload := campus.NewDiscussionPost{
		ClassID: atoi(classID),
		Message: core.CleanString(ctx.FormValue("message")),
	}
	if err := payload.Validate(); err != nil {
		p := ui.page("Class Discussion")
		posts, _ := ui.deps.Feeds.Feed(classID).Snapshot(ctx.Request().Context())
		_, banner := formErrors(err)
		p.Error = banner
		p.Data = DiscussionData{
			ClassID:        classID,
			Posts:          posts,
			CanPost:        true,
			RefreshSeconds: int(ui.deps.Conf.DiscussionPollInterval.Seconds()),
		}
		return ctx.Render(http.StatusBadRequest, "discussion", p)
	}
	if err := ui.deps.API.PostDiscussion(ctx.Request().Context(), payload); err != nil {
		return err
	}

	// force the next snapshot to fetch so the new post shows immediately
	ui.deps.Feeds.Feed(classID).Invalidate()
	return ctx.Redirect(http.StatusSeeOther, "/discussion/"+classID)
}

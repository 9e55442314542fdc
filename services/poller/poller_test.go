package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/edusuite/campus-console/core/campus"
)

type nopLogger struct{}

func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Warn(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Fatal(msg string, args ...interface{}) {}

func TestFeedSnapshotFetchesOnFirstAccess(t *testing.T) {
	var calls int32
	fetch := func(ctx context.Context) ([]campus.DiscussionPost, error) {
		atomic.AddInt32(&calls, 1)
		return []campus.DiscussionPost{{ID: 1, Message: "hi"}}, nil
	}
	f := NewFeed(time.Hour, fetch, nopLogger{})
	defer f.Close()

	posts, err := f.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot() unexpected error = %v", err)
	}
	if len(posts) != 1 || posts[0].Message != "hi" {
		t.Errorf("Snapshot() = %+v", posts)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("fetch calls = %d, want 1", got)
	}

	// second access within the interval serves the cached content
	if _, err := f.Snapshot(context.Background()); err != nil {
		t.Fatalf("Snapshot() unexpected error = %v", err)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("fetch calls after cached access = %d, want 1", got)
	}
}

func TestFeedSnapshotSurfacesFetchError(t *testing.T) {
	wantErr := errors.New("backend down")
	f := NewFeed(time.Hour, func(ctx context.Context) ([]campus.DiscussionPost, error) {
		return nil, wantErr
	}, nopLogger{})
	defer f.Close()

	if _, err := f.Snapshot(context.Background()); err != wantErr {
		t.Errorf("Snapshot() error = %v, want %v", err, wantErr)
	}
}

func TestFeedInvalidateForcesRefetch(t *testing.T) {
	var calls int32
	f := NewFeed(time.Hour, func(ctx context.Context) ([]campus.DiscussionPost, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}, nopLogger{})
	defer f.Close()

	_, _ = f.Snapshot(context.Background())
	f.Invalidate()
	_, _ = f.Snapshot(context.Background())

	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("fetch calls = %d, want 2", got)
	}
}

func TestFeedRefreshesWhileViewed(t *testing.T) {
	var calls int32
	f := NewFeed(20*time.Millisecond, func(ctx context.Context) ([]campus.DiscussionPost, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}, nopLogger{})
	defer f.Close()

	// keep the feed active across several intervals
	deadline := time.Now().Add(150 * time.Millisecond)
	for time.Now().Before(deadline) {
		_, _ = f.Snapshot(context.Background())
		time.Sleep(10 * time.Millisecond)
	}

	if got := atomic.LoadInt32(&calls); got < 3 {
		t.Errorf("fetch calls = %d, want several background refreshes", got)
	}
}

func TestFeedStopsWhenIdle(t *testing.T) {
	var calls int32
	f := NewFeed(10*time.Millisecond, func(ctx context.Context) ([]campus.DiscussionPost, error) {
		atomic.AddInt32(&calls, 1)
		return nil, nil
	}, nopLogger{})
	defer f.Close()

	_, _ = f.Snapshot(context.Background())

	// idleAfter is 3x the interval; wait well past it
	time.Sleep(100 * time.Millisecond)
	settled := atomic.LoadInt32(&calls)

	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != settled {
		t.Errorf("fetch calls kept growing after idle stop: %d -> %d", settled, got)
	}

	f.mu.Lock()
	running := f.running
	f.mu.Unlock()
	if running {
		t.Error("feed loop still running after idle period")
	}
}

func TestRegistryReusesFeeds(t *testing.T) {
	var opened int32
	reg := NewRegistry(time.Hour, func(classID string) FetchFunc {
		atomic.AddInt32(&opened, 1)
		return func(ctx context.Context) ([]campus.DiscussionPost, error) { return nil, nil }
	}, nopLogger{})
	defer reg.Close()

	f1 := reg.Feed("2")
	f2 := reg.Feed("2")
	f3 := reg.Feed("3")

	if f1 != f2 {
		t.Error("Registry.Feed() created a second feed for the same class")
	}
	if f1 == f3 {
		t.Error("Registry.Feed() shared a feed across classes")
	}
	if got := atomic.LoadInt32(&opened); got != 2 {
		t.Errorf("open calls = %d, want 2", got)
	}
}

// Package poller refreshes class-discussion feeds on a fixed interval
// while a screen is viewing them, and stops the interval once viewing
// stops so no timer leaks across navigations.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/edusuite/campus-console/core"
	"github.com/edusuite/campus-console/core/campus"
)

// FetchFunc loads the current feed content from the backend.
type FetchFunc func(ctx context.Context) ([]campus.DiscussionPost, error)

// Feed polls one discussion feed. The refresh loop runs only while the
// feed is being viewed: each Snapshot call counts as activity, and the
// loop shuts itself down after idleAfter without any.
type Feed struct {
	interval  time.Duration
	idleAfter time.Duration
	fetch     FetchFunc
	logger    core.Logger

	mu         sync.Mutex
	latest     []campus.DiscussionPost
	fetchErr   error
	fetched    bool
	lastAccess time.Time
	running    bool
	stop       chan struct{}
}

func NewFeed(interval time.Duration, fetch FetchFunc, logger core.Logger) *Feed {
	return &Feed{
		interval:  interval,
		idleAfter: 3 * interval,
		fetch:     fetch,
		logger:    logger,
	}
}

// Snapshot returns the latest feed content, fetching synchronously on
// first access, and (re)starts the refresh loop.
func (f *Feed) Snapshot(ctx context.Context) ([]campus.DiscussionPost, error) {
	f.mu.Lock()
	f.lastAccess = time.Now()
	if !f.running {
		f.running = true
		f.stop = make(chan struct{})
		go f.loop(f.stop)
	}
	needsFetch := !f.fetched
	f.mu.Unlock()

	if needsFetch {
		f.refresh(ctx)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.latest, f.fetchErr
}

// Invalidate forces the next Snapshot to fetch, used right after a post.
func (f *Feed) Invalidate() {
	f.mu.Lock()
	f.fetched = false
	f.mu.Unlock()
}

// Close stops the refresh loop immediately.
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopLocked()
}

func (f *Feed) stopLocked() {
	if f.running {
		close(f.stop)
		f.running = false
	}
}

func (f *Feed) loop(stop chan struct{}) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			f.mu.Lock()
			idle := time.Since(f.lastAccess) > f.idleAfter
			if idle {
				f.stopLocked()
			}
			f.mu.Unlock()
			if idle {
				return
			}

			ctx, cancel := context.WithTimeout(context.Background(), f.interval)
			f.refresh(ctx)
			cancel()
		}
	}
}

func (f *Feed) refresh(ctx context.Context) {
	posts, err := f.fetch(ctx)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = true
	f.fetchErr = err
	if err != nil {
		f.logger.Warn("poller: feed refresh failed", err)
		return
	}
	f.latest = posts
}

// Registry keys one Feed per class.
type Registry struct {
	interval time.Duration
	logger   core.Logger
	open     func(classID string) FetchFunc

	mu    sync.Mutex
	feeds map[string]*Feed
}

func NewRegistry(interval time.Duration, open func(classID string) FetchFunc, logger core.Logger) *Registry {
	return &Registry{
		interval: interval,
		logger:   logger,
		open:     open,
		feeds:    make(map[string]*Feed),
	}
}

// Feed returns the feed for classID, creating it on first use.
func (r *Registry) Feed(classID string) *Feed {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.feeds[classID]
	if !ok {
		f = NewFeed(r.interval, r.open(classID), r.logger)
		r.feeds[classID] = f
	}
	return f
}

// Close stops every feed's refresh loop.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, f := range r.feeds {
		f.Close()
	}
}

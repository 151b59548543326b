package console

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DataVersion identifies one generation of fetched data. Writes bump it and
// every fetcher bound to a Refresher re-runs for the new version.
type DataVersion uint64

// Fetcher loads one piece of view data. It returns a commit function that
// publishes the result (or the failure) into the view. Commit is only
// called when the fetch still belongs to the latest version.
type Fetcher func(ctx context.Context) (commit func(), err error)

// Refresher runs a fixed set of independent fetchers together.
type Refresher struct {
	fetchers []Fetcher

	mu      sync.Mutex
	version DataVersion
	cancel  context.CancelFunc
}

// NewRefresher binds fetchers to a scheduler.
func NewRefresher(fetchers ...Fetcher) *Refresher {
	return &Refresher{fetchers: fetchers}
}

// Version returns the latest requested version.
func (r *Refresher) Version() DataVersion {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.version
}

// Refresh bumps the version and loads it.
func (r *Refresher) Refresh(ctx context.Context) error {
	r.mu.Lock()
	v := r.version + 1
	r.mu.Unlock()
	return r.Load(ctx, v)
}

// Load runs every fetcher concurrently for version v and commits their
// results in declaration order. A load for a version older than the
// latest returns ErrStale without fetching. Starting a newer load cancels
// the one in flight, whose results are then discarded. The returned error
// joins the fetch errors; each commit has already handled its own.
func (r *Refresher) Load(ctx context.Context, v DataVersion) error {
	r.mu.Lock()
	if v < r.version || (v == r.version && r.cancel != nil) {
		r.mu.Unlock()
		return ErrStale
	}
	if r.cancel != nil {
		r.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	r.version = v
	r.cancel = cancel
	r.mu.Unlock()

	commits := make([]func(), len(r.fetchers))
	errs := make([]error, len(r.fetchers))

	var g errgroup.Group
	for i, fetch := range r.fetchers {
		g.Go(func() error {
			commits[i], errs[i] = fetch(ctx)
			return nil
		})
	}
	_ = g.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.version != v {
		cancel()
		return ErrStale
	}
	r.cancel = nil
	cancel()

	for _, commit := range commits {
		if commit != nil {
			commit()
		}
	}
	return errors.Join(errs...)
}

// Package dashboard fetches and combines the three dashboard read resources
// and drives the two write flows that invalidate them.
package dashboard

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/sentryprime/sentryctl/internal/domain"
	"github.com/sentryprime/sentryctl/internal/errors"
	"github.com/sentryprime/sentryctl/internal/metrics"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// API is the slice of the gateway this package consumes.
type API interface {
	DashboardStats(ctx context.Context) (*domain.Stats, error)
	Websites(ctx context.Context) ([]domain.Website, error)
	Scans(ctx context.Context) ([]domain.Scan, error)
	CreateWebsite(ctx context.Context, url, name string) (*domain.Website, error)
	TriggerScan(ctx context.Context, websiteID, url string) (*domain.Scan, error)
}

// snapshotKey is the singleflight key shared by all reload triggers.
const snapshotKey = "snapshot"

// Aggregator produces complete dashboard snapshots. There is no cache and no
// incremental diffing: every load re-fetches all three resources from zero.
type Aggregator struct {
	api   API
	clock clockwork.Clock
	group singleflight.Group
}

// NewAggregator creates an aggregator over the given API slice.
func NewAggregator(api API, clock clockwork.Clock) *Aggregator {
	return &Aggregator{api: api, clock: clock}
}

// LoadAll fetches stats, websites and scans concurrently and merges them into
// one snapshot. Join semantics are all-or-nothing: if any read fails, the
// whole load fails and no partial result is surfaced. Concurrent callers are
// collapsed onto a single in-flight load.
func (a *Aggregator) LoadAll(ctx context.Context) (*domain.Snapshot, error) {
	return a.reload(ctx, "load")
}

// Invalidate detaches future loads from any load currently in flight. The
// in-flight load keeps running and settles for its own callers; callers
// arriving after Invalidate start a fresh fetch instead of joining it. Must
// be called on every session transition, or a load dispatched under an old
// token would satisfy callers of the new session.
func (a *Aggregator) Invalidate() {
	a.group.Forget(snapshotKey)
}

func (a *Aggregator) reload(ctx context.Context, trigger string) (*domain.Snapshot, error) {
	v, err, _ := a.group.Do(snapshotKey, func() (any, error) {
		return a.fetchAll(ctx)
	})
	if err != nil {
		metrics.SnapshotReloadsTotal.WithLabelValues(trigger, metrics.StatusError).Inc()
		return nil, errors.AsError(err)
	}

	metrics.SnapshotReloadsTotal.WithLabelValues(trigger, metrics.StatusSuccess).Inc()
	return v.(*domain.Snapshot), nil
}

func (a *Aggregator) fetchAll(ctx context.Context) (*domain.Snapshot, error) {
	var (
		stats    *domain.Stats
		websites []domain.Website
		scans    []domain.Scan
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = a.api.DashboardStats(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		websites, err = a.api.Websites(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		scans, err = a.api.Scans(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Snapshot{
		Stats:     *stats,
		Websites:  websites,
		Scans:     scans,
		FetchedAt: a.clock.Now(),
	}, nil
}

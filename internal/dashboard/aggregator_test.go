package dashboard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/sentryprime/sentryctl/internal/domain"
	"github.com/sentryprime/sentryctl/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAll_MergesAllThreeResources(t *testing.T) {
	api := &mockAPI{
		statsFn: func(context.Context) (*domain.Stats, error) {
			return &domain.Stats{Overview: domain.Overview{TotalWebsites: 2, TotalScans: 7}}, nil
		},
		websitesFn: func(context.Context) ([]domain.Website, error) {
			return []domain.Website{{ID: "w1"}, {ID: "w2"}}, nil
		},
		scansFn: func(context.Context) ([]domain.Scan, error) {
			return []domain.Scan{{ID: "s1"}}, nil
		},
	}
	clock := clockwork.NewFakeClock()
	agg := NewAggregator(api, clock)

	snap, err := agg.LoadAll(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, snap.Stats.Overview.TotalWebsites)
	assert.Len(t, snap.Websites, 2)
	assert.Len(t, snap.Scans, 1)
	assert.Equal(t, clock.Now(), snap.FetchedAt)

	assert.EqualValues(t, 1, api.statsCalls.Load())
	assert.EqualValues(t, 1, api.websitesCalls.Load())
	assert.EqualValues(t, 1, api.scansCalls.Load())
}

func TestLoadAll_AllOrNothing(t *testing.T) {
	// One failed read rejects the entire snapshot, even though the other
	// two reads succeeded.
	api := &mockAPI{
		scansFn: func(context.Context) ([]domain.Scan, error) {
			return nil, errors.NetworkError("HTTP 500", 500)
		},
	}
	agg := NewAggregator(api, clockwork.NewFakeClock())

	snap, err := agg.LoadAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)

	structured := errors.AsError(err)
	assert.Equal(t, errors.TypeNetwork, structured.Type)
	assert.Equal(t, 500, structured.StatusCode)
}

func TestLoadAll_NoCaching(t *testing.T) {
	api := &mockAPI{}
	agg := NewAggregator(api, clockwork.NewFakeClock())

	_, err := agg.LoadAll(context.Background())
	require.NoError(t, err)
	_, err = agg.LoadAll(context.Background())
	require.NoError(t, err)

	assert.EqualValues(t, 2, api.statsCalls.Load())
}

func TestLoadAll_CollapsesConcurrentCallers(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	api := &mockAPI{
		statsFn: func(context.Context) (*domain.Stats, error) {
			close(started)
			<-release
			return &domain.Stats{}, nil
		},
	}
	agg := NewAggregator(api, clockwork.NewFakeClock())

	var wg sync.WaitGroup
	results := make([]*domain.Snapshot, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], _ = agg.LoadAll(context.Background())
	}()

	<-started

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[1], _ = agg.LoadAll(context.Background())
	}()

	// Give the second caller time to join the in-flight load.
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	require.NotNil(t, results[0])
	assert.Same(t, results[0], results[1])
	assert.EqualValues(t, 1, api.statsCalls.Load())
}

func TestLoadAll_InvalidateDetachesInFlightLoad(t *testing.T) {
	// A caller arriving after Invalidate must run its own fetch, not join
	// the load that is still in flight.
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int64

	api := &mockAPI{
		statsFn: func(context.Context) (*domain.Stats, error) {
			if calls.Add(1) == 1 {
				close(started)
				<-release
				return &domain.Stats{Overview: domain.Overview{TotalWebsites: 99}}, nil
			}
			return &domain.Stats{Overview: domain.Overview{TotalWebsites: 2}}, nil
		},
	}
	agg := NewAggregator(api, clockwork.NewFakeClock())

	done := make(chan *domain.Snapshot, 1)
	go func() {
		snap, _ := agg.LoadAll(context.Background())
		done <- snap
	}()

	<-started
	agg.Invalidate()

	second, err := agg.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second.Stats.Overview.TotalWebsites)

	close(release)
	first := <-done
	require.NotNil(t, first)
	assert.NotSame(t, first, second)
	assert.Equal(t, 99, first.Stats.Overview.TotalWebsites)
	assert.EqualValues(t, 2, api.statsCalls.Load())
}

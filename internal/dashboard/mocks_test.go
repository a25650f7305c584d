package dashboard

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sentryprime/sentryctl/internal/domain"
)

// mockAPI implements API with overridable function fields and call counters.
type mockAPI struct {
	statsFn    func(ctx context.Context) (*domain.Stats, error)
	websitesFn func(ctx context.Context) ([]domain.Website, error)
	scansFn    func(ctx context.Context) ([]domain.Scan, error)
	createFn   func(ctx context.Context, url, name string) (*domain.Website, error)
	triggerFn  func(ctx context.Context, websiteID, url string) (*domain.Scan, error)

	statsCalls    atomic.Int64
	websitesCalls atomic.Int64
	scansCalls    atomic.Int64
	createCalls   atomic.Int64
	triggerCalls  atomic.Int64
}

func (m *mockAPI) DashboardStats(ctx context.Context) (*domain.Stats, error) {
	m.statsCalls.Add(1)
	if m.statsFn != nil {
		return m.statsFn(ctx)
	}
	return &domain.Stats{}, nil
}

func (m *mockAPI) Websites(ctx context.Context) ([]domain.Website, error) {
	m.websitesCalls.Add(1)
	if m.websitesFn != nil {
		return m.websitesFn(ctx)
	}
	return nil, nil
}

func (m *mockAPI) Scans(ctx context.Context) ([]domain.Scan, error) {
	m.scansCalls.Add(1)
	if m.scansFn != nil {
		return m.scansFn(ctx)
	}
	return nil, nil
}

func (m *mockAPI) CreateWebsite(ctx context.Context, url, name string) (*domain.Website, error) {
	m.createCalls.Add(1)
	if m.createFn != nil {
		return m.createFn(ctx, url, name)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAPI) TriggerScan(ctx context.Context, websiteID, url string) (*domain.Scan, error) {
	m.triggerCalls.Add(1)
	if m.triggerFn != nil {
		return m.triggerFn(ctx, websiteID, url)
	}
	return nil, fmt.Errorf("not implemented")
}

func (m *mockAPI) networkCalls() int64 {
	return m.statsCalls.Load() + m.websitesCalls.Load() + m.scansCalls.Load() +
		m.createCalls.Load() + m.triggerCalls.Load()
}

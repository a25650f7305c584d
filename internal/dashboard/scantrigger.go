package dashboard

import (
	"context"
	"sync"

	"github.com/sentryprime/sentryctl/internal/domain"
	"github.com/sentryprime/sentryctl/internal/errors"
	"github.com/sentryprime/sentryctl/internal/logging"
)

// ScanTrigger starts scans for monitored sites. It tracks the set of website
// ids with a scan currently in flight, so the presentation layer can disable
// the trigger for those sites without blocking unrelated ones. The set is a
// client-local hint only; server-side scan collisions are the server's
// problem.
type ScanTrigger struct {
	api API
	agg *Aggregator

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewScanTrigger creates the scan trigger flow.
func NewScanTrigger(api API, agg *Aggregator) *ScanTrigger {
	return &ScanTrigger{
		api:      api,
		agg:      agg,
		inFlight: make(map[string]struct{}),
	}
}

// TriggerScan starts a scan for one website and returns a fresh snapshot.
// The in-flight marker for websiteID is set before the request is dispatched
// and cleared exactly once, on success and on failure alike.
func (t *ScanTrigger) TriggerScan(ctx context.Context, websiteID, url string) (*domain.Snapshot, error) {
	t.mark(websiteID)
	defer t.unmark(websiteID)

	if _, err := t.api.TriggerScan(ctx, websiteID, url); err != nil {
		return nil, errors.AsError(err)
	}
	logging.WithWebsite(websiteID).Info("Scan triggered")

	return t.agg.reload(ctx, "scan")
}

// Scanning reports whether a scan for websiteID is currently in flight.
func (t *ScanTrigger) Scanning(websiteID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.inFlight[websiteID]
	return ok
}

func (t *ScanTrigger) mark(websiteID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.inFlight[websiteID] = struct{}{}
}

func (t *ScanTrigger) unmark(websiteID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.inFlight, websiteID)
}

package dashboard

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/sentryprime/sentryctl/internal/domain"
	"github.com/sentryprime/sentryctl/internal/errors"
)

// Registration registers new monitored sites. After a successful create it
// re-runs the full aggregation instead of inserting the record locally, so
// server-computed fields (compliance score, risk level) never diverge.
type Registration struct {
	api    API
	agg    *Aggregator
	adding atomic.Bool
}

// NewRegistration creates the website registration flow.
func NewRegistration(api API, agg *Aggregator) *Registration {
	return &Registration{api: api, agg: agg}
}

// AddWebsite validates, creates the site, and returns a fresh snapshot.
// An empty URL fails before any network call. Name is optional.
func (r *Registration) AddWebsite(ctx context.Context, rawURL, name string) (*domain.Snapshot, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return nil, errors.ValidationError("missing url")
	}

	// In-flight hint for the presentation layer. Suppressing a second
	// concurrent call is the caller's job, not ours.
	r.adding.Store(true)
	defer r.adding.Store(false)

	if _, err := r.api.CreateWebsite(ctx, url, strings.TrimSpace(name)); err != nil {
		return nil, errors.AsError(err)
	}

	return r.agg.reload(ctx, "add_website")
}

// Adding reports whether a registration is currently in flight.
func (r *Registration) Adding() bool {
	return r.adding.Load()
}

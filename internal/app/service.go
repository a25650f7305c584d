// Package app is the application layer - the only component that references
// multiple domain components. It owns the session state machine and
// orchestrates every use case the presentation layer consumes.
package app

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/sentryprime/sentryctl/internal/dashboard"
	"github.com/sentryprime/sentryctl/internal/domain"
	"github.com/sentryprime/sentryctl/internal/errors"
	"github.com/sentryprime/sentryctl/internal/logging"
	"github.com/sentryprime/sentryctl/internal/metrics"
)

// AuthAPI is the slice of the gateway the orchestrator consumes directly.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Session, error)
	Me(ctx context.Context) (*domain.User, error)
	PremiumScan(ctx context.Context, url string, maxPages int) (*domain.ScanResult, error)
}

// Service is the session orchestrator. Its state machine has two states:
// logged out (session == nil) and active (session != nil, snapshot optional).
//
// All state mutation happens under mu. The generation counter moves on every
// login, restore and logout; an operation captures the generation before its
// network round trip and its result is discarded when the counter has moved
// meanwhile, so a late response never touches state that belongs to a
// different session.
type Service struct {
	api      AuthAPI
	store    domain.SessionStore
	agg      *dashboard.Aggregator
	websites *dashboard.Registration
	scans    *dashboard.ScanTrigger

	scanMaxPages int

	mu         sync.Mutex
	session    *domain.Session
	snapshot   *domain.Snapshot
	generation uint64
}

// NewService creates the application layer service.
func NewService(api AuthAPI, store domain.SessionStore, agg *dashboard.Aggregator, websites *dashboard.Registration, scans *dashboard.ScanTrigger, scanMaxPages int) *Service {
	return &Service{
		api:          api,
		store:        store,
		agg:          agg,
		websites:     websites,
		scans:        scans,
		scanMaxPages: scanMaxPages,
	}
}

// Authenticate exchanges credentials for a session and activates it. The
// session is persisted before the state flips so every later call finds the
// token in the store.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, errors.AuthError("please fill in all fields")
	}

	sess, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, asAuthError(err)
	}

	if err := s.store.Persist(sess); err != nil {
		return nil, errors.AsError(err)
	}

	s.activate(sess)
	logging.WithUser(sess.User.Email).Info("Signed in")

	user := sess.User
	return &user, nil
}

// Register creates an account and activates the fresh session. The
// confirm-password equality check happens before any network call.
func (s *Service) Register(ctx context.Context, firstName, lastName, email, password, confirmPassword string) (*domain.User, error) {
	if firstName == "" || lastName == "" || email == "" || password == "" {
		return nil, errors.ValidationError("please fill in all fields")
	}
	if password != confirmPassword {
		return nil, errors.ValidationError("passwords do not match")
	}

	sess, err := s.api.Register(ctx, firstName, lastName, email, password)
	if err != nil {
		return nil, asAuthError(err)
	}

	if err := s.store.Persist(sess); err != nil {
		return nil, errors.AsError(err)
	}

	s.activate(sess)
	logging.WithUser(sess.User.Email).Info("Account created")

	user := sess.User
	return &user, nil
}

// RestoreSession loads the persisted token and validates it against the
// server. A stored token is never trusted blindly: a rejected token clears
// the store and leaves the service logged out, returning (nil, nil). Only a
// transport failure is surfaced as an error, without discarding the token,
// so a flaky network does not log the user out.
func (s *Service) RestoreSession(ctx context.Context) (*domain.User, error) {
	sess, err := s.store.Restore()
	if err != nil {
		return nil, errors.AsError(err)
	}
	if sess == nil {
		return nil, nil
	}

	user, err := s.api.Me(ctx)
	if err != nil {
		structured := errors.AsError(err)
		if structured.StatusCode == 0 {
			metrics.SessionRestoresTotal.WithLabelValues(metrics.StatusError).Inc()
			return nil, structured
		}

		slog.Info("Persisted session rejected by server, logging out", "status", structured.StatusCode)
		if clearErr := s.store.Clear(); clearErr != nil {
			logging.WithError(clearErr).Warn("Failed to clear rejected session")
		}
		s.deactivate()
		metrics.SessionRestoresTotal.WithLabelValues(metrics.StatusError).Inc()
		return nil, nil
	}

	refreshed := &domain.Session{Token: sess.Token, User: *user}
	if err := s.store.Persist(refreshed); err != nil {
		logging.WithError(err).Warn("Failed to refresh persisted identity")
	}

	s.activate(refreshed)
	metrics.SessionRestoresTotal.WithLabelValues(metrics.StatusSuccess).Inc()

	restored := *user
	return &restored, nil
}

// Logout always succeeds: the in-memory state flips to logged out even when
// removing the persisted file fails. In-flight requests settle under their
// already-captured token and their results are discarded by the generation
// check.
func (s *Service) Logout() {
	if err := s.store.Clear(); err != nil {
		logging.WithError(err).Warn("Failed to clear persisted session")
	}
	s.deactivate()
	slog.Info("Signed out")
}

// LoadDashboard runs a full aggregation cycle and stores the snapshot. On
// failure the stored snapshot is cleared so the presentation layer can tell
// "never loaded" from "stale-but-valid".
func (s *Service) LoadDashboard(ctx context.Context) (*domain.Snapshot, error) {
	gen, err := s.requireActive()
	if err != nil {
		return nil, err
	}

	snap, err := s.agg.LoadAll(ctx)
	return s.applySnapshot(gen, snap, err)
}

// AddWebsite registers a monitored site and refreshes the snapshot.
func (s *Service) AddWebsite(ctx context.Context, url, name string) (*domain.Snapshot, error) {
	gen, err := s.requireActive()
	if err != nil {
		return nil, err
	}

	snap, err := s.websites.AddWebsite(ctx, url, name)
	return s.applySnapshot(gen, snap, err)
}

// TriggerScan starts a scan for one monitored site and refreshes the snapshot.
func (s *Service) TriggerScan(ctx context.Context, websiteID, url string) (*domain.Snapshot, error) {
	gen, err := s.requireActive()
	if err != nil {
		return nil, err
	}

	snap, err := s.scans.TriggerScan(ctx, websiteID, url)
	return s.applySnapshot(gen, snap, err)
}

// RunFreeScan runs the anonymous on-demand scan. No session required, no
// state touched.
func (s *Service) RunFreeScan(ctx context.Context, rawURL string) (*domain.ScanResult, error) {
	url := strings.TrimSpace(rawURL)
	if url == "" {
		return nil, errors.ValidationError("please enter a website URL")
	}

	result, err := s.api.PremiumScan(ctx, url, s.scanMaxPages)
	if err != nil {
		return nil, errors.AsError(err)
	}
	return result, nil
}

// Scanning reports whether a scan for websiteID is in flight.
func (s *Service) Scanning(websiteID string) bool {
	return s.scans.Scanning(websiteID)
}

// AddingWebsite reports whether a website registration is in flight.
func (s *Service) AddingWebsite() bool {
	return s.websites.Adding()
}

// Active reports whether a session is active.
func (s *Service) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil
}

// Session returns a copy of the active session, or nil when logged out.
func (s *Service) Session() *domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	copied := *s.session
	return &copied
}

// Snapshot returns the last complete snapshot, or nil when none is held.
func (s *Service) Snapshot() *domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

func (s *Service) activate(sess *domain.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *sess
	s.session = &copied
	s.snapshot = nil
	s.generation++
	s.agg.Invalidate()
}

func (s *Service) deactivate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session = nil
	s.snapshot = nil
	s.generation++
	s.agg.Invalidate()
}

func (s *Service) requireActive() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return 0, &errors.Error{Type: errors.TypeAuth, Message: "not signed in", Cause: domain.ErrNoSession}
	}
	return s.generation, nil
}

// applySnapshot installs the result of an operation that was started under
// generation gen. Results belonging to a superseded generation are discarded
// wholesale. Failures past validation clear the stored snapshot; a pure
// validation failure never reached the network and leaves it untouched.
func (s *Service) applySnapshot(gen uint64, snap *domain.Snapshot, err error) (*domain.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		slog.Debug("Discarding result from superseded session")
		return nil, domain.ErrStaleSession
	}

	if err != nil {
		if !errors.IsType(err, errors.TypeValidation) {
			s.snapshot = nil
		}
		return nil, errors.AsError(err)
	}

	s.snapshot = snap
	return snap, nil
}

// asAuthError converts a 4xx rejection of a credentials call into an auth
// error, preserving the server's message. Transport and 5xx failures stay
// network errors.
func asAuthError(err error) *errors.Error {
	structured := errors.AsError(err)
	if structured.Type == errors.TypeNetwork && structured.StatusCode >= 400 && structured.StatusCode < 500 {
		return errors.AuthError(structured.Message)
	}
	return structured
}

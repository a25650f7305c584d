package gateway

import (
	"context"
	"net/http"

	"github.com/sentryprime/sentryctl/internal/domain"
)

// Consumed endpoints. The paths and payload field names mirror the backend's
// wire format exactly; nothing here is renamed.
const (
	endpointLogin       = "/api/auth/login"
	endpointRegister    = "/api/auth/register"
	endpointMe          = "/api/auth/me"
	endpointStats       = "/api/dashboard/stats"
	endpointWebsites    = "/api/dashboard/websites"
	endpointScans       = "/api/dashboard/scans"
	endpointScanTrigger = "/api/dashboard/scan"
	endpointPremiumScan = "/api/scan/premium"
)

// Login exchanges credentials for a session token and identity.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	body := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var session domain.Session
	if err := c.call(ctx, http.MethodPost, endpointLogin, body, false, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Register creates an account and returns the fresh session.
func (c *Client) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Session, error) {
	body := struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
		Password  string `json:"password"`
	}{FirstName: firstName, LastName: lastName, Email: email, Password: password}

	var session domain.Session
	if err := c.call(ctx, http.MethodPost, endpointRegister, body, false, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Me fetches the identity behind the current token. Used to validate a
// restored session against the server.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var payload struct {
		User domain.User `json:"user"`
	}
	if err := c.call(ctx, http.MethodGet, endpointMe, nil, true, &payload); err != nil {
		return nil, err
	}
	return &payload.User, nil
}

// DashboardStats fetches the account-wide stats resource.
func (c *Client) DashboardStats(ctx context.Context) (*domain.Stats, error) {
	var stats domain.Stats
	if err := c.call(ctx, http.MethodGet, endpointStats, nil, true, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Websites fetches all monitored-site records.
func (c *Client) Websites(ctx context.Context) ([]domain.Website, error) {
	var payload struct {
		Websites []domain.Website `json:"websites"`
	}
	if err := c.call(ctx, http.MethodGet, endpointWebsites, nil, true, &payload); err != nil {
		return nil, err
	}
	return payload.Websites, nil
}

// Scans fetches the account's scan history.
func (c *Client) Scans(ctx context.Context) ([]domain.Scan, error) {
	var payload struct {
		Scans []domain.Scan `json:"scans"`
	}
	if err := c.call(ctx, http.MethodGet, endpointScans, nil, true, &payload); err != nil {
		return nil, err
	}
	return payload.Scans, nil
}

// CreateWebsite registers a new monitored site. name is optional and omitted
// from the payload when empty.
func (c *Client) CreateWebsite(ctx context.Context, url, name string) (*domain.Website, error) {
	body := struct {
		URL  string `json:"url"`
		Name string `json:"name,omitempty"`
	}{URL: url, Name: name}

	var website domain.Website
	if err := c.call(ctx, http.MethodPost, endpointWebsites, body, true, &website); err != nil {
		return nil, err
	}
	return &website, nil
}

// TriggerScan starts a scan for one monitored site.
func (c *Client) TriggerScan(ctx context.Context, websiteID, url string) (*domain.Scan, error) {
	body := struct {
		WebsiteID string `json:"website_id"`
		URL       string `json:"url"`
	}{WebsiteID: websiteID, URL: url}

	var scan domain.Scan
	if err := c.call(ctx, http.MethodPost, endpointScanTrigger, body, true, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

// PremiumScan runs the anonymous on-demand scan. No auth required.
func (c *Client) PremiumScan(ctx context.Context, url string, maxPages int) (*domain.ScanResult, error) {
	body := struct {
		URL      string `json:"url"`
		MaxPages int    `json:"max_pages"`
	}{URL: url, MaxPages: maxPages}

	var result domain.ScanResult
	if err := c.call(ctx, http.MethodPost, endpointPremiumScan, body, false, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

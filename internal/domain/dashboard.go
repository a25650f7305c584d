package domain

import "time"

// Overview holds the account-wide headline numbers of the stats resource.
type Overview struct {
	TotalWebsites      int     `json:"total_websites"`
	AvgComplianceScore float64 `json:"avg_compliance_score"`
	TotalViolations    int     `json:"total_violations"`
	TotalScans         int     `json:"total_scans"`
}

// QuickStats holds the secondary account metrics of the stats resource.
type QuickStats struct {
	WebsitesMonitored int    `json:"websites_monitored"`
	ScansThisMonth    int    `json:"scans_this_month"`
	AvgPagesPerScan   int    `json:"avg_pages_per_scan"`
	LastScanDate      string `json:"last_scan_date,omitempty"`
}

// ActivityEntry is one row of recent scan activity, delivered by the server
// in reverse chronological order.
type ActivityEntry struct {
	ID              string  `json:"id"`
	WebsiteName     string  `json:"website_name"`
	ScanDate        string  `json:"scan_date"`
	ComplianceScore float64 `json:"compliance_score"`
	Violations      int     `json:"violations"`
}

// Stats is the full payload of the dashboard stats resource.
type Stats struct {
	Overview       Overview        `json:"overview"`
	QuickStats     QuickStats      `json:"quick_stats"`
	RecentActivity []ActivityEntry `json:"recent_activity"`
}

// Website is a monitored-site record. Compliance score and risk level are
// server-computed; the client never derives them locally.
type Website struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	ComplianceScore float64 `json:"compliance_score"`
	TotalScans      int     `json:"total_scans"`
	TotalViolations int     `json:"total_violations"`
	RiskLevel       string  `json:"risk_level"`
	LastScanDate    string  `json:"last_scan_date,omitempty"`
}

// Scan is one entry of the account's scan history.
type Scan struct {
	ID                 string  `json:"id"`
	WebsiteID          string  `json:"website_id"`
	WebsiteName        string  `json:"website_name"`
	URL                string  `json:"url"`
	ScanDate           string  `json:"scan_date"`
	ComplianceScore    float64 `json:"compliance_score"`
	TotalViolations    int     `json:"total_violations"`
	SeriousViolations  int     `json:"serious_violations"`
	ModerateViolations int     `json:"moderate_violations"`
	RiskLevel          string  `json:"risk_level"`
}

// Snapshot is the combined read-only view of stats, websites and scans
// produced by one aggregation cycle. The three resources are fetched
// independently and are not guaranteed mutually consistent; the snapshot is
// only guaranteed to be complete (all three present) or absent.
type Snapshot struct {
	Stats     Stats
	Websites  []Website
	Scans     []Scan
	FetchedAt time.Time
}

// Risk levels as reported by the server.
const (
	RiskLow      = "low"
	RiskModerate = "moderate"
	RiskHigh     = "high"
	RiskUnknown  = "unknown"
)

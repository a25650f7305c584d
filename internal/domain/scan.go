package domain

// ViolationCounts breaks scan findings down by severity.
type ViolationCounts struct {
	Critical int `json:"critical"`
	Serious  int `json:"serious"`
	Moderate int `json:"moderate"`
	Minor    int `json:"minor"`
}

// LawsuitRisk is the server's legal exposure estimate for a scan.
type LawsuitRisk struct {
	EstimatedCost int    `json:"estimated_cost"`
	Description   string `json:"description"`
}

// ScanResult is the full result object of an on-demand scan, including the
// AI-generated guidance sections the server attaches.
type ScanResult struct {
	URL                string          `json:"url"`
	ScanDate           string          `json:"scan_date"`
	PagesScanned       int             `json:"pages_scanned"`
	ComplianceScore    float64         `json:"compliance_score"`
	RiskLevel          string          `json:"risk_level"`
	Violations         ViolationCounts `json:"violations"`
	LawsuitRisk        *LawsuitRisk    `json:"lawsuit_risk,omitempty"`
	AIRemediationGuide string          `json:"ai_remediation_guide,omitempty"`
	BusinessAnalysis   string          `json:"business_analysis,omitempty"`
}

package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sentryprime/sentryctl/internal/domain"
)

func renderSnapshot(w io.Writer, snap *domain.Snapshot) {
	o := snap.Stats.Overview
	q := snap.Stats.QuickStats

	fmt.Fprintln(w, "Overview")
	fmt.Fprintf(w, "  Websites:        %d\n", o.TotalWebsites)
	fmt.Fprintf(w, "  Avg compliance:  %.0f%%\n", o.AvgComplianceScore)
	fmt.Fprintf(w, "  Violations:      %d\n", o.TotalViolations)
	fmt.Fprintf(w, "  Scans:           %d (%d this month)\n", o.TotalScans, q.ScansThisMonth)
	if q.LastScanDate != "" {
		fmt.Fprintf(w, "  Last scan:       %s\n", q.LastScanDate)
	} else {
		fmt.Fprintln(w, "  Last scan:       never")
	}

	if len(snap.Stats.RecentActivity) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Recent activity")
		for _, a := range snap.Stats.RecentActivity {
			fmt.Fprintf(w, "  %s  %s  %.0f%% compliant, %d violations\n", a.ScanDate, a.WebsiteName, a.ComplianceScore, a.Violations)
		}
	}

	fmt.Fprintln(w)
	renderWebsites(w, snap.Websites)
	fmt.Fprintln(w)
	renderScans(w, snap.Scans)
}

func renderWebsites(w io.Writer, websites []domain.Website) {
	if len(websites) == 0 {
		fmt.Fprintln(w, "No websites yet. Add one with 'sentryctl websites add <url>'.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tURL\tCOMPLIANCE\tVIOLATIONS\tRISK\tLAST SCAN")
	for _, site := range websites {
		lastScan := site.LastScanDate
		if lastScan == "" {
			lastScan = "never"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.0f%%\t%d\t%s\t%s\n",
			site.ID, site.Name, site.URL, site.ComplianceScore, site.TotalViolations, site.RiskLevel, lastScan)
	}
	_ = tw.Flush()
}

func renderScans(w io.Writer, scans []domain.Scan) {
	if len(scans) == 0 {
		fmt.Fprintln(w, "No scans yet.")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tWEBSITE\tCOMPLIANCE\tVIOLATIONS\tRISK")
	for _, scan := range scans {
		fmt.Fprintf(tw, "%s\t%s\t%.0f%%\t%d (%d serious, %d moderate)\t%s\n",
			scan.ScanDate, scan.WebsiteName, scan.ComplianceScore,
			scan.TotalViolations, scan.SeriousViolations, scan.ModerateViolations, scan.RiskLevel)
	}
	_ = tw.Flush()
}

func renderScanResult(w io.Writer, result *domain.ScanResult) {
	fmt.Fprintf(w, "Scan results for %s\n", result.URL)
	fmt.Fprintf(w, "  Pages scanned:  %d\n", result.PagesScanned)
	fmt.Fprintf(w, "  Compliance:     %.0f%%\n", result.ComplianceScore)
	fmt.Fprintf(w, "  Risk level:     %s\n", result.RiskLevel)
	fmt.Fprintf(w, "  Violations:     %d critical, %d serious, %d moderate, %d minor\n",
		result.Violations.Critical, result.Violations.Serious, result.Violations.Moderate, result.Violations.Minor)

	if result.LawsuitRisk != nil {
		fmt.Fprintf(w, "\nLawsuit risk: estimated cost $%d\n  %s\n", result.LawsuitRisk.EstimatedCost, result.LawsuitRisk.Description)
	}
	if result.AIRemediationGuide != "" {
		fmt.Fprintf(w, "\nRemediation guide:\n  %s\n", result.AIRemediationGuide)
	}
	if result.BusinessAnalysis != "" {
		fmt.Fprintf(w, "\nBusiness impact:\n  %s\n", result.BusinessAnalysis)
	}
}

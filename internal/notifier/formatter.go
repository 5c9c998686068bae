package notifier

import (
	"fmt"
	"strings"

	"StockKit/internal/calculator"
	"StockKit/internal/model"
)

// FormatSummary formats the basic statistics of a series.
func FormatSummary(s *calculator.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("=== %s basic analysis (%d rows) ===\n", s.Symbol, s.Rows))
	if p := s.Price; p != nil {
		b.WriteString(fmt.Sprintf("Start price:  %s\n", p.Start.StringFixed(2)))
		b.WriteString(fmt.Sprintf("End price:    %s\n", p.End.StringFixed(2)))
		b.WriteString(fmt.Sprintf("High:         %s\n", p.High.StringFixed(2)))
		b.WriteString(fmt.Sprintf("Low:          %s\n", p.Low.StringFixed(2)))
		b.WriteString(fmt.Sprintf("Mean:         %s\n", p.Mean.StringFixed(2)))
		b.WriteString(fmt.Sprintf("Volatility:   %s\n", p.Volatility.StringFixed(4)))
		b.WriteString(fmt.Sprintf("Total return: %s%%\n", p.TotalReturn.StringFixed(2)))
	} else {
		b.WriteString("No Close column, price statistics skipped\n")
	}
	if v := s.Volume; v != nil {
		b.WriteString(fmt.Sprintf("Total volume: %s\n", v.Total.StringFixed(0)))
		b.WriteString(fmt.Sprintf("Mean volume:  %s\n", v.Mean.StringFixed(2)))
	}
	return b.String()
}

// FormatAttempts lists the attempts of one resilient fetch.
func FormatAttempts(attempts []model.FetchAttempt) string {
	var b strings.Builder
	for _, a := range attempts {
		b.WriteString(fmt.Sprintf("  attempt %d: %s", a.Index+1, a.Outcome))
		if a.Err != nil {
			b.WriteString(fmt.Sprintf(" (%v)", a.Err))
		}
		if a.Delay > 0 {
			b.WriteString(fmt.Sprintf(", waited %v", a.Delay))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatInventory lists installed components and failed lookups.
func FormatInventory(inv *model.Inventory) string {
	var b strings.Builder
	installed := inv.Installed()
	if len(installed) == 0 {
		b.WriteString("No openbb packages detected\n")
	} else {
		b.WriteString("Installed openbb packages:\n")
		for _, r := range installed {
			b.WriteString(fmt.Sprintf("  - %s (%s)\n", r.Name, r.Version))
		}
	}
	for _, r := range inv.Records {
		if err, ok := inv.Failures[r.Name]; ok {
			b.WriteString(fmt.Sprintf("  ! %s: lookup failed: %v\n", r.Name, err))
		}
	}
	return b.String()
}

// FormatVerdict formats a consistency verdict.
func FormatVerdict(v model.CompatibilityVerdict) string {
	icon := "✅"
	switch v.Status {
	case model.StatusMismatched:
		icon = "⚠️"
	case model.StatusNotInstalled, model.StatusUnknown:
		icon = "❔"
	}
	return fmt.Sprintf("%s Consistency: %s\n   %s\n", icon, v.Status, v.Explanation)
}

// FormatOutcome formats a reconciliation outcome.
func FormatOutcome(o *model.ReconciliationOutcome) string {
	var b strings.Builder
	removed := o.Removed()
	b.WriteString(fmt.Sprintf("Uninstall: %d components checked, %d removed\n", len(o.Uninstalls), len(removed)))
	for _, u := range o.Uninstalls {
		if u.Err != nil {
			b.WriteString(fmt.Sprintf("  ! %s: %v\n", u.Component, u.Err))
		}
	}
	if o.Success {
		b.WriteString(fmt.Sprintf("Install: %s ✅\n", o.Install.Component))
		b.WriteString("Reinstall complete. Restart your Python environment before using openbb.\n")
	} else {
		b.WriteString(fmt.Sprintf("Install: %s ❌ %v\n", o.Install.Component, o.Install.Err))
		b.WriteString("Reinstall failed; check the errors above and install manually.\n")
	}
	return b.String()
}

// FormatVerification formats the post-install verifier's report.
func FormatVerification(v *model.Verification) string {
	var b strings.Builder
	if !v.Importable {
		b.WriteString(fmt.Sprintf("❌ openbb is not importable: %v\n", v.Err))
	} else {
		b.WriteString(fmt.Sprintf("✅ openbb %s imported, obb available\n", v.Version))
		if v.ProbeWarning != "" {
			b.WriteString(fmt.Sprintf("⚠️ provider listing failed: %s (openbb may still be partially usable)\n", v.ProbeWarning))
		} else {
			b.WriteString(fmt.Sprintf("Historical price providers: %s\n", strings.Join(v.Providers, ", ")))
		}
	}
	b.WriteString("Note: " + v.Caveat + "\n")
	return b.String()
}

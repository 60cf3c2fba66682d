package benchmark

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Records is the in-memory benchmark dataset.
type Records struct {
	Items []*Record
}

func (r *Records) Len() int {
	return len(r.Items)
}

// Industries returns the sorted set of industry segments present in the data.
func (r *Records) Industries() []string {
	seen := make(map[string]bool)
	industries := make([]string, 0)

	for _, record := range r.Items {
		if record.Industry == "" || seen[record.Industry] {
			continue
		}
		seen[record.Industry] = true
		industries = append(industries, record.Industry)
	}

	sort.Strings(industries)
	return industries
}

// ForIndustry returns a new collection holding only the given industry's
// records. Input order is preserved so downstream ranking stays deterministic.
func (r *Records) ForIndustry(industry string) *Records {
	filtered := &Records{}
	for _, record := range r.Items {
		if record.Industry == industry {
			filtered.Items = append(filtered.Items, record)
		}
	}
	return filtered
}

// Exclude removes records whose field matches any of the targets and returns
// the measure types that were removed. Unlike a swap-delete this keeps the
// remaining records in input order, which the ranking relies on for ties.
func (r *Records) Exclude(field string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	drop := make(map[string]bool, len(targets))
	for _, t := range targets {
		drop[t] = true
	}

	var excluded []string
	kept := r.Items[:0]
	for _, record := range r.Items {
		if drop[record.GetStringField(field)] {
			excluded = append(excluded, record.MeasureType)
			continue
		}
		kept = append(kept, record)
	}
	r.Items = kept

	return excluded
}

// Keep removes records whose field matches none of the targets.
func (r *Records) Keep(field string, targets []string) []string {
	if len(targets) == 0 {
		return nil
	}

	want := make(map[string]bool, len(targets))
	for _, t := range targets {
		want[t] = true
	}

	var excluded []string
	kept := r.Items[:0]
	for _, record := range r.Items {
		if !want[record.GetStringField(field)] {
			excluded = append(excluded, record.MeasureType)
			continue
		}
		kept = append(kept, record)
	}
	r.Items = kept

	return excluded
}

// ReportBySystem groups records under "system (industry)" keys for display.
func (r *Records) ReportBySystem() map[string][]map[string]string {
	report := make(map[string][]map[string]string)
	for _, record := range r.Items {
		key := fmt.Sprintf("%s (%s)", record.System, record.Industry)
		report[key] = append(report[key], map[string]string{
			"measure":                 record.MeasureType,
			"system share":            fmt.Sprintf("%.1f%%", record.SystemShare),
			"carbon reduction (t)":    fmt.Sprintf("%.1f", record.CarbonReductionMedian),
			"energy potential (kWh)":  fmt.Sprintf("%.0f", record.EnergyPotentialKWh()),
			"investment cost":         fmt.Sprintf("%.0f", record.InvestmentCostMedian),
			"annual saving":           fmt.Sprintf("%.0f", record.AnnualSavingMedian),
			"payback (years)":         fmt.Sprintf("%.1f", record.PaybackYearsMedian),
			"unit carbon cost (t/$)":  fmt.Sprintf("%.2f", record.UnitCarbonCostMedian),
		})
	}
	return report
}

func (r *Records) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "benchmark_records_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return "", err
	}
	return file.Name(), nil
}

package benchmark

import "testing"

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"abc", 0},
		{"abc%", 0},
		{"1,234", 1234},
		{"12.5%", 12.5},
		{" 2,500.75 ", 2500.75},
		{"0", 0},
		{"-3", -3},
		{"%", 0},
	}

	for _, tt := range tests {
		if got := ParseNumber(tt.in); got != tt.want {
			t.Fatalf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseRows(t *testing.T) {
	rows := []map[string]string{
		{
			"industry":                "electronics",
			"system":                  "HVAC",
			"measure_type":            "chiller upgrade",
			"system_share":            "40%",
			"carbon_reduction_median": "1,250",
			"energy_potential_median": "3.5",
			"investment_cost_median":  "120,000",
			"annual_saving_median":    "30,000",
			"payback_years_median":    "4",
			"unit_carbon_cost_median": "96",
			"unknown_column":          "ignored",
		},
		{
			"industry":     "electronics",
			"system":       "lighting",
			"measure_type": "0",
		},
	}

	records, err := ParseRows(rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if records.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", records.Len())
	}

	first := records.Items[0]
	if first.SystemShare != 40 {
		t.Fatalf("expected system share 40, got %v", first.SystemShare)
	}
	if first.CarbonReductionMedian != 1250 {
		t.Fatalf("expected carbon reduction 1250, got %v", first.CarbonReductionMedian)
	}
	if first.EnergyPotentialKWh() != 3500 {
		t.Fatalf("expected 3500 kWh, got %v", first.EnergyPotentialKWh())
	}
	if !first.Valid() {
		t.Fatalf("expected first record to be valid")
	}

	second := records.Items[1]
	if second.Valid() {
		t.Fatalf("expected placeholder record to be invalid")
	}
	if second.SystemShare != 0 {
		t.Fatalf("expected missing share to normalize to 0, got %v", second.SystemShare)
	}
}

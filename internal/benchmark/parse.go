package benchmark

import (
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// rawRecord mirrors one CSV row as published: every field is a
// display-formatted string (thousands separators, trailing percent signs).
type rawRecord struct {
	Industry              string `csv:"industry"`
	System                string `csv:"system"`
	MeasureType           string `csv:"measure_type"`
	SystemShare           string `csv:"system_share"`
	CarbonReductionMedian string `csv:"carbon_reduction_median"`
	EnergyPotentialMedian string `csv:"energy_potential_median"`
	InvestmentCostMedian  string `csv:"investment_cost_median"`
	AnnualSavingMedian    string `csv:"annual_saving_median"`
	PaybackYearsMedian    string `csv:"payback_years_median"`
	UnitCarbonCostMedian  string `csv:"unit_carbon_cost_median"`
}

// ParseNumber converts a display-formatted numeric string to a float64.
// Thousands separators and a trailing percent sign are tolerated. Anything
// that still does not parse resolves to 0; this function never fails, so a
// half-filled sheet degrades to zeros instead of aborting the run.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if s == "" {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseRows decodes header-keyed CSV rows into records. Unknown columns are
// ignored, missing ones decode to empty strings and normalize to zeros.
func ParseRows(rows []map[string]string) (*Records, error) {
	items := make([]*Record, 0, len(rows))

	for _, row := range rows {
		var raw rawRecord

		cfg := &mapstructure.DecoderConfig{
			Result:  &raw,
			TagName: "csv",
		}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(row); err != nil {
			return nil, err
		}

		items = append(items, raw.normalize())
	}

	return &Records{Items: items}, nil
}

func (r *rawRecord) normalize() *Record {
	return &Record{
		Industry:              strings.TrimSpace(r.Industry),
		System:                strings.TrimSpace(r.System),
		MeasureType:           strings.TrimSpace(r.MeasureType),
		SystemShare:           ParseNumber(r.SystemShare),
		CarbonReductionMedian: ParseNumber(r.CarbonReductionMedian),
		EnergyPotentialMedian: ParseNumber(r.EnergyPotentialMedian),
		InvestmentCostMedian:  ParseNumber(r.InvestmentCostMedian),
		AnnualSavingMedian:    ParseNumber(r.AnnualSavingMedian),
		PaybackYearsMedian:    ParseNumber(r.PaybackYearsMedian),
		UnitCarbonCostMedian:  ParseNumber(r.UnitCarbonCostMedian),
	}
}

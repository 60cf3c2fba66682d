package benchmark

const (
	RecordMeasureField = "MeasureType"
	RecordSystemField  = "System"
)

// Record is one benchmark row: a specific measure observed for an energy
// system within an industry segment, with median outcomes of its adopters.
type Record struct {
	Industry    string
	System      string
	MeasureType string

	// SystemShare is this system's share of the industry footprint, 0..100.
	SystemShare float64

	// CarbonReductionMedian is tonnes CO2e per year.
	CarbonReductionMedian float64
	// EnergyPotentialMedian is MWh per year. The sheet publishes MWh while
	// everything downstream works in kWh, so consumers must go through
	// EnergyPotentialKWh. That x1000 is a fixed contract with the dataset.
	EnergyPotentialMedian float64

	// Auxiliary metrics, carried through for presentation only.
	InvestmentCostMedian float64
	AnnualSavingMedian   float64
	PaybackYearsMedian   float64
	UnitCarbonCostMedian float64
}

// Valid reports whether the row describes a real measure. The sheet marks
// placeholder rows with an empty measure or the literal "0".
func (r *Record) Valid() bool {
	return r.MeasureType != "" && r.MeasureType != "0"
}

// EnergyPotentialKWh returns the median energy-saving potential in kWh/year.
func (r *Record) EnergyPotentialKWh() float64 {
	return r.EnergyPotentialMedian * 1000
}

func (r *Record) GetStringField(name string) string {
	switch name {
	case RecordMeasureField:
		return r.MeasureType
	case RecordSystemField:
		return r.System
	default:
		return ""
	}
}

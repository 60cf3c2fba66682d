package engine

// Path selects which metric drives the matching.
type Path string

const (
	PathCarbon Path = "carbon"
	PathEnergy Path = "energy"
)

// TargetType says how Goal.TargetValue is interpreted.
type TargetType string

const (
	TargetPercentage TargetType = "percentage"
	TargetAbsolute   TargetType = "absolute"
)

// Goal is an optional reduction objective. Baseline is the company's current
// annual value in the path's unit.
type Goal struct {
	Path        Path
	Baseline    float64
	TargetType  TargetType
	TargetValue float64
}

// TargetGap returns the absolute amount, in the path's unit, the company
// needs to close. A nil goal has no gap.
func (g *Goal) TargetGap() float64 {
	if g == nil {
		return 0
	}

	switch g.TargetType {
	case TargetPercentage:
		return g.Baseline * (g.TargetValue / 100)
	case TargetAbsolute:
		return g.TargetValue
	default:
		return 0
	}
}

// Unit returns the display unit for a path. Presentation derives units from
// the goal only, never from the records.
func (p Path) Unit() string {
	if p == PathEnergy {
		return "kWh"
	}
	return "t CO2e"
}

package filtering

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/climatiq-tools/carbon-adviser/internal/benchmark"
)

type adoptedMeasuresFilter struct {
	measures []string
	path     string
}

// NewAdoptedMeasures creates a filter that removes measures the company has
// already implemented, from the config list and the adopted file.
func NewAdoptedMeasures() Filter {
	return &adoptedMeasuresFilter{}
}

func (f *adoptedMeasuresFilter) Name() string { return "adopted_measures" }

func (f *adoptedMeasuresFilter) Disable(string) {}

func (f *adoptedMeasuresFilter) IsEnabled() bool { return true }

func (f *adoptedMeasuresFilter) Validate(cfg *Config) error {
	f.measures = nil
	f.path = ""
	if cfg != nil {
		f.measures = append(f.measures, cfg.AdoptedMeasures...)
		f.path = strings.TrimSpace(cfg.AdoptedFile)
	}
	return nil
}

func (f *adoptedMeasuresFilter) Apply(_ context.Context, deps Deps, r *benchmark.Records) (*benchmark.Records, Step, error) {
	initial := r.Len()

	measures := f.measures
	if f.path != "" {
		adopted, err := benchmark.AdoptedFromFile(f.path)
		if err != nil {
			return r, Step{}, fmt.Errorf("reading adopted measures file: %w", err)
		}
		measures = append(measures, adopted.Measures()...)
	}

	if len(measures) == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	excluded := r.Exclude(benchmark.RecordMeasureField, measures)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding already adopted measures",
			zap.Strings("excluded_measures", excluded),
			zap.Int("records_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *adoptedMeasuresFilter) Status() Status {
	details := map[string]string{}
	if len(f.measures) > 0 {
		details["measures"] = strings.Join(f.measures, ",")
	}
	if f.path != "" {
		details["path"] = f.path
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type maxPaybackFilter struct {
	maxYears float64
}

// NewMaxPayback creates a filter that removes measures paying back slower
// than the configured ceiling.
func NewMaxPayback() Filter {
	return &maxPaybackFilter{}
}

func (f *maxPaybackFilter) Name() string { return "max_payback" }

func (f *maxPaybackFilter) Disable(string) {}

func (f *maxPaybackFilter) IsEnabled() bool { return true }

func (f *maxPaybackFilter) Validate(cfg *Config) error {
	f.maxYears = 0
	if cfg != nil {
		if cfg.MaxPaybackYears < 0 {
			return fmt.Errorf("max payback years must not be negative, got %v", cfg.MaxPaybackYears)
		}
		f.maxYears = cfg.MaxPaybackYears
	}
	return nil
}

func (f *maxPaybackFilter) Apply(_ context.Context, deps Deps, r *benchmark.Records) (*benchmark.Records, Step, error) {
	initial := r.Len()
	if f.maxYears == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	var excluded []string
	kept := r.Items[:0]
	for _, record := range r.Items {
		if record.PaybackYearsMedian > f.maxYears {
			excluded = append(excluded, record.MeasureType)
			continue
		}
		kept = append(kept, record)
	}
	r.Items = kept

	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("excluding measures over the payback ceiling",
			zap.Float64("max_payback_years", f.maxYears),
			zap.Strings("excluded_measures", excluded),
			zap.Int("records_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *maxPaybackFilter) Status() Status {
	details := map[string]string{}
	if f.maxYears > 0 {
		details["max_payback_years"] = fmt.Sprintf("%.1f", f.maxYears)
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

type systemsFilter struct {
	systems []string
}

// NewSystems creates a filter that restricts candidates to the configured
// energy systems.
func NewSystems() Filter {
	return &systemsFilter{}
}

func (f *systemsFilter) Name() string { return "systems" }

func (f *systemsFilter) Disable(string) {}

func (f *systemsFilter) IsEnabled() bool { return true }

func (f *systemsFilter) Validate(cfg *Config) error {
	f.systems = nil
	if cfg != nil {
		f.systems = append(f.systems, cfg.Systems...)
	}
	return nil
}

func (f *systemsFilter) Apply(_ context.Context, deps Deps, r *benchmark.Records) (*benchmark.Records, Step, error) {
	initial := r.Len()
	if len(f.systems) == 0 {
		return r, Step{Initial: initial, Dropped: 0, Left: r.Len()}, nil
	}

	excluded := r.Keep(benchmark.RecordSystemField, f.systems)
	if deps.Logger != nil && len(excluded) > 0 {
		deps.Logger.Info("restricting to configured systems",
			zap.Strings("systems", f.systems),
			zap.Int("records_dropped", len(excluded)),
			zap.Int("records_left", r.Len()),
		)
	}

	return r, Step{Initial: initial, Dropped: len(excluded), Left: r.Len()}, nil
}

func (f *systemsFilter) Status() Status {
	details := map[string]string{}
	if len(f.systems) > 0 {
		details["systems"] = strings.Join(f.systems, ",")
	}
	return Status{Name: f.Name(), Enabled: true, Details: details}
}

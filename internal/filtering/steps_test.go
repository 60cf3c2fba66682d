package filtering

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/climatiq-tools/carbon-adviser/internal/benchmark"
)

func testRecords() *benchmark.Records {
	return &benchmark.Records{
		Items: []*benchmark.Record{
			{Industry: "electronics", System: "HVAC", MeasureType: "chiller upgrade", PaybackYearsMedian: 4},
			{Industry: "electronics", System: "lighting", MeasureType: "led retrofit", PaybackYearsMedian: 1.5},
			{Industry: "electronics", System: "compressed air", MeasureType: "leak repair", PaybackYearsMedian: 8},
		},
	}
}

func TestRunAppliesStepsInOrder(t *testing.T) {
	cfg := &Config{
		AdoptedMeasures: []string{"led retrofit"},
		MaxPaybackYears: 5,
	}
	steps := []Filter{NewAdoptedMeasures(), NewMaxPayback(), NewSystems()}

	left, err := Run(context.Background(), cfg, Deps{}, steps, testRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if left.Len() != 1 {
		t.Fatalf("expected 1 record left, got %d", left.Len())
	}
	if left.Items[0].MeasureType != "chiller upgrade" {
		t.Fatalf("unexpected survivor: %q", left.Items[0].MeasureType)
	}
}

func TestRunValidatesBeforeApplying(t *testing.T) {
	cfg := &Config{MaxPaybackYears: -1}
	steps := []Filter{NewMaxPayback()}

	if _, err := Run(context.Background(), cfg, Deps{}, steps, testRecords()); err == nil {
		t.Fatalf("expected validation error for negative payback ceiling")
	}
}

func TestAdoptedMeasuresFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adopted.json")
	adopted := &benchmark.AdoptedMeasures{
		Items: []*benchmark.AdoptedMeasure{{Measure: "leak repair", System: "compressed air"}},
	}
	if err := adopted.ToFile(path); err != nil {
		t.Fatalf("writing adopted file: %v", err)
	}

	cfg := &Config{AdoptedFile: path}
	steps := []Filter{NewAdoptedMeasures()}

	left, err := Run(context.Background(), cfg, Deps{}, steps, testRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left.Len() != 2 {
		t.Fatalf("expected 2 records left, got %d", left.Len())
	}
	for _, record := range left.Items {
		if record.MeasureType == "leak repair" {
			t.Fatalf("adopted measure not excluded")
		}
	}
}

func TestAdoptedMeasuresEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adopted.json")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("creating empty file: %v", err)
	}

	cfg := &Config{AdoptedFile: path}
	left, err := Run(context.Background(), cfg, Deps{}, []Filter{NewAdoptedMeasures()}, testRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left.Len() != 3 {
		t.Fatalf("expected all records to survive an empty list, got %d", left.Len())
	}
}

func TestSystemsFilter(t *testing.T) {
	cfg := &Config{Systems: []string{"HVAC", "lighting"}}
	left, err := Run(context.Background(), cfg, Deps{}, []Filter{NewSystems()}, testRecords())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if left.Len() != 2 {
		t.Fatalf("expected 2 records left, got %d", left.Len())
	}
}

func TestDescribeIncludesDetails(t *testing.T) {
	cfg := &Config{MaxPaybackYears: 3, Systems: []string{"HVAC"}}
	steps := []Filter{NewMaxPayback(), NewSystems()}
	for _, step := range steps {
		if err := step.Validate(cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	statuses := Describe(steps)
	if len(statuses) != 2 {
		t.Fatalf("expected 2 statuses, got %d", len(statuses))
	}
	if statuses[0].Details["max_payback_years"] != "3.0" {
		t.Fatalf("unexpected payback detail: %q", statuses[0].Details["max_payback_years"])
	}
	if statuses[1].Details["systems"] != "HVAC" {
		t.Fatalf("unexpected systems detail: %q", statuses[1].Details["systems"])
	}
}

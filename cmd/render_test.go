package cmd

import (
	"strings"
	"testing"

	"github.com/climatiq-tools/carbon-adviser/internal/ai"
	"github.com/climatiq-tools/carbon-adviser/internal/benchmark"
	"github.com/climatiq-tools/carbon-adviser/internal/engine"
)

func renderedItems() []*benchmark.Record {
	return []*benchmark.Record{
		{
			MeasureType:           "chiller upgrade",
			System:                "HVAC",
			SystemShare:           40,
			CarbonReductionMedian: 1250,
			EnergyPotentialMedian: 3.5,
			InvestmentCostMedian:  120000,
			AnnualSavingMedian:    30000,
			PaybackYearsMedian:    4,
		},
	}
}

func TestRenderResultSingle(t *testing.T) {
	result := &engine.Result{
		Kind:      engine.KindSingle,
		Items:     renderedItems(),
		TargetGap: 1000,
	}
	goal := &engine.Goal{Path: engine.PathCarbon, TargetType: engine.TargetAbsolute, TargetValue: 1000}

	var out strings.Builder
	renderResult(&out, result, goal)

	text := out.String()
	if !strings.Contains(text, "single action") {
		t.Fatalf("expected single-action heading, got:\n%s", text)
	}
	if !strings.Contains(text, "1,000.0 t CO2e") {
		t.Fatalf("expected formatted gap with unit, got:\n%s", text)
	}
	if !strings.Contains(text, "1,250.0") {
		t.Fatalf("expected thousands separator in impact, got:\n%s", text)
	}
	if !strings.Contains(text, "chiller upgrade") {
		t.Fatalf("expected measure name, got:\n%s", text)
	}
}

func TestRenderResultEnergyComboUsesKWh(t *testing.T) {
	result := &engine.Result{
		Kind:        engine.KindCombo,
		Items:       renderedItems(),
		TargetGap:   10000,
		TotalImpact: 3500,
	}
	goal := &engine.Goal{Path: engine.PathEnergy, TargetType: engine.TargetAbsolute, TargetValue: 10000}

	var out strings.Builder
	renderResult(&out, result, goal)

	text := out.String()
	if !strings.Contains(text, "kWh") {
		t.Fatalf("expected kWh unit, got:\n%s", text)
	}
	if !strings.Contains(text, "3,500.0") {
		t.Fatalf("expected MWh scaled to kWh, got:\n%s", text)
	}
	if !strings.Contains(text, "fall short") {
		t.Fatalf("expected shortfall notice, got:\n%s", text)
	}
}

func TestRenderResultNoGoal(t *testing.T) {
	result := &engine.Result{Kind: engine.KindNoGoal, Items: renderedItems()}

	var out strings.Builder
	renderResult(&out, result, nil)

	text := out.String()
	if !strings.Contains(text, "Top reduction opportunities") {
		t.Fatalf("expected no-goal heading, got:\n%s", text)
	}
	if !strings.Contains(text, "40.0%") {
		t.Fatalf("expected system share column, got:\n%s", text)
	}
}

func TestRenderAdviceKeepsItemOrder(t *testing.T) {
	result := &engine.Result{
		Kind: engine.KindCombo,
		Items: []*benchmark.Record{
			{MeasureType: "b measure"},
			{MeasureType: "a measure"},
		},
	}
	advice := &ai.Advice{
		Summary: "Do both.",
		Notes: map[string]string{
			"a measure": "second note",
			"b measure": "first note",
		},
	}

	var out strings.Builder
	renderAdvice(&out, advice, result)

	text := out.String()
	first := strings.Index(text, "b measure")
	second := strings.Index(text, "a measure")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("expected notes in recommendation order, got:\n%s", text)
	}
}

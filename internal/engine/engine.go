// Package engine ranks benchmark records against an optional reduction goal.
// Recommend is a pure function of its inputs: no I/O, no shared state, safe
// for concurrent callers.
package engine

import (
	"sort"

	"github.com/climatiq-tools/carbon-adviser/internal/benchmark"
)

// Kind classifies a recommendation.
type Kind string

const (
	// KindNone means no usable records existed for the industry and path.
	KindNone Kind = "none"
	// KindNoGoal is the top-opportunities list returned without a goal.
	KindNoGoal Kind = "noGoal"
	// KindSingle means one action closes the gap; alternatives may follow it.
	KindSingle Kind = "single"
	// KindCombo is a greedy set of actions assembled to close the gap.
	KindCombo Kind = "combo"
)

const noGoalLimit = 5

// Result is what the engine hands to presentation. Items keeps ranking
// order. TotalImpact is only meaningful for KindCombo.
type Result struct {
	Kind        Kind
	Items       []*benchmark.Record
	TargetGap   float64
	TotalImpact float64
}

// Impact returns a record's contribution on the given path. Energy is
// reported in kWh while the sheet stores MWh, hence the conversion.
func Impact(r *benchmark.Record, path Path) float64 {
	if path == PathEnergy {
		return r.EnergyPotentialKWh()
	}
	return r.CarbonReductionMedian
}

// Recommend selects and ranks the action(s) to present for an industry and
// an optional goal. It always returns a result; empty or non-matching input
// yields KindNone, never an error. Input records are not mutated.
func Recommend(records []*benchmark.Record, industry string, goal *Goal) *Result {
	path := PathCarbon
	if goal != nil {
		path = goal.Path
	}

	candidates := filter(records, industry, path)
	gap := goal.TargetGap()

	if len(candidates) == 0 {
		return &Result{Kind: KindNone, Items: []*benchmark.Record{}, TargetGap: gap}
	}

	if goal == nil {
		return noGoalResult(candidates)
	}

	return goalResult(candidates, path, gap)
}

// filter keeps records for the industry whose measure is real and whose
// impact on the active path is positive.
func filter(records []*benchmark.Record, industry string, path Path) []*benchmark.Record {
	out := make([]*benchmark.Record, 0)
	for _, r := range records {
		if r.Industry != industry || !r.Valid() {
			continue
		}
		if Impact(r, path) <= 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

// noGoalResult surfaces the highest-footprint, highest-impact opportunities:
// biggest system share first, impact breaking ties.
func noGoalResult(candidates []*benchmark.Record) *Result {
	sorted := make([]*benchmark.Record, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SystemShare != sorted[j].SystemShare {
			return sorted[i].SystemShare > sorted[j].SystemShare
		}
		return Impact(sorted[i], PathCarbon) > Impact(sorted[j], PathCarbon)
	})

	if len(sorted) > noGoalLimit {
		sorted = sorted[:noGoalLimit]
	}

	return &Result{Kind: KindNoGoal, Items: sorted, TargetGap: 0}
}

func goalResult(candidates []*benchmark.Record, path Path, gap float64) *Result {
	sorted := make([]*benchmark.Record, len(candidates))
	copy(sorted, candidates)

	// Stable sort: equal impacts keep input order, no secondary key. That
	// makes the output deterministic for a fixed input.
	sort.SliceStable(sorted, func(i, j int) bool {
		return Impact(sorted[i], path) > Impact(sorted[j], path)
	})

	primary := sorted[0]
	primaryImpact := Impact(primary, path)

	if primaryImpact >= gap {
		items := []*benchmark.Record{primary}
		for _, r := range sorted[1:] {
			if len(items) == 3 {
				break
			}
			if r.MeasureType == primary.MeasureType {
				continue
			}
			items = append(items, r)
		}
		return &Result{Kind: KindSingle, Items: items, TargetGap: gap}
	}

	return comboResult(sorted, path, gap)
}

// comboResult greedily assembles a set of actions to close the gap. The
// first pass insists on distinct measure types; only when those run out
// before the gap closes does a second pass admit repeats. Greedy means the
// total can overshoot the gap; that keeps the action count low and the
// whole thing O(n log n).
func comboResult(sorted []*benchmark.Record, path Path, gap float64) *Result {
	combo := []*benchmark.Record{sorted[0]}
	sum := Impact(sorted[0], path)

	types := map[string]bool{sorted[0].MeasureType: true}
	for _, r := range sorted[1:] {
		if sum >= gap {
			break
		}
		if types[r.MeasureType] {
			continue
		}
		types[r.MeasureType] = true
		combo = append(combo, r)
		sum += Impact(r, path)
	}

	if sum < gap {
		included := make(map[*benchmark.Record]bool, len(combo))
		for _, r := range combo {
			included[r] = true
		}
		for _, r := range sorted {
			if sum >= gap {
				break
			}
			if included[r] {
				continue
			}
			included[r] = true
			combo = append(combo, r)
			sum += Impact(r, path)
		}
	}

	return &Result{Kind: KindCombo, Items: combo, TargetGap: gap, TotalImpact: sum}
}

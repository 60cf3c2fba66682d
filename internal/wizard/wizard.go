// Package wizard walks the user through the profile and goal questions. It
// is a linear phase machine around promptui; the matching logic itself lives
// in the engine and never here.
package wizard

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/climatiq-tools/carbon-adviser/internal/benchmark"
	"github.com/climatiq-tools/carbon-adviser/internal/engine"
)

// Phase is where the flow currently is.
type Phase int

const (
	PhaseProfile Phase = iota
	PhaseGoalChoice
	PhaseGoalInput
	PhaseResults
)

const (
	choiceSetGoal  = "Set a reduction goal"
	choiceTopOnly  = "Just show top opportunities"
	choiceCarbon   = "Carbon (t CO2e per year)"
	choiceEnergy   = "Energy (kWh per year)"
	choicePercent  = "Percentage of my baseline"
	choiceAbsolute = "Absolute amount"
	choiceBack     = "back"
)

// Outcome is what the wizard hands back to the command.
type Outcome struct {
	Industry string
	Goal     *engine.Goal
}

// Wizard collects the inputs the engine needs. Select and Prompt default to
// promptui and exist as fields so tests can script answers.
type Wizard struct {
	// Industry, when preset from config, skips the profile question.
	Industry   string
	Industries []string

	Select func(label string, items []string) (string, error)
	Prompt func(label string) (string, error)
}

func New(industry string, industries []string) *Wizard {
	return &Wizard{
		Industry:   industry,
		Industries: industries,
		Select:     runSelect,
		Prompt:     runPrompt,
	}
}

// Run drives the phases until results are reached.
func (w *Wizard) Run() (*Outcome, error) {
	outcome := &Outcome{}

	phase := PhaseProfile
	for phase != PhaseResults {
		var err error
		switch phase {
		case PhaseProfile:
			phase, err = w.profile(outcome)
		case PhaseGoalChoice:
			phase, err = w.goalChoice(outcome)
		case PhaseGoalInput:
			phase, err = w.goalInput(outcome)
		}
		if err != nil {
			return nil, err
		}
	}

	return outcome, nil
}

func (w *Wizard) profile(outcome *Outcome) (Phase, error) {
	if w.Industry != "" {
		outcome.Industry = w.Industry
		return PhaseGoalChoice, nil
	}

	if len(w.Industries) == 0 {
		return PhaseProfile, fmt.Errorf("no industries available to choose from")
	}

	industry, err := w.Select("Choose your industry segment", w.Industries)
	if err != nil {
		return PhaseProfile, err
	}

	outcome.Industry = industry
	return PhaseGoalChoice, nil
}

func (w *Wizard) goalChoice(outcome *Outcome) (Phase, error) {
	choice, err := w.Select("Do you have a reduction goal?", []string{choiceSetGoal, choiceTopOnly})
	if err != nil {
		return PhaseGoalChoice, err
	}

	if choice == choiceTopOnly {
		outcome.Goal = nil
		return PhaseResults, nil
	}

	return PhaseGoalInput, nil
}

func (w *Wizard) goalInput(outcome *Outcome) (Phase, error) {
	pathChoice, err := w.Select("Which metric is your goal about?", []string{choiceCarbon, choiceEnergy, choiceBack})
	if err != nil {
		return PhaseGoalInput, err
	}
	if pathChoice == choiceBack {
		return PhaseGoalChoice, nil
	}

	path := engine.PathCarbon
	if pathChoice == choiceEnergy {
		path = engine.PathEnergy
	}

	typeChoice, err := w.Select("How is the target expressed?", []string{choicePercent, choiceAbsolute})
	if err != nil {
		return PhaseGoalInput, err
	}

	targetType := engine.TargetPercentage
	if typeChoice == choiceAbsolute {
		targetType = engine.TargetAbsolute
	}

	baseline, err := w.Prompt(fmt.Sprintf("Current annual value (%s)", path.Unit()))
	if err != nil {
		return PhaseGoalInput, err
	}

	valueLabel := fmt.Sprintf("Target amount (%s)", path.Unit())
	if targetType == engine.TargetPercentage {
		valueLabel = "Target reduction (%)"
	}
	value, err := w.Prompt(valueLabel)
	if err != nil {
		return PhaseGoalInput, err
	}

	outcome.Goal = &engine.Goal{
		Path:       path,
		TargetType: targetType,
		// Formatted or malformed input degrades to 0, matching the engine.
		Baseline:    benchmark.ParseNumber(baseline),
		TargetValue: benchmark.ParseNumber(value),
	}

	return PhaseResults, nil
}

func runSelect(label string, items []string) (string, error) {
	prompt := promptui.Select{Label: label, Items: items}
	_, choice, err := prompt.Run()
	return choice, err
}

func runPrompt(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	return prompt.Run()
}

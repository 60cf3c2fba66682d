package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "embed"

	"go.uber.org/zap"

	"github.com/climatiq-tools/carbon-adviser/internal/ai"
	"github.com/climatiq-tools/carbon-adviser/internal/engine"
	"github.com/climatiq-tools/carbon-adviser/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Advisor asks Gemini for adoption advice on a recommendation.
type Advisor struct {
	generator  contentGenerator
	maxRetries int
	maxLogLen  int
	logger     *zap.Logger
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

func NewAdvisor(generator contentGenerator, logger *zap.Logger, maxRetries, maxLogLength int) *Advisor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Advisor{
		generator:  generator,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		logger:     logger,
	}
}

// Advise builds the prompt from the recommendation and parses the model's
// JSON answer. Transient failures are retried with a linear backoff.
func (a *Advisor) Advise(ctx context.Context, industry string, result *engine.Result, goal *engine.Goal) (*ai.Advice, error) {
	if result == nil || len(result.Items) == 0 {
		return nil, fmt.Errorf("recommendation with items is required")
	}

	prompt, err := buildPrompt(industry, result, goal)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 0; attempt <= a.maxRetries; attempt++ {
		if attempt > 0 {
			if err := utils.WaitFor(ctx, time.Duration(attempt)*time.Second); err != nil {
				return nil, err
			}
		}

		raw, err := a.generator.GenerateContent(ctx, prompt)
		if err != nil {
			lastErr = err
			a.logger.Warn("gemini generation failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		a.logger.Debug("gemini response",
			zap.String("raw", utils.TruncateForLog(raw, a.maxLogLen)),
		)

		advice, err := parseResponse(raw)
		if err != nil {
			lastErr = err
			a.logger.Warn("gemini response not parseable",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			continue
		}

		return advice, nil
	}

	return nil, fmt.Errorf("advise after %d attempts: %w", a.maxRetries+1, lastErr)
}

func buildPrompt(industry string, result *engine.Result, goal *engine.Goal) (string, error) {
	path := engine.PathCarbon
	if goal != nil {
		path = goal.Path
	}

	type action struct {
		Measure              string  `json:"measure"`
		System               string  `json:"system"`
		Impact               float64 `json:"impact"`
		InvestmentCostMedian float64 `json:"investment_cost_median"`
		PaybackYearsMedian   float64 `json:"payback_years_median"`
	}

	actions := make([]action, 0, len(result.Items))
	for _, item := range result.Items {
		actions = append(actions, action{
			Measure:              item.MeasureType,
			System:               item.System,
			Impact:               engine.Impact(item, path),
			InvestmentCostMedian: item.InvestmentCostMedian,
			PaybackYearsMedian:   item.PaybackYearsMedian,
		})
	}

	actionsJSON, err := json.Marshal(actions)
	if err != nil {
		return "", fmt.Errorf("marshal actions: %w", err)
	}

	prompt := promptTemplate
	prompt = strings.ReplaceAll(prompt, "{{INDUSTRY}}", industry)
	prompt = strings.ReplaceAll(prompt, "{{KIND}}", string(result.Kind))
	prompt = strings.ReplaceAll(prompt, "{{TARGET_GAP}}", fmt.Sprintf("%.2f", result.TargetGap))
	prompt = strings.ReplaceAll(prompt, "{{UNIT}}", path.Unit())
	prompt = strings.ReplaceAll(prompt, "{{ACTIONS_JSON}}", string(actionsJSON))

	return prompt, nil
}

func parseResponse(raw string) (*ai.Advice, error) {
	cleaned := extractJSON(raw)

	var data struct {
		Summary string            `json:"summary"`
		Notes   map[string]string `json:"notes"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	summary := strings.TrimSpace(data.Summary)
	if summary == "" {
		return nil, fmt.Errorf("gemini response has no summary")
	}

	notes := make(map[string]string, len(data.Notes))
	for measure, note := range data.Notes {
		measure = strings.TrimSpace(measure)
		note = strings.TrimSpace(note)
		if measure == "" || note == "" {
			continue
		}
		notes[measure] = note
	}

	return &ai.Advice{Summary: summary, Notes: notes, Raw: raw}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

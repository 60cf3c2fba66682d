package ai

import (
	"context"

	"github.com/climatiq-tools/carbon-adviser/internal/engine"
)

// Advice is what the model adds on top of a recommendation: a short summary
// and an adoption note per recommended measure.
type Advice struct {
	Summary string
	Notes   map[string]string
	Raw     string
}

// Advisor turns a recommendation into adoption advice.
type Advisor interface {
	Advise(ctx context.Context, industry string, result *engine.Result, goal *engine.Goal) (*Advice, error)
}

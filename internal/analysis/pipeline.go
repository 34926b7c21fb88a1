package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/ai"
	"github.com/spigell/resume-analyzer/internal/keywords"
	"github.com/spigell/resume-analyzer/internal/logger"
)

// Step is a single stage of the analysis pipeline.
type Step interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	// Apply advances the state and reports how many items the stage produced.
	Apply(ctx context.Context, deps Deps, st *State) (int, error)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Logger   *zap.Logger
	Aligner  *keywords.Aligner
	Reviewer ai.Reviewer
	Options  Options
}

// State is what flows between steps. Result is filled in progressively.
type State struct {
	Input     Input
	Text      string
	Reference string
	Bullets   []string
	Result    *Result
}

// Status represents runtime information about a step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Step, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run executes the enabled steps in order and stops at the first error.
func Run(ctx context.Context, deps Deps, steps []Step, st *State) error {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for _, step := range steps {
		if !step.IsEnabled() {
			log.Debug("step disabled", logger.Step(step.Name()))
			continue
		}

		if err := ctx.Err(); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}

		items, err := step.Apply(ctx, deps, st)
		if err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}

		log.Debug("analysis step",
			logger.Step(step.Name()),
			zap.Int("items", items),
		)
	}

	return nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Step) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		status := Status{Name: step.Name(), Enabled: step.IsEnabled()}
		if r, ok := step.(interface{ Reason() string }); ok {
			status.Reason = r.Reason()
		}
		statuses = append(statuses, status)
	}
	return statuses
}

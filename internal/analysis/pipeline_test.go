package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spigell/resume-analyzer/internal/logger"
)

func TestRunSkipsDisabledSteps(t *testing.T) {
	t.Parallel()

	var calls []string
	record := func(name string) applyFunc {
		return func(context.Context, Deps, *State) (int, error) {
			calls = append(calls, name)
			return 1, nil
		}
	}

	steps := []Step{newStep("first", record("first")), newStep("second", record("second")), newStep("third", record("third"))}
	DisableByName(steps, "second", "not needed")

	core, logs := observer.New(zapcore.DebugLevel)
	require.NoError(t, Run(context.Background(), Deps{Logger: zap.New(core)}, steps, &State{}))

	assert.Equal(t, []string{"first", "third"}, calls)
	assert.Equal(t, 1, logs.FilterMessage("step disabled").Len())
	assert.Equal(t, 2, logs.FilterMessage("analysis step").Len())
	assert.Equal(t, 1, logs.FilterField(logger.Step("third")).Len())

	statuses := Describe(steps)
	assert.Equal(t, Status{Name: "second", Enabled: false, Reason: "not needed"}, statuses[1])
}

func TestRunStopsOnError(t *testing.T) {
	t.Parallel()

	reached := false
	steps := []Step{
		newStep("broken", func(context.Context, Deps, *State) (int, error) {
			return 0, errors.New("boom")
		}),
		newStep("after", func(context.Context, Deps, *State) (int, error) {
			reached = true
			return 0, nil
		}),
	}

	err := Run(context.Background(), Deps{}, steps, &State{})
	assert.EqualError(t, err, "broken: boom")
	assert.False(t, reached)
}

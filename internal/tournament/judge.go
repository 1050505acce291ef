package tournament

import (
	"context"

	"github.com/Cmaury/Meeting-Summary-Automation/internal/model"
)

// Judge picks the more important of two headlines. It must return exactly
// model.SideLeft or model.SideRight; any other value aborts the run.
type Judge interface {
	Judge(ctx context.Context, left, right string) (model.Side, error)
}

// JudgeFunc adapts a function to the Judge interface
type JudgeFunc func(ctx context.Context, left, right string) (model.Side, error)

// Judge calls f
func (f JudgeFunc) Judge(ctx context.Context, left, right string) (model.Side, error) {
	return f(ctx, left, right)
}

// Observer is told about every recorded comparison, in order
type Observer interface {
	ObserveComparison(ctx context.Context, result model.ComparisonResult) error
}

// Observers fans a comparison out to several observers in order, stopping at
// the first error.
type Observers []Observer

// ObserveComparison calls each observer
func (o Observers) ObserveComparison(ctx context.Context, result model.ComparisonResult) error {
	for _, obs := range o {
		if obs == nil {
			continue
		}
		if err := obs.ObserveComparison(ctx, result); err != nil {
			return err
		}
	}
	return nil
}

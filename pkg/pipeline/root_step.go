package pipeline

import (
	"context"

	"github.com/askiada/go-binarytrack/pkg/pipeline/model"
)

// AddRootStep adds a step feeding the pipeline. stepFn sends values to rootChan and must
// stop when ctx is done. rootChan is closed when stepFn returns.
func AddRootStep[O any](p *Pipeline, name string, stepFn func(ctx context.Context, rootChan chan<- O) error) (*model.Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	step := &model.Step[O]{
		Output: make(chan O),
		Details: &model.StepInfo{
			Type:       model.RootStepType,
			Name:       name,
			Concurrent: 1,
		},
	}

	err := p.prepare(model.StartStep, step.Details)
	if err != nil {
		return nil, err
	}

	p.spawn(name, func(ctx context.Context) error {
		defer close(step.Output)

		return stepFn(ctx, step.Output)
	})

	return step, nil
}

package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-binarytrack/pkg/pipeline/model"
)

// StepOption configures a step.
type StepOption func(s *model.StepInfo)

// StepConcurrency sets the number of goroutines running the step function.
func StepConcurrency(concurrent int) StepOption {
	return func(s *model.StepInfo) {
		s.Concurrent = concurrent
	}
}

func sequentialOneToOneFn[I any, O any](ctx context.Context, p *Pipeline, goIdx int, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	for {
		waitStart := time.Now()
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
		case in, ok := <-input.Output:
			if !ok {
				return nil
			}

			ev := model.Output{Parent: input.Details, Step: output.Details, Wait: time.Since(waitStart)}

			start := time.Now()
			out, err := oneToOneFn(ctx, in)
			if err != nil {
				return errors.Wrapf(err, "go routine %d", goIdx)
			}
			ev.Compute = time.Since(start)

			// check the context again so running goroutines stop adding elements
			select {
			case <-ctx.Done():
				return errors.Wrapf(ctx.Err(), "go routine %d", goIdx)
			case output.Output <- out:
				err = p.onOutput(ev)
				if err != nil {
					return err
				}
			}
		}
	}
}

func concurrentOneToOneFn[I any, O any](ctx context.Context, p *Pipeline, input *model.Step[I], output *model.Step[O], oneToOneFn func(context.Context, I) (O, error)) error {
	errGrp, dCtx := errgroup.WithContext(ctx)
	errGrp.SetLimit(output.Details.Concurrent)

	// each consumer stops as soon as an error happens
	for goIdx := range output.Details.Concurrent {
		errGrp.Go(func() error {
			return sequentialOneToOneFn(dCtx, p, goIdx, input, output, oneToOneFn)
		})
	}

	return errGrp.Wait()
}

// AddStepOneToOne adds a step calling oneToOneFn once per input value and sending its
// result downstream. With a concurrency above 1 the output order is not preserved.
func AddStepOneToOne[I any, O any](p *Pipeline, name string, input *model.Step[I], oneToOneFn func(context.Context, I) (O, error), opts ...StepOption) (*model.Step[O], error) {
	if p == nil {
		return nil, ErrPipelineMustBeSet
	}

	if input == nil {
		return nil, ErrInputMustBeSet
	}

	step := &model.Step[O]{
		Output: make(chan O),
		Details: &model.StepInfo{
			Type:       model.NormalStepType,
			Name:       name,
			Concurrent: 1,
		},
	}

	for _, opt := range opts {
		opt(step.Details)
	}

	if step.Details.Concurrent < 1 {
		step.Details.Concurrent = 1
	}

	err := p.prepare(input.Details, step.Details)
	if err != nil {
		return nil, err
	}

	p.spawn(name, func(ctx context.Context) error {
		defer close(step.Output)

		if step.Details.Concurrent == 1 {
			return sequentialOneToOneFn(ctx, p, 0, input, step, oneToOneFn)
		}

		return concurrentOneToOneFn(ctx, p, input, step, oneToOneFn)
	})

	return step, nil
}

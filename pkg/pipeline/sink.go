package pipeline

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/pkg/pipeline/model"
)

// AddSink consumes the output of input with sinkFn, one value at a time.
func AddSink[I any](p *Pipeline, name string, input *model.Step[I], sinkFn func(ctx context.Context, input I) error) error {
	if p == nil {
		return ErrPipelineMustBeSet
	}

	if input == nil {
		return ErrInputMustBeSet
	}

	details := &model.StepInfo{
		Type:       model.SinkStepType,
		Name:       name,
		Concurrent: 1,
	}

	err := p.prepare(input.Details, details)
	if err != nil {
		return err
	}

	p.spawn(name, func(ctx context.Context) error {
		for {
			waitStart := time.Now()
			select {
			case <-ctx.Done():
				return ctx.Err()
			case in, ok := <-input.Output:
				if !ok {
					return p.afterSink(details)
				}

				ev := model.Output{Parent: input.Details, Step: details, Wait: time.Since(waitStart)}

				start := time.Now()
				err := sinkFn(ctx, in)
				if err != nil {
					return err
				}
				ev.Compute = time.Since(start)

				err = p.onOutput(ev)
				if err != nil {
					return err
				}
			}
		}
	})

	return nil
}

func (p *Pipeline) afterSink(details *model.StepInfo) error {
	for _, opt := range p.opts {
		err := opt.AfterSink(details, time.Since(p.startTime))
		if err != nil {
			return errors.Wrap(err, "unable to run after sink function")
		}
	}

	return nil
}

package pipeline

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-binarytrack/pkg/pipeline/model"
)

type task struct {
	name string
	run  func(ctx context.Context) error
}

// Pipeline is a pipeline of steps.
type Pipeline struct {
	opts      []model.PipelineOption
	tasks     []task
	startTime time.Time
	ran       atomic.Bool
}

// New creates a new pipeline.
func New(opts ...model.PipelineOption) (*Pipeline, error) {
	for _, opt := range opts {
		err := opt.New()
		if err != nil {
			return nil, errors.Wrap(err, "unable to apply pipeline option")
		}
	}

	return &Pipeline{opts: opts}, nil
}

// Run starts every step and waits for all of them to finish. The first error cancels the
// other steps and is returned, prefixed with the name of the failing step. Run can only be
// called once.
func (p *Pipeline) Run(ctx context.Context) error {
	if !p.ran.CompareAndSwap(false, true) {
		return ErrAlreadyRun
	}

	p.startTime = time.Now()

	errGrp, gCtx := errgroup.WithContext(ctx)
	for _, t := range p.tasks {
		errGrp.Go(func() error {
			return errors.Wrap(t.run(gCtx), t.name)
		})
	}

	err := errGrp.Wait()
	if err != nil {
		return err
	}

	for _, opt := range p.opts {
		err = opt.Finish()
		if err != nil {
			return errors.Wrap(err, "unable to finish pipeline option")
		}
	}

	return nil
}

// spawn registers fn to run in its own goroutine when the pipeline starts.
func (p *Pipeline) spawn(name string, fn func(ctx context.Context) error) {
	p.tasks = append(p.tasks, task{name: name, run: fn})
}

func (p *Pipeline) prepare(parent, step *model.StepInfo) error {
	for _, opt := range p.opts {
		err := opt.PrepareStep(parent, step)
		if err != nil {
			return errors.Wrapf(err, "unable to prepare %s", step.Name)
		}
	}

	return nil
}

func (p *Pipeline) onOutput(out model.Output) error {
	for _, opt := range p.opts {
		err := opt.OnOutput(out)
		if err != nil {
			return errors.Wrapf(err, "unable to record output of %s", out.Step.Name)
		}
	}

	return nil
}

package model

import "time"

// PipelineOption observes a pipeline. Steps call it from their own goroutines.
type PipelineOption interface {
	// New runs when the option is given to a pipeline.
	New() error
	// PrepareStep runs when a step or a sink is added, before the pipeline starts.
	PrepareStep(parent, step *StepInfo) error
	// OnOutput runs every time a step emits a value or a sink consumes one.
	OnOutput(out Output) error
	// AfterSink runs once a sink has drained its input.
	AfterSink(step *StepInfo, total time.Duration) error
	// Finish runs after a successful run.
	Finish() error
}

// Output describes one value going through a step.
type Output struct {
	Parent *StepInfo
	Step   *StepInfo
	// Wait is the time spent waiting for the input value.
	Wait time.Duration
	// Compute is the time spent in the step function.
	Compute time.Duration
}

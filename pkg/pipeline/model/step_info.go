package model

// StepType is the role of a step in a pipeline.
type StepType string

const (
	RootStepType   StepType = "root"
	NormalStepType StepType = "step"
	SinkStepType   StepType = "sink"
)

// StepInfo describes a step.
type StepInfo struct {
	Type       StepType
	Name       string
	Concurrent int
}

// StartStep is the parent of every root step.
var StartStep = &StepInfo{Type: RootStepType, Name: "start"}

// Step is the handle of a step producing values of type O.
type Step[O any] struct {
	Output  chan O
	Details *StepInfo
}

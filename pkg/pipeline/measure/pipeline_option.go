package measure

import (
	"time"

	"github.com/askiada/go-binarytrack/pkg/pipeline/model"
)

type pipelineMeasure struct {
	Measure
}

func (pm *pipelineMeasure) New() error {
	pm.AddMetric(model.StartStep.Name, 1)

	return nil
}

func (pm *pipelineMeasure) PrepareStep(_, step *model.StepInfo) error {
	pm.AddMetric(step.Name, step.Concurrent)

	return nil
}

func (pm *pipelineMeasure) OnOutput(out model.Output) error {
	if mt := pm.GetMetric(out.Step.Name); mt != nil {
		mt.Record(out.Parent.Name, out.Wait, out.Compute)
	}

	return nil
}

func (pm *pipelineMeasure) AfterSink(step *model.StepInfo, total time.Duration) error {
	if mt := pm.GetMetric(step.Name); mt != nil {
		mt.SetTotalDuration(total)
	}

	return nil
}

func (pm *pipelineMeasure) Finish() error {
	return nil
}

// PipelineMeasure returns a pipeline option recording durations into m.
func PipelineMeasure(m Measure) model.PipelineOption {
	return &pipelineMeasure{m}
}

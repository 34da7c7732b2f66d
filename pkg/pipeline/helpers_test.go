package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/askiada/go-binarytrack/pkg/pipeline"
	"github.com/askiada/go-binarytrack/pkg/pipeline/model"
)

func rootStep(t *testing.T, pipe *pipeline.Pipeline, total int) *model.Step[int] {
	t.Helper()

	step, err := pipeline.AddRootStep(pipe, "root", func(ctx context.Context, rootChan chan<- int) error {
		for i := range total {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case rootChan <- i:
			}
		}

		return nil
	})
	require.NoError(t, err)

	return step
}

func collect[I any](t *testing.T, pipe *pipeline.Pipeline, input *model.Step[I]) *[]I {
	t.Helper()

	res := &[]I{}
	err := pipeline.AddSink(pipe, "sink", input, func(_ context.Context, in I) error {
		*res = append(*res, in)

		return nil
	})
	require.NoError(t, err)

	return res
}

// Package measure collects per-step durations of a pipeline run.
package measure

import "time"

// Measure holds one metric per step.
type Measure interface {
	AddMetric(name string, concurrent int) Metric
	GetMetric(name string) Metric
	AllMetrics() map[string]Metric
}

// Metric accumulates the durations of one step.
type Metric interface {
	// Record adds one value received from parent.
	Record(parent string, wait, compute time.Duration)
	Count() int64
	AVGDuration() time.Duration
	AVGWaitDuration() map[string]time.Duration
	SetTotalDuration(total time.Duration)
	TotalDuration() time.Duration
}

// Package pipeline runs typed processing steps connected by channels.
//
// A pipeline starts with root steps that emit values, chains steps that transform each
// value, possibly with several goroutines per step, and ends with sinks. Nothing runs
// until Run is called. The pipeline stops on the first error and Run returns it,
// wrapped with the name of the failing step.
package pipeline

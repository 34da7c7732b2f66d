// Package model provides the data structures shared by the pipeline and its options:
// step descriptions, the typed step handle, and the option hooks a pipeline calls while
// it runs.
package model

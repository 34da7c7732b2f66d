// Package model provides the data structures shared by the track assembly packages.
// It defines the parsed container tree, the columnar tables produced from its datasets,
// and the error values every stage of the assembly reports.
package model

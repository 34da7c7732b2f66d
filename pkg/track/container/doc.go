// Package container reads hierarchical scientific files into a model.Container.
//
// The traversal is written against the small Source and Group interfaces so that the
// storage format binding (see package h5) stays out of the tree-building logic. Groups
// nest, datasets are homogeneous arrays of fixed-size records, and attributes are merged
// into the enclosing container after its children. No field names are assumed here.
package container

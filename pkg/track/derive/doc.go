// Package derive appends computed columns to a merged track table.
//
// A Registry is an ordered list of fields. Apply walks it once: a field whose output
// column already exists, or whose inputs are not all present, is skipped; any other field
// is computed and appended, so later fields can consume earlier ones. Existing columns are
// never modified.
//
// Custom fields can be declared as Starlark expressions with Expression, and the
// dependency graph of a registry can be rendered in DOT format with Draw.
package derive

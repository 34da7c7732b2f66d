package model

import "github.com/pkg/errors"

var (
	// ErrNotFound is returned when the source container is missing or unreadable.
	ErrNotFound = errors.New("container not found")
	// ErrSchema is returned when a container or table does not have the shape an assembly requires.
	ErrSchema = errors.New("schema error")
)

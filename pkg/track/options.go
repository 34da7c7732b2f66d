package track

import (
	"github.com/askiada/go-binarytrack/pkg/track/align"
	"github.com/askiada/go-binarytrack/pkg/track/derive"
	"github.com/askiada/go-binarytrack/pkg/track/merge"
)

type options struct {
	key      string
	registry *derive.Registry
	suffixes merge.Suffixes
	profiles bool
}

func defaultOptions() *options {
	return &options{
		key:      align.DefaultKey,
		registry: derive.Default(),
		suffixes: merge.Default,
		profiles: true,
	}
}

// Option configures an assembly.
type Option func(o *options)

// WithKey sets the sequence key shared by the three histories.
func WithKey(key string) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithRegistry replaces the default derived-field registry. A nil registry disables
// derivation.
func WithRegistry(r *derive.Registry) Option {
	return func(o *options) {
		o.registry = r
	}
}

// WithCompare suffixes the primary columns with _1 and the secondary ones with _2.
func WithCompare() Option {
	return func(o *options) {
		o.suffixes = merge.Compare
	}
}

// WithSuffixes sets the suffixes of the star columns.
func WithSuffixes(sfx merge.Suffixes) Option {
	return func(o *options) {
		o.suffixes = sfx
	}
}

// WithoutProfiles skips profile extraction.
func WithoutProfiles() Option {
	return func(o *options) {
		o.profiles = false
	}
}

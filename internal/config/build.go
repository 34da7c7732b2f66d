package config

import (
	"io"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/pkg/track"
	"github.com/askiada/go-binarytrack/pkg/track/derive"
)

// Logger returns the logger described by the log section, writing to w.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := c.Level()
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}

	return slog.New(slog.NewTextHandler(w, opts)), nil
}

// Registry returns the default registry without the disabled fields, followed by the
// custom fields in declaration order.
func (c *Config) Registry() (*derive.Registry, error) {
	reg := derive.Default().Without(c.Derive.Disable...)

	custom := make([]derive.Field, 0, len(c.Derive.Custom))
	for _, cf := range c.Derive.Custom {
		f, err := derive.Expression(cf.Name, cf.Requires, cf.Expr)
		if err != nil {
			return nil, errors.Wrapf(err, "unable to compile custom field %s", cf.Name)
		}
		custom = append(custom, f)
	}

	reg = reg.With(custom...)

	err := reg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "unable to validate registry")
	}

	return reg, nil
}

// TrackOptions returns the assembly options described by the configuration.
func (c *Config) TrackOptions() ([]track.Option, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}

	opts := []track.Option{
		track.WithKey(c.SequenceKey),
		track.WithRegistry(reg),
	}

	if c.Compare {
		opts = append(opts, track.WithCompare())
	}

	return opts, nil
}

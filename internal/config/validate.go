package config

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"github.com/askiada/go-binarytrack/pkg/export"
)

// Validate checks values that cannot be checked by decoding.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.SequenceKey) == "" {
		return errors.Wrap(ErrInvalid, "sequence_key is empty")
	}

	_, err := c.Level()
	if err != nil {
		return err
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.Wrapf(ErrInvalid, "log.format %q is not text or json", c.Log.Format)
	}

	if c.Grid.Workers < 1 {
		return errors.Wrapf(ErrInvalid, "grid.workers must be at least 1, got %d", c.Grid.Workers)
	}

	_, err = export.ParseFormat(c.Output.Format)
	if err != nil {
		return errors.Wrapf(ErrInvalid, "output.format: %v", err)
	}

	seen := make(map[string]struct{}, len(c.Derive.Custom))
	for i, f := range c.Derive.Custom {
		if f.Name == "" || strings.TrimSpace(f.Expr) == "" {
			return errors.Wrapf(ErrInvalid, "derive.custom[%d] needs a name and an expression", i)
		}

		if _, ok := seen[f.Name]; ok {
			return errors.Wrapf(ErrInvalid, "derive.custom declares %s twice", f.Name)
		}
		seen[f.Name] = struct{}{}
	}

	return nil
}

// Level returns the configured log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Log.Level))
	if err != nil {
		return level, errors.Wrapf(ErrInvalid, "log.level %q", c.Log.Level)
	}

	return level, nil
}

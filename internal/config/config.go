// Package config loads the binarytrack configuration.
//
// Values are layered, later sources overriding earlier ones: defaults, the YAML file,
// BINARYTRACK_ environment variables, then command line flags that were explicitly set.
// Nested keys use a double underscore in environment variables, for example
// BINARYTRACK_GRID__WORKERS=8 sets grid.workers.
package config

import (
	"github.com/pkg/errors"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = "binarytrack.yaml"

// ErrInvalid is returned when the configuration fails validation.
var ErrInvalid = errors.New("invalid configuration")

// CustomField is a derived field declared as a Starlark expression.
type CustomField struct {
	Name     string   `koanf:"name"`
	Requires []string `koanf:"requires"`
	Expr     string   `koanf:"expr"`
}

// DeriveConfig configures the derived-field registry.
type DeriveConfig struct {
	// Disable lists built-in fields that are not computed.
	Disable []string      `koanf:"disable"`
	Custom  []CustomField `koanf:"custom"`
}

// H5Config configures the HDF5 reader.
type H5Config struct {
	// Attributes lists the group attribute names probed when reading a file.
	Attributes []string `koanf:"attributes"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// GridConfig configures directory runs.
type GridConfig struct {
	Workers         int    `koanf:"workers"`
	Pattern         string `koanf:"pattern"`
	ContinueOnError bool   `koanf:"continue_on_error"`
}

// OutputConfig configures exports.
type OutputConfig struct {
	Format string `koanf:"format"`
	Dir    string `koanf:"dir"`
}

// Config is the full configuration.
type Config struct {
	SequenceKey string       `koanf:"sequence_key"`
	Compare     bool         `koanf:"compare"`
	Derive      DeriveConfig `koanf:"derive"`
	H5          H5Config     `koanf:"h5"`
	Log         LogConfig    `koanf:"log"`
	Grid        GridConfig   `koanf:"grid"`
	Output      OutputConfig `koanf:"output"`

	// File is the configuration file that was loaded, if any.
	File string `koanf:"-"`
}

func defaults() map[string]any {
	return map[string]any{
		"sequence_key":           "model_number",
		"compare":                false,
		"derive.disable":         []string{},
		"h5.attributes":          []string{},
		"log.level":              "info",
		"log.format":             "text",
		"grid.workers":           4,
		"grid.pattern":           "*.h5",
		"grid.continue_on_error": false,
		"output.format":          "csv",
		"output.dir":             "",
	}
}

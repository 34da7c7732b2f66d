package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

const envPrefix = "BINARYTRACK_"

// flagKeys maps command line flags to configuration keys.
var flagKeys = map[string]string{
	"key":               "sequence_key",
	"compare":           "compare",
	"disable":           "derive.disable",
	"attribute":         "h5.attributes",
	"log-level":         "log.level",
	"log-format":        "log.format",
	"workers":           "grid.workers",
	"pattern":           "grid.pattern",
	"continue-on-error": "grid.continue_on_error",
	"format":            "output.format",
	"output-dir":        "output.dir",
}

// listKeys are comma separated in environment variables.
var listKeys = map[string]struct{}{
	"derive.disable": {},
	"h5.attributes":  {},
}

// Load reads the configuration. cfgFile may be empty, in which case DefaultFile is used
// when it exists. flags may be nil.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load defaults")
	}

	path, err := findFile(cfgFile)
	if err != nil {
		return nil, err
	}

	if path != "" {
		err = k.Load(file.Provider(path), yaml.Parser())
		if err != nil {
			return nil, errors.Wrapf(err, "unable to read config file %s", path)
		}
	}

	err = k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to load environment")
	}

	if flags != nil {
		err = k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}

			return key, posflag.FlagVal(flags, f)
		}), nil)
		if err != nil {
			return nil, errors.Wrap(err, "unable to load flags")
		}
	}

	var cfg Config
	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode config")
	}
	cfg.File = path

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

func findFile(explicit string) (string, error) {
	if explicit != "" {
		_, err := os.Stat(explicit)
		if err != nil {
			return "", errors.Wrapf(err, "config file %s", explicit)
		}

		return explicit, nil
	}

	if _, err := os.Stat(DefaultFile); err == nil {
		return DefaultFile, nil
	}

	return "", nil
}

// envValue maps BINARYTRACK_GRID__WORKERS to grid.workers and splits list values.
func envValue(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, envPrefix))
	key = strings.ReplaceAll(key, "__", ".")

	if _, ok := listKeys[key]; ok {
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}

		return key, items
	}

	return key, value
}

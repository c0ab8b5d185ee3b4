package sqlmonitor

import (
	"fmt"
	"slices"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// PluginName is the name to put in CoreConfig.DisabledPlugins to disable the connection monitor.
const PluginName = "sqlmonitor"

// EnvPrefix is the prefix of the environment variables read by LoadConfig. Nested keys are separated by a double
// underscore, for example SQLMONITOR_CORE__ACTIVE.
const EnvPrefix = "SQLMONITOR_"

// CoreConfig is the process-wide monitoring configuration.
type CoreConfig struct {
	// Active enables monitoring globally.
	Active bool `koanf:"active"`
	// DisabledPlugins lists the monitoring features that are turned off.
	DisabledPlugins []string `koanf:"disabled_plugins"`
}

// Config is the configuration of the connection monitor.
type Config struct {
	Core CoreConfig `koanf:"core"`

	// CollectSQL enables the statement interception.
	CollectSQL bool `koanf:"collect_sql"`
}

// DefaultConfig returns the configuration used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Core:       CoreConfig{Active: true},
		CollectSQL: true,
	}
}

// IsActive tells whether the connection monitor is enabled by the core configuration.
func IsActive(core CoreConfig) bool {
	return !slices.Contains(core.DisabledPlugins, PluginName) && core.Active
}

// LoadConfig loads the configuration from the yaml file at path, if any, then from the environment. Missing keys keep
// the values of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("could not load config file: %w", err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKeyValue), nil); err != nil {
		return Config{}, fmt.Errorf("could not load config from env: %w", err)
	}

	cfg := DefaultConfig()

	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("could not parse config: %w", err)
	}

	return cfg, nil
}

// envKeyValue maps SQLMONITOR_CORE__DISABLED_PLUGINS=a,b to core.disabled_plugins=[a b].
func envKeyValue(key, value string) (string, any) {
	key = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "__", ".")

	if key == "core.disabled_plugins" {
		plugins := strings.Split(value, ",")

		for i := range plugins {
			plugins[i] = strings.TrimSpace(plugins[i])
		}

		return key, plugins
	}

	return key, value
}

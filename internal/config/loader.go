package config

import (
	"errors"
	"strings"

	"github.com/samber/oops"
	"github.com/spf13/viper"
)

const (
	configName = "stafferly"
	envPrefix  = "STAFFERLY"
)

var defaults = map[string]any{
	"application.name":     "stafferly",
	"application.logLevel": "info",
	"database.port":        "5432",
	"database.sslMode":     "disable",
	"http.address":         ":8080",
	"queue.concurrency":    10,
	"audit.sourceRoot":     ".",
	"audit.allowlistPath":  "isolation-allowlist.yaml",
	"audit.reportPath":     "isolation-report.json",
}

// LoadConfig reads stafferly.yaml from the usual locations, applies
// STAFFERLY_* environment overrides and validates the result.
func LoadConfig(paths ...string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if len(paths) == 0 {
		paths = []string{"/etc/stafferly", "."}
	}

	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, oops.Wrapf(err, "failed to read config file")
		}
		// No file is fine: defaults plus env cover the test and CI setups.
	}

	cfg := &Config{}

	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to unmarshal config")
	}

	err = cfg.Validate()
	if err != nil {
		return nil, oops.Wrapf(err, "failed to validate config")
	}

	return cfg, nil
}

package config

import (
	"errors"

	"github.com/stafferly/stafferly/internal/errs"
)

var (
	ErrConfigurationValuesError = errors.New("configuration value error")
	ErrDatabaseName             = errors.New("database name must be specified")
	ErrDatabaseHost             = errors.New("database host must be specified")
	ErrHTTPAddress              = errors.New("http listen address must be specified")
	ErrQueueAddress             = errors.New("queue redis address must be specified")
)

// Config holds all application configuration parameters
type Config struct {
	Application      Application `yaml:"application" mapstructure:"application"`
	Database         Database    `yaml:"database" mapstructure:"database"`
	DatabaseReplicas []Database  `yaml:"databaseReplicas" mapstructure:"databaseReplicas"`
	HTTP             HTTPServer  `yaml:"http" mapstructure:"http"`
	Queue            Queue       `yaml:"queue" mapstructure:"queue"`
	Audit            Audit       `yaml:"audit" mapstructure:"audit"`
}

func (c *Config) Validate() error {
	err := c.Database.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	err = c.HTTP.Validate()
	if err != nil {
		return errs.Wrap(ErrConfigurationValuesError, err)
	}

	return nil
}

type Application struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	LogLevel    string `yaml:"logLevel" mapstructure:"logLevel"`
}

type Database struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     string `yaml:"port" mapstructure:"port"`
	Name     string `yaml:"name" mapstructure:"name"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	SSLMode  string `yaml:"sslMode" mapstructure:"sslMode"`
}

func (d *Database) Validate() error {
	if d.Name == "" {
		return ErrDatabaseName
	}

	if d.Host == "" {
		return ErrDatabaseHost
	}

	return nil
}

type HTTPServer struct {
	Address string `yaml:"address" mapstructure:"address"`
}

func (h *HTTPServer) Validate() error {
	if h.Address == "" {
		return ErrHTTPAddress
	}

	return nil
}

// Queue configures the asynq task queue.
type Queue struct {
	RedisAddr   string `yaml:"redisAddr" mapstructure:"redisAddr"`
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
}

func (q *Queue) Validate() error {
	if q.RedisAddr == "" {
		return ErrQueueAddress
	}

	return nil
}

// Audit configures the static isolation auditors.
type Audit struct {
	// SourceRoot is the directory the auditors scan, module root by default.
	SourceRoot string `yaml:"sourceRoot" mapstructure:"sourceRoot"`
	// AllowlistPath points at the curated exceptions file.
	AllowlistPath string `yaml:"allowlistPath" mapstructure:"allowlistPath"`
	// ReportPath is where the machine-readable findings report is written.
	ReportPath string `yaml:"reportPath" mapstructure:"reportPath"`
}

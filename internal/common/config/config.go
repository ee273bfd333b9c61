// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig               `mapstructure:"app"`
	Camunda       CamundaConfig           `mapstructure:"camunda"`
	Repliers      RepliersConfig          `mapstructure:"repliers"`
	Workers       map[string]WorkerConfig `mapstructure:"workers"`
	Logging       LoggingConfig           `mapstructure:"logging"`
	Metrics       MetricsConfig           `mapstructure:"metrics"`
	Notifications NotificationConfig      `mapstructure:"notifications"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type CamundaConfig struct {
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

// RepliersConfig holds the listing API credentials and the defaults merged into every search.
// It is read-only once loaded.
type RepliersConfig struct {
	APIKey                string `mapstructure:"api_key"`
	BaseURL               string `mapstructure:"base_url"`
	DefaultBoardIDs       string `mapstructure:"default_board_ids"`
	DefaultStatus         string `mapstructure:"default_status"`
	DefaultResultsPerPage int    `mapstructure:"default_results_per_page"`
	EnableDebugOutput     *bool  `mapstructure:"enable_debug_output"`
	Timeout               int    `mapstructure:"timeout"` // milliseconds
}

// DebugOutput reports whether debug blocks are prepended to search output. Defaults to true.
func (r RepliersConfig) DebugOutput() bool {
	return r.EnableDebugOutput == nil || *r.EnableDebugOutput
}

// RequestTimeout returns the upstream HTTP timeout.
func (r RepliersConfig) RequestTimeout() time.Duration {
	return GetDuration(r.Timeout)
}

// WorkerConfig holds the core settings applicable to every worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// MetricsConfig holds the health/metrics listener settings.
type MetricsConfig struct {
	Address string `mapstructure:"address"`
}

// NotificationConfig routes search notifications to external sinks.
type NotificationConfig struct {
	SNS struct {
		Enabled  bool   `mapstructure:"enabled"`
		Region   string `mapstructure:"region"`
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"sns"`
}

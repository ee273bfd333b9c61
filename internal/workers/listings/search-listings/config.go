// internal/workers/listings/search-listings/config.go
package searchlistings

import (
	"fmt"
	"time"

	"listing-search-workers/internal/common/config"
)

type Config struct {
	Enabled       bool          `mapstructure:"enabled"`
	MaxJobsActive int           `mapstructure:"max_jobs_active"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Repliers      config.RepliersConfig
}

func DefaultConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       45 * time.Second,
		Repliers: config.RepliersConfig{
			BaseURL:               config.DefaultBaseURL,
			DefaultStatus:         config.DefaultStatus,
			DefaultResultsPerPage: config.DefaultResultsPerPage,
			Timeout:               config.DefaultRequestTimeoutMillis,
		},
	}
}

// LoadConfig builds the worker config from the application config.
func LoadConfig(appCfg *config.Config) *Config {
	cfg := DefaultConfig()
	if appCfg == nil {
		return cfg
	}

	wcfg := config.GetWorkerConfig(appCfg, TaskType)
	cfg.Enabled = wcfg.Enabled
	if wcfg.MaxJobsActive > 0 {
		cfg.MaxJobsActive = wcfg.MaxJobsActive
	}
	if wcfg.Timeout > 0 {
		cfg.Timeout = config.GetDuration(wcfg.Timeout)
	}
	cfg.Repliers = appCfg.Repliers
	return cfg
}

// Validate rejects settings the worker cannot run with. A missing API key is allowed;
// each job then fails with LISTING_SEARCH_NOT_CONFIGURED.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MaxJobsActive <= 0 {
		return fmt.Errorf("max_jobs_active must be positive")
	}
	if c.Repliers.BaseURL == "" {
		return fmt.Errorf("repliers base_url is required")
	}
	return nil
}

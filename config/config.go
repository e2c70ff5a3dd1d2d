package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
)

const (
	ModeReport = "report"
	ModeServe  = "serve"
)

type Config struct {
	// "report" prints the configured scenario, "serve" runs the HTTP API
	Mode string `env:"SIM_MODE" envDefault:"report"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Path to the sqlite database holding simulation snapshots
	DatabasePath string `env:"DB_PATH" envDefault:"database/simulations.db"`

	Server struct {
		Port string `env:"SERVER_PORT" envDefault:"5250"`
	}

	Simulation struct {
		// Occupancy assumption in percent applied when a scenario omits it
		FullOccupancyRate float64 `env:"FULL_OCCUPANCY_RATE" envDefault:"90"`

		// Optional JSON scenario used in report mode
		ScenarioFile string `env:"SCENARIO_FILE"`

		// Report mode writes the scenario it ran to this file when set
		ScenarioOutput string `env:"SCENARIO_OUTPUT"`
	}

	Valuation struct {
		// External price lookup script; the placeholder appraisal is used when empty
		Script string `env:"VALUATION_SCRIPT"`

		// Arguments for the script; when set the script is run as a plain command
		Args []string `env:"VALUATION_ARGS" envSeparator:" "`

		// Script timeout in seconds
		Timeout int `env:"VALUATION_TIMEOUT" envDefault:"30"`
	}

	// BatchProcessing configuration
	BatchProcessing struct {
		// Maximum number of scenario batches waiting in the queue
		QueueSize int `env:"BATCH_QUEUE_SIZE" envDefault:"100"`

		// Maximum number of retries for a failed scenario
		MaxRetries int `env:"BATCH_MAX_RETRIES" envDefault:"3"`

		// Delay between retries in seconds
		RetryDelay int `env:"BATCH_RETRY_DELAY" envDefault:"5"`
	}
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.Mode != ModeReport && cfg.Mode != ModeServe {
		return nil, fmt.Errorf("invalid SIM_MODE %q: must be %q or %q", cfg.Mode, ModeReport, ModeServe)
	}
	return cfg, nil
}

// ValuationTimeout returns the script timeout as a duration
func (c *Config) ValuationTimeout() time.Duration {
	return time.Duration(c.Valuation.Timeout) * time.Second
}

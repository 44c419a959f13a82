package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Beneficios"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"beneficios"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Export struct {
		Dir string `envconfig:"EXPORT_DIR" default:"./exports"`
	}

	// Report holds the accounting assumptions behind the summary
	// computations. They are deployment configuration, not business data,
	// so they live here instead of the company_config table.
	Report struct {
		WorkingDaysPerMonth int     `envconfig:"REPORT_WORKING_DAYS" default:"22"`
		DaysPerMonth        int     `envconfig:"REPORT_DAYS_PER_MONTH" default:"30"`
		EmployerOverheadPct float64 `envconfig:"REPORT_EMPLOYER_OVERHEAD_PCT" default:"30"`
		CorporateTaxPct     float64 `envconfig:"REPORT_CORPORATE_TAX_PCT" default:"25"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}

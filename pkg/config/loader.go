// Package config parses environment variables into tagged structs. All
// catalog service configuration comes from the environment; there are no
// config files.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

// Load fills cfg from the process environment using `env` tags.
//
//	type Config struct {
//	    HTTPPort     int      `env:"CATALOG_HTTP_PORT" envDefault:"8004"`
//	    KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
//	}
func Load(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

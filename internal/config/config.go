// Package config provides configuration structures and validation for the
// ledger service: HTTP server settings, the remote store endpoint the core
// talks to, optional event publishing, and stats backfill tuning.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration. Each field covers one
// subsystem and is validated during startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Remote      RemoteConfig
	Kafka       KafkaConfig
	Reconcile   ReconcileConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// RemoteConfig points at the external store holding ledger rows and stats
type RemoteConfig struct {
	BaseURL  string        // Root of the remote REST API, e.g. http://host/api/v2
	Timeout  time.Duration // Per-call timeout for remote requests
	APIToken string        // Optional bearer token; empty disables auth
}

// KafkaConfig contains the optional row-saved event publishing configuration
type KafkaConfig struct {
	Enabled           bool
	Brokers           string
	Topic             string
	NumPartitions     int
	ReplicationFactor int
	WriteTimeout      time.Duration
}

// ReconcileConfig tunes the ranged stats backfill
type ReconcileConfig struct {
	WorkerPoolSize int // Concurrent dates during a ranged backfill
	MaxRangeDays   int // Upper bound on a single backfill request
}

// validate performs comprehensive validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate Remote store config
	if c.Remote.BaseURL == "" {
		validationErrors = append(validationErrors, "REMOTE_BASE_URL is required")
	}
	if c.Remote.Timeout <= 0 {
		validationErrors = append(validationErrors, "REMOTE_TIMEOUT must be greater than 0")
	}

	// Validate Kafka config only when event publishing is on
	if c.Kafka.Enabled {
		if len(c.Kafka.Brokers) == 0 {
			validationErrors = append(validationErrors, "KAFKA_BROKERS is required when KAFKA_ENABLED is true")
		}
		if c.Kafka.Topic == "" {
			validationErrors = append(validationErrors, "KAFKA_TOPIC is required when KAFKA_ENABLED is true")
		}
		if c.Kafka.WriteTimeout <= 0 {
			validationErrors = append(validationErrors, "KAFKA_WRITE_TIMEOUT must be greater than 0")
		}
	}

	// Validate Reconcile config
	if c.Reconcile.WorkerPoolSize <= 0 {
		validationErrors = append(validationErrors, "RECONCILE_WORKER_POOL_SIZE must be greater than 0")
	}
	if c.Reconcile.MaxRangeDays <= 0 {
		validationErrors = append(validationErrors, "RECONCILE_MAX_RANGE_DAYS must be greater than 0")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}

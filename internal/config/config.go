// Package config provides configuration management for the oddsfeed service.
package config

import (
	"fmt"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App       AppConfig       `mapstructure:"app" validate:"required"`
	OddsAPI   OddsAPIConfig   `mapstructure:"odds_api" validate:"required"`
	ESPN      ESPNConfig      `mapstructure:"espn"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Metrics   MetricsConfig   `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// OddsAPIConfig represents the primary odds provider configuration
type OddsAPIConfig struct {
	BaseURL                   string `mapstructure:"base_url" validate:"required,url"`
	APIKey                    string `mapstructure:"api_key"`
	Regions                   string `mapstructure:"regions" validate:"required"`
	OddsFormat                string `mapstructure:"odds_format" validate:"required,oneof=american decimal"`
	RequestTimeoutSeconds     int    `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
	MaxRetries                int    `mapstructure:"max_retries" validate:"required,gt=0"`
	CacheTTLMinutes           int    `mapstructure:"cache_ttl_minutes" validate:"required,gt=0"`
	RetryWaitBaseSeconds      int    `mapstructure:"retry_wait_base_seconds" validate:"required,gt=0"`
	MinRequestIntervalSeconds int    `mapstructure:"min_request_interval_seconds" validate:"gte=0"`
}

// ESPNConfig represents the secondary scoreboard source configuration
type ESPNConfig struct {
	Enabled               bool   `mapstructure:"enabled"`
	BaseURL               string `mapstructure:"base_url" validate:"omitempty,url"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" validate:"omitempty,gt=0"`
}

// DatabaseConfig represents the optional snapshot archive database
type DatabaseConfig struct {
	Enabled            bool   `mapstructure:"enabled"`
	Host               string `mapstructure:"host"`
	Port               int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name               string `mapstructure:"name"`
	User               string `mapstructure:"user"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"omitempty,gt=0"`
}

// SchedulerConfig represents background polling configuration
type SchedulerConfig struct {
	Enabled                bool     `mapstructure:"enabled"`
	PollingIntervalMinutes int      `mapstructure:"polling_interval_minutes" validate:"omitempty,gt=0"`
	DailySync              string   `mapstructure:"daily_sync"`
	Sports                 []string `mapstructure:"sports" validate:"omitempty,min=1,sports"`
	BetTypes               []string `mapstructure:"bet_types"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// RequestTimeout returns the odds provider timeout as a duration
func (c *OddsAPIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// CacheTTL returns the response cache lifetime as a duration
func (c *OddsAPIConfig) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMinutes) * time.Minute
}

// RetryWaitBase returns the backoff base unit as a duration
func (c *OddsAPIConfig) RetryWaitBase() time.Duration {
	return time.Duration(c.RetryWaitBaseSeconds) * time.Second
}

// MinRequestInterval returns the request cadence floor as a duration
func (c *OddsAPIConfig) MinRequestInterval() time.Duration {
	return time.Duration(c.MinRequestIntervalSeconds) * time.Second
}

// RequestTimeout returns the scoreboard timeout as a duration
func (c *ESPNConfig) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// PollingInterval returns the polling cadence as a duration
func (c *SchedulerConfig) PollingInterval() time.Duration {
	return time.Duration(c.PollingIntervalMinutes) * time.Minute
}

package config

import (
	"fmt"
	"time"
)

// This file defines the configuration structures used by viper_config.go
// The actual loading is handled by viper in viper_config.go

// ServerConfig represents the server configuration
type ServerConfig struct {
	Server ServerSettings `yaml:"server"`
}

// ServerSettings contains server-wide settings
type ServerSettings struct {
	// Game settings
	RoomCodeLength int           `yaml:"roomCodeLength"`
	BoardSize      int           `yaml:"boardSize"`
	RoomTimeout    time.Duration `yaml:"roomTimeout"`   // idle rooms older than this are evicted
	SweepInterval  time.Duration `yaml:"sweepInterval"` // how often the eviction sweep runs
	CardsDir       string        `yaml:"cardsDir"`      // directory holding the card image catalog

	// Server settings
	Port            string        `yaml:"port" envconfig:"PORT" required:"true"`
	Host            string        `yaml:"host" envconfig:"HOST" required:"true"`
	ReadTimeout     time.Duration `yaml:"readTimeout" envconfig:"READ_TIMEOUT" default:"0s"`
	WriteTimeout    time.Duration `yaml:"writeTimeout" envconfig:"WRITE_TIMEOUT" default:"0s"`
	IdleTimeout     time.Duration `yaml:"idleTimeout" envconfig:"IDLE_TIMEOUT" default:"0s"` // 0 for long-lived websockets
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// Rate limiting (using golang.org/x/time/rate)
	RateLimit      float64 `yaml:"rateLimit" envconfig:"RATE_LIMIT" default:"10"`            // requests per second
	RateLimitBurst int     `yaml:"rateLimitBurst" envconfig:"RATE_LIMIT_BURST" default:"20"` // burst size

	// Request limits
	MaxRequestSize int64 `yaml:"maxRequestSize" envconfig:"MAX_REQUEST_SIZE" default:"1048576"` // 1MB

	// Logging
	LogLevel string `yaml:"logLevel" envconfig:"LOG_LEVEL" default:"info"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *ServerConfig {
	return &ServerConfig{
		Server: ServerSettings{
			RoomCodeLength: 4,
			BoardSize:      36,
			RoomTimeout:    1 * time.Hour,
			SweepInterval:  5 * time.Minute,
			CardsDir:       "static/cards",

			// Server defaults
			Port:            "", // Must be set via env
			Host:            "", // Must be set via env
			ReadTimeout:     0, // 0 for long-lived websockets
			WriteTimeout:    0,
			IdleTimeout:     0,
			ShutdownTimeout: 30 * time.Second,

			// Rate limiting defaults
			RateLimit:      10, // 10 requests per second
			RateLimitBurst: 20,

			// Request limits
			MaxRequestSize: 1048576, // 1MB

			LogLevel: "info",
		},
	}
}

// Validate checks if the configuration is valid
func (c *ServerConfig) Validate() error {
	// Required fields
	if c.Server.Port == "" {
		return fmt.Errorf("PORT environment variable must be set")
	}
	if c.Server.Host == "" {
		return fmt.Errorf("HOST environment variable must be set")
	}

	if c.Server.RoomCodeLength < 3 {
		return fmt.Errorf("roomCodeLength must be at least 3")
	}
	if c.Server.BoardSize < 2 {
		return fmt.Errorf("boardSize must be at least 2")
	}
	if c.Server.RoomTimeout <= 0 {
		return fmt.Errorf("roomTimeout must be positive")
	}
	if c.Server.SweepInterval <= 0 {
		return fmt.Errorf("sweepInterval must be positive")
	}
	if c.Server.CardsDir == "" {
		return fmt.Errorf("cardsDir must be set")
	}

	return nil
}

// Package listener runs named HTTP listeners inside the fx application.
package listener

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Defaults applied by Config.SetDefaults.
const (
	DefaultAddress         = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultMaxBodyBytes    = 1 << 20
)

var (
	// ErrEmptyAddress is returned when the address is empty.
	ErrEmptyAddress = errors.New("address must not be empty")
	// ErrInvalidConfig is returned when a Config field is out of range.
	ErrInvalidConfig = errors.New("invalid listener config")
	// ErrListenFailed is returned when the server fails to listen on the configured address.
	ErrListenFailed = errors.New("failed to listen")
	// ErrShutdownFailed is returned when the server fails to shut down gracefully.
	ErrShutdownFailed = errors.New("shutdown failed")
	// ErrEmptyName is returned when the listener name is empty.
	ErrEmptyName = errors.New("listener name must not be empty")
	// ErrNilHandler is returned when a nil http.Handler is provided.
	ErrNilHandler = errors.New("handler must not be nil")
)

var validate = validator.New() //nolint:gochecknoglobals // validators cache struct metadata

// Config holds the configuration for an HTTP listener. It is usually loaded
// with config.Provider from a section of the application config file.
type Config struct {
	Address         string        `mapstructure:"address"          validate:"required"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"     validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"    validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gte=0"`
	// MaxBodyBytes caps request bodies for handlers that honour it.
	MaxBodyBytes int64 `mapstructure:"max_body_bytes" validate:"gte=0"`
	// RateLimit is the sustained requests per second handlers accept; zero
	// disables limiting. RateBurst is the bucket size, zero means one
	// second worth of requests.
	RateLimit float64 `mapstructure:"rate_limit" validate:"gte=0"`
	RateBurst int     `mapstructure:"rate_burst" validate:"gte=0"`
	// CompressMinBytes is the smallest response body that is gzipped; zero
	// uses the middleware default.
	CompressMinBytes   int  `mapstructure:"compress_min_bytes"  validate:"gte=0"`
	DisableCompression bool `mapstructure:"disable_compression"`
}

// SetDefaults fills zero fields and reports whether anything changed.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = DefaultAddress
		changed = true
	}

	if c.ReadTimeout == 0 {
		c.ReadTimeout = DefaultReadTimeout
		changed = true
	}

	if c.WriteTimeout == 0 {
		c.WriteTimeout = DefaultWriteTimeout
		changed = true
	}

	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
		changed = true
	}

	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = DefaultMaxBodyBytes
		changed = true
	}

	return changed
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	err := validate.Struct(c)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

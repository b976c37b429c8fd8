package listener

import "time"

// Option defines a function type for configuring an HTTP listener.
type Option func(*Config)

// WithAddress sets the address for the HTTP listener.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithConfig replaces the whole listener configuration, typically one loaded
// from a file. Options applied after it still take effect.
func WithConfig(loaded Config) Option {
	return func(cfg *Config) {
		*cfg = loaded
	}
}

// WithTimeouts sets the read and write timeouts.
func WithTimeouts(read, write time.Duration) Option {
	return func(cfg *Config) {
		cfg.ReadTimeout = read
		cfg.WriteTimeout = write
	}
}

// WithMaxBodyBytes caps request body sizes.
func WithMaxBodyBytes(limit int64) Option {
	return func(cfg *Config) {
		cfg.MaxBodyBytes = limit
	}
}

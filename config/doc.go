// Package config decodes configuration files whose format is only hinted at
// by their name.
//
// The package uses an interface-based design with four extension points:
//   - Decoder: turns raw bytes into a document tree for one format
//   - DataFetcher / Source: retrieves raw data (file, request body, etc.)
//   - Validator: validates a typed config after decoding
//   - Defaulter: applies default values before validation
//
// # Format Guessing
//
// A Registry holds decoders in a fixed order and a table of file name
// suffixes. Parse first tries the decoders guessed from the suffix, then every
// remaining decoder in registry order, and returns the first success:
//
//	config.json      -> json, jsonc, json5, toml, yaml
//	config.toml      -> toml, json, json5, jsonc, yaml
//	config.unknown   -> json, json5, jsonc, toml, yaml
//
// When every decoder fails the error lists each failure in attempt order and
// matches ErrNoParserMatched.
//
// # Typed Sections
//
// Provider loads a typed section of a config file for dependency injection.
// The section is addressed with a field path:
//
//	type ListenerConfig struct {
//	    Address string `mapstructure:"address"`
//	}
//
//	provider := config.Provider(&ListenerConfig{}, "server.listener")
//	cfg, err := provider(config.DefaultRegistry(), file.NewFetcher("config.toml"))
package config

package config

import (
	"github.com/0xalexb/hjarta-field/config/parser/json"
	"github.com/0xalexb/hjarta-field/config/parser/json5"
	"github.com/0xalexb/hjarta-field/config/parser/jsonc"
	"github.com/0xalexb/hjarta-field/config/parser/toml"
	"github.com/0xalexb/hjarta-field/config/parser/yaml"
)

// DefaultGuesses is the suffix table of the default registry.
func DefaultGuesses() []Guess {
	return []Guess{
		{Suffix: ".json", Decoders: []string{json.Name, jsonc.Name, json5.Name}},
		{Suffix: ".json5", Decoders: []string{json5.Name}},
		{Suffix: ".toml", Decoders: []string{toml.Name}},
		{Suffix: ".yml", Decoders: []string{yaml.Name}},
		{Suffix: ".yaml", Decoders: []string{yaml.Name}},
	}
}

// DefaultDecoders returns json, json5, jsonc, toml and yaml, in that order.
func DefaultDecoders() []Decoder {
	return []Decoder{
		json.NewParser(),
		json5.NewParser(),
		jsonc.NewParser(),
		toml.NewParser(),
		yaml.NewParser(),
	}
}

// DefaultRegistry returns the registry with every built-in format.
func DefaultRegistry() *Registry {
	registry, err := NewRegistry(DefaultDecoders(), DefaultGuesses())
	if err != nil {
		panic(err) // built-in tables are consistent
	}

	return registry
}

// Package yaml provides the YAML decoder for the config package.
//
// This package uses github.com/goccy/go-yaml. Mappings become document maps,
// sequences become document sequences and scalars keep the type the YAML
// resolver assigned to them. Merge keys ("<<") are resolved by the library.
//
// Usage:
//
//	value, err := yaml.NewParser().Decode([]byte("name: test"))
package yaml

package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/0xalexb/hjarta-field/document"
	"github.com/0xalexb/hjarta-field/path"

	"github.com/go-viper/mapstructure/v2"
)

// ErrSectionNotFound is returned when the field path of a Provider selects nothing.
var ErrSectionNotFound = errors.New("section not found")

// Decoder turns raw file content into a document tree for one format.
type Decoder interface {
	Name() string
	Decode(data []byte) (document.Value, error)
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Source is a DataFetcher that knows the file name its data comes from.
// The name drives format guessing.
type Source interface {
	DataFetcher
	Name() string
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that reads a source, decodes it with the
// registry, selects the section addressed by field, decodes that section into
// target, applies defaults and validates the result.
//
// The field uses the same path syntax as extraction ("server.listeners[0]");
// the empty field selects the whole document. Target fields are matched with
// `mapstructure` tags.
func Provider[T any](target *T, field string) func(*Registry, Source) (*T, error) {
	return func(registry *Registry, source Source) (*T, error) {
		steps, err := path.Parse(field)
		if err != nil {
			return nil, fmt.Errorf("parsing field %q: %w", field, err)
		}

		data, err := source.Fetch(context.Background())
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		tree, err := registry.Parse(source.Name(), data, nil)
		if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		section, err := document.Read(steps, tree)
		if err != nil {
			return nil, fmt.Errorf("reading section %q: %w", field, err)
		}

		if section.IsAbsent() {
			return nil, fmt.Errorf("%w: %q", ErrSectionNotFound, field)
		}

		err = decodeSection(section, target)
		if err != nil {
			return nil, fmt.Errorf("decoding section %q: %w", field, err)
		}

		targetDefaulter, isDefaulter := any(target).(Defaulter)
		if isDefaulter {
			changed := targetDefaulter.SetDefaults()
			if changed {
				slog.Info("defaults applied", slog.String("field", field))
			}
		}

		targetValidatable, isValidatable := any(target).(Validator)
		if isValidatable {
			err := targetValidatable.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating error: %w", err)
			}
		}

		return target, nil
	}
}

func decodeSection(section document.Value, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{ //nolint:exhaustruct
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		WeaklyTypedInput: true,
		Result:           target,
		TagName:          "mapstructure",
	})
	if err != nil {
		return fmt.Errorf("creating decoder: %w", err)
	}

	return decoder.Decode(section.Interface()) //nolint:wrapcheck
}

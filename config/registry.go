package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/0xalexb/hjarta-field/document"
)

// ErrNoParserMatched is matched by the error returned when every decoder failed.
var ErrNoParserMatched = errors.New("no parser were able read the content")

// ErrUnknownDecoder is returned when a guess refers to a decoder that is not registered.
var ErrUnknownDecoder = errors.New("unknown decoder")

// ErrDuplicateDecoder is returned when two decoders share a name.
var ErrDuplicateDecoder = errors.New("duplicate decoder")

// Trace receives one line of diagnostic text per notable step. A nil Trace is a no-op.
type Trace func(line string)

func (t Trace) printf(format string, args ...any) {
	if t != nil {
		t(fmt.Sprintf(format, args...))
	}
}

// Guess maps a file name suffix to the decoders tried first for it.
type Guess struct {
	Suffix   string
	Decoders []string
}

// DecodeFailure records why one decoder rejected the content.
type DecodeFailure struct {
	Decoder string
	Err     error
}

// NoParserMatchedError is returned by Registry.Parse when no decoder accepted
// the content. Failures are kept in the order the decoders were attempted.
type NoParserMatchedError struct {
	Failures []DecodeFailure
}

func (e *NoParserMatchedError) Error() string {
	entries := make([]string, len(e.Failures))
	for i, failure := range e.Failures {
		entries[i] = fmt.Sprintf(" |> %s failed with: %v", failure.Decoder, failure.Err)
	}

	return ErrNoParserMatched.Error() + ":\n" + strings.Join(entries, "\n\n")
}

// Is matches ErrNoParserMatched.
func (e *NoParserMatchedError) Is(target error) bool {
	return target == ErrNoParserMatched
}

// Unwrap exposes every decoder error to errors.Is and errors.As.
func (e *NoParserMatchedError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, failure := range e.Failures {
		errs[i] = failure.Err
	}

	return errs
}

// Registry is an ordered set of decoders plus the suffix table used to guess
// which of them to try first. It is immutable once built and safe for
// concurrent use.
type Registry struct {
	decoders []Decoder
	byName   map[string]Decoder
	guesses  []Guess
}

// NewRegistry builds a registry. Decoder order is the fallback order; the
// first guess whose suffix matches a file name wins.
func NewRegistry(decoders []Decoder, guesses []Guess) (*Registry, error) {
	byName := make(map[string]Decoder, len(decoders))

	for _, decoder := range decoders {
		name := decoder.Name()
		if _, exists := byName[name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateDecoder, name)
		}

		byName[name] = decoder
	}

	for _, guess := range guesses {
		for _, name := range guess.Decoders {
			if _, exists := byName[name]; !exists {
				return nil, fmt.Errorf("%w %q for suffix %q", ErrUnknownDecoder, name, guess.Suffix)
			}
		}
	}

	return &Registry{
		decoders: append([]Decoder(nil), decoders...),
		byName:   byName,
		guesses:  append([]Guess(nil), guesses...),
	}, nil
}

// Names returns the decoder names in fallback order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.decoders))
	for i, decoder := range r.decoders {
		names[i] = decoder.Name()
	}

	return names
}

// Order returns the decoder names in the order Parse attempts them for fileName.
func (r *Registry) Order(fileName string) []string {
	tried := make(map[string]bool, len(r.decoders))
	order := make([]string, 0, len(r.decoders))

	if guess, ok := r.guess(fileName); ok {
		for _, name := range guess.Decoders {
			if !tried[name] {
				tried[name] = true
				order = append(order, name)
			}
		}
	}

	for _, decoder := range r.decoders {
		if name := decoder.Name(); !tried[name] {
			tried[name] = true
			order = append(order, name)
		}
	}

	return order
}

// Parse decodes content with the first decoder that accepts it. Decoders
// guessed from the suffix of fileName are tried first, then every other
// decoder in registry order. Each attempt and each failure is reported to trace.
func (r *Registry) Parse(fileName string, content []byte, trace Trace) (document.Value, error) {
	var failures []DecodeFailure

	for _, name := range r.Order(fileName) {
		trace.printf("attempting to parse content with %s parser...", name)

		value, err := r.byName[name].Decode(content)
		if err == nil {
			return value, nil
		}

		trace.printf("failed to parse content with %s: %v", name, err)

		failures = append(failures, DecodeFailure{Decoder: name, Err: err})
	}

	return document.Value{}, &NoParserMatchedError{Failures: failures}
}

func (r *Registry) guess(fileName string) (Guess, bool) {
	for _, guess := range r.guesses {
		if strings.HasSuffix(fileName, guess.Suffix) {
			return guess, true
		}
	}

	return Guess{}, false
}

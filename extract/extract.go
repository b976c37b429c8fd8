package extract

import (
	"context"
	"fmt"
	"strconv"

	"github.com/0xalexb/hjarta-field/config"
	filefetcher "github.com/0xalexb/hjarta-field/config/fetcher/file"
	"github.com/0xalexb/hjarta-field/document"
	"github.com/0xalexb/hjarta-field/path"
)

// Stage names the pipeline step a Result failed in.
type Stage string

// Pipeline stages, in execution order.
const (
	StageField   Stage = "field"
	StageRead    Stage = "read"
	StageDecode  Stage = "decode"
	StageExtract Stage = "extract"
)

// Trace receives one diagnostic line per notable step. A nil Trace is a no-op.
type Trace = config.Trace

// SourceFunc opens the source for a file path.
type SourceFunc func(filePath string) config.Source

// Result is either an extracted value or an error message, never both.
type Result struct {
	// Output is the extracted value. It is Absent when the path ran off the data.
	Output document.Value
	// Error is the human readable failure message, empty on success.
	Error string
	// Stage is the failing stage, empty on success.
	Stage Stage
	// Cause is the underlying error, for errors.Is and errors.As.
	Cause error
}

// Failed reports whether the Result carries an error.
func (r Result) Failed() bool {
	return r.Error != ""
}

// Extractor runs the extraction pipeline: parse the field path, read the
// file, decode its content and read the value at the path. It holds no per
// call state and may be shared between goroutines.
type Extractor struct {
	registry *config.Registry
	open     SourceFunc
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithRegistry replaces the default decoder registry.
func WithRegistry(registry *config.Registry) Option {
	return func(e *Extractor) {
		e.registry = registry
	}
}

// WithSource replaces how file paths are turned into sources.
func WithSource(open SourceFunc) Option {
	return func(e *Extractor) {
		e.open = open
	}
}

// New creates an Extractor reading files from disk with the default registry.
func New(opts ...Option) *Extractor {
	extractor := &Extractor{
		registry: nil,
		open:     nil,
	}

	for _, apply := range opts {
		apply(extractor)
	}

	if extractor.registry == nil {
		extractor.registry = config.DefaultRegistry()
	}

	if extractor.open == nil {
		extractor.open = func(filePath string) config.Source {
			return filefetcher.NewFetcher(filePath)
		}
	}

	return extractor
}

// Execute extracts field from the file at filePath. The first failing stage
// ends the pipeline; later stages do not run.
func (e *Extractor) Execute(ctx context.Context, filePath, field string, trace Trace) Result {
	steps, err := path.Parse(field)
	if err != nil {
		return failure(StageField, err, "unable to parse field %s: %v", strconv.Quote(field), err)
	}

	emit(trace, "successfully parsed field into keys: %s", steps)

	return e.run(ctx, e.open(filePath), steps, trace)
}

// ExecuteSource is Execute for an already opened source, such as in-memory
// content. The source name is used for format guessing and messages.
func (e *Extractor) ExecuteSource(ctx context.Context, source config.Source, field string, trace Trace) Result {
	steps, err := path.Parse(field)
	if err != nil {
		return failure(StageField, err, "unable to parse field %s: %v", strconv.Quote(field), err)
	}

	emit(trace, "successfully parsed field into keys: %s", steps)

	return e.run(ctx, source, steps, trace)
}

func (e *Extractor) run(ctx context.Context, source config.Source, steps path.Path, trace Trace) Result {
	name := strconv.Quote(source.Name())

	content, err := source.Fetch(ctx)
	if err != nil {
		return failure(StageRead, err, "unable to read file at %s into a string: %v", name, err)
	}

	emit(trace, "successfully read file at %s into a buffer", name)

	data, err := e.registry.Parse(source.Name(), content, trace)
	if err != nil {
		return failure(StageDecode, err, "unable to parse data for %s: %v", name, err)
	}

	emit(trace, "successfully parsed data for %s", name)

	output, err := document.Read(steps, data)
	if err != nil {
		return failure(StageExtract, err, "unable to extract field from data: %v", err)
	}

	return Result{Output: output, Error: "", Stage: "", Cause: nil}
}

func failure(stage Stage, cause error, format string, args ...any) Result {
	return Result{
		Output: document.Value{},
		Error:  fmt.Sprintf(format, args...),
		Stage:  stage,
		Cause:  cause,
	}
}

func emit(trace Trace, format string, args ...any) {
	if trace != nil {
		trace(fmt.Sprintf(format, args...))
	}
}

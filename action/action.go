package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/0xalexb/hjarta-field/document"
	"github.com/0xalexb/hjarta-field/extract"

	"github.com/spf13/viper"
)

// ErrInputRequired is returned when a required input is empty.
var ErrInputRequired = errors.New("input required and not supplied")

// Output names.
const (
	OutputResult     = "result"
	OutputResultJSON = "result_json"
)

// Inputs are the step inputs.
type Inputs struct {
	File  string
	Field string
}

// NewEnv returns a viper instance reading the runner environment: inputs as
// INPUT_<NAME> and the output file as GITHUB_OUTPUT.
func NewEnv() *viper.Viper {
	env := viper.New()
	env.SetEnvPrefix("INPUT")
	env.SetEnvKeyReplacer(strings.NewReplacer(" ", "_", "-", "_"))
	env.AutomaticEnv()

	_ = env.BindEnv("github_output", "GITHUB_OUTPUT")

	return env
}

// ReadInputs reads and trims the file and field inputs. Both are required.
func ReadInputs(env *viper.Viper, trace extract.Trace) (Inputs, error) {
	file, err := requiredInput(env, "file")
	if err != nil {
		return Inputs{}, err
	}

	emit(trace, "read input 'file' = "+strconv.Quote(file))

	field, err := requiredInput(env, "field")
	if err != nil {
		return Inputs{}, err
	}

	emit(trace, "read input 'field' = "+strconv.Quote(field))

	return Inputs{File: file, Field: field}, nil
}

func requiredInput(env *viper.Viper, name string) (string, error) {
	value := strings.TrimSpace(env.GetString(name))
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrInputRequired, name)
	}

	return value, nil
}

// Runner executes one action step.
type Runner struct {
	extractor *extract.Extractor
	env       *viper.Viper
	commands  *Commands
}

// NewRunner creates a Runner writing workflow commands to out.
func NewRunner(extractor *extract.Extractor, env *viper.Viper, out io.Writer) *Runner {
	return &Runner{
		extractor: extractor,
		env:       env,
		commands:  NewCommands(out, env.GetString("github_output")),
	}
}

// Run performs the step and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	inputs, err := ReadInputs(r.env, r.commands.Debug)
	if err != nil {
		r.commands.Error(err.Error())

		return 1
	}

	result := r.extractor.Execute(ctx, inputs.File, inputs.Field, r.commands.Debug)
	if result.Failed() {
		r.commands.Error(result.Error)

		return 1
	}

	for _, output := range []struct{ name, value string }{
		{OutputResult, FormatResult(result.Output)},
		{OutputResultJSON, FormatResultJSON(result.Output)},
	} {
		err = r.commands.SetOutput(output.name, output.value)
		if err != nil {
			r.commands.Error(err.Error())

			return 1
		}
	}

	return 0
}

// FormatResult renders the result output: strings verbatim, absent and null
// as empty, everything else as JSON.
func FormatResult(value document.Value) string {
	switch value.Kind() {
	case document.KindAbsent, document.KindNull:
		return ""
	case document.KindString:
		text, _ := value.Interface().(string)

		return text
	default:
		return value.String()
	}
}

// FormatResultJSON renders the result_json output: JSON, or empty when absent.
func FormatResultJSON(value document.Value) string {
	if value.IsAbsent() {
		return ""
	}

	return value.String()
}

func emit(trace extract.Trace, line string) {
	if trace != nil {
		trace(line)
	}
}

package action

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// ErrDelimiterCollision is returned when an output name or value contains the
// heredoc delimiter chosen for it.
var ErrDelimiterCollision = errors.New("output contains the delimiter")

//nolint:gochecknoglobals // immutable replacers
var (
	dataEscaper     = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A")
	propertyEscaper = strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A", ":", "%3A", ",", "%2C")
)

// Commands writes workflow commands to the runner.
type Commands struct {
	out          io.Writer
	outputFile   string
	newDelimiter func() string
}

// NewCommands writes commands to out. When outputFile is not empty, outputs
// are appended to that file instead of using the deprecated set-output command.
func NewCommands(out io.Writer, outputFile string) *Commands {
	return &Commands{
		out:        out,
		outputFile: outputFile,
		newDelimiter: func() string {
			return "ghadelimiter_" + uuid.NewString()
		},
	}
}

// Debug emits a ::debug:: line, shown when step debug logging is enabled.
func (c *Commands) Debug(message string) {
	c.issue("debug", nil, message)
}

// Error emits an ::error:: annotation.
func (c *Commands) Error(message string) {
	c.issue("error", nil, message)
}

// SetOutput publishes a step output.
func (c *Commands) SetOutput(name, value string) error {
	if c.outputFile == "" {
		_, _ = io.WriteString(c.out, "\n")
		c.issue("set-output", [][2]string{{"name", name}}, value)

		return nil
	}

	delimiter := c.newDelimiter()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return fmt.Errorf("%w: %q", ErrDelimiterCollision, name)
	}

	file, err := os.OpenFile(c.outputFile, os.O_APPEND|os.O_WRONLY, 0) // #nosec G304 -- path is set by the runner
	if err != nil {
		return fmt.Errorf("opening output file: %w", err)
	}

	_, err = fmt.Fprintf(file, "%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	if err != nil {
		_ = file.Close()

		return fmt.Errorf("writing output %q: %w", name, err)
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}

	return nil
}

func (c *Commands) issue(command string, properties [][2]string, message string) {
	var line strings.Builder

	line.WriteString("::")
	line.WriteString(command)

	for i, property := range properties {
		if i == 0 {
			line.WriteByte(' ')
		} else {
			line.WriteByte(',')
		}

		line.WriteString(property[0])
		line.WriteByte('=')
		line.WriteString(propertyEscaper.Replace(property[1]))
	}

	line.WriteString("::")
	line.WriteString(dataEscaper.Replace(message))
	line.WriteByte('\n')

	_, _ = io.WriteString(c.out, line.String())
}

package json5

import (
	"fmt"

	"github.com/0xalexb/hjarta-field/document"

	"github.com/titanous/json5"
)

// Name is the decoder name used in traces and error reports.
const Name = "json5"

// Parser decodes JSON5: comments, unquoted keys, single quoted strings and
// trailing commas are accepted.
type Parser struct{}

// NewParser creates a new JSON5 parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Name returns "json5".
func (p *Parser) Name() string {
	return Name
}

// Decode parses data into a document tree.
func (p *Parser) Decode(data []byte) (document.Value, error) {
	var raw any

	err := json5.Unmarshal(data, &raw)
	if err != nil {
		return document.Value{}, fmt.Errorf("invalid JSON5: %w", err)
	}

	return document.FromAny(raw) //nolint:wrapcheck
}

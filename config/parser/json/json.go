package json

import (
	"encoding/json"
	"fmt"

	"github.com/0xalexb/hjarta-field/document"
)

// Name is the decoder name used in traces and error reports.
const Name = "json"

// Parser decodes strict RFC 8259 JSON. Numbers decode to float64.
type Parser struct{}

// NewParser creates a new JSON parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Name returns "json".
func (p *Parser) Name() string {
	return Name
}

// Decode parses data into a document tree. Trailing data after the first
// value is an error.
func (p *Parser) Decode(data []byte) (document.Value, error) {
	var raw any

	err := json.Unmarshal(data, &raw)
	if err != nil {
		return document.Value{}, fmt.Errorf("invalid JSON: %w", err)
	}

	return document.FromAny(raw) //nolint:wrapcheck
}

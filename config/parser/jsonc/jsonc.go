package jsonc

import (
	"encoding/json"
	"fmt"

	"github.com/0xalexb/hjarta-field/document"

	"github.com/tidwall/jsonc"
)

// Name is the decoder name used in traces and error reports.
const Name = "jsonc"

// Parser decodes JSON with comments. Line and block comments plus trailing
// commas are stripped by tidwall/jsonc before strict JSON decoding, so the
// remaining syntax must be plain JSON.
type Parser struct{}

// NewParser creates a new JSONC parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Name returns "jsonc".
func (p *Parser) Name() string {
	return Name
}

// Decode parses data into a document tree.
func (p *Parser) Decode(data []byte) (document.Value, error) {
	var raw any

	err := json.Unmarshal(jsonc.ToJSON(data), &raw)
	if err != nil {
		return document.Value{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	return document.FromAny(raw) //nolint:wrapcheck
}

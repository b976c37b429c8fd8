package toml

import (
	"fmt"

	"github.com/0xalexb/hjarta-field/document"

	"github.com/BurntSushi/toml"
)

// Name is the decoder name used in traces and error reports.
const Name = "toml"

// Parser decodes TOML v1.0 documents with BurntSushi/toml.
// Integers stay int64 and date/time values stay time.Time.
type Parser struct{}

// NewParser creates a new TOML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Name returns "toml".
func (p *Parser) Name() string {
	return Name
}

// Decode parses data into a document tree. The root is always a map.
func (p *Parser) Decode(data []byte) (document.Value, error) {
	raw := map[string]any{}

	err := toml.Unmarshal(data, &raw)
	if err != nil {
		return document.Value{}, fmt.Errorf("invalid TOML document: %w", err)
	}

	return document.FromAny(raw) //nolint:wrapcheck
}

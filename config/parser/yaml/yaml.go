package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/0xalexb/hjarta-field/document"

	"github.com/goccy/go-yaml"
)

// Name is the decoder name used in traces and error reports.
const Name = "yaml"

// ErrMultipleDocuments is returned for streams holding more than one document.
var ErrMultipleDocuments = errors.New("source contains multiple documents")

// Parser decodes a single YAML document using goccy/go-yaml.
type Parser struct{}

// NewParser creates a new YAML parser instance.
func NewParser() *Parser {
	return &Parser{}
}

// Name returns "yaml".
func (p *Parser) Name() string {
	return Name
}

// Decode parses data into a document tree. Empty input decodes to null.
func (p *Parser) Decode(data []byte) (document.Value, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))

	var raw any

	err := decoder.Decode(&raw)
	if err != nil && !errors.Is(err, io.EOF) {
		return document.Value{}, fmt.Errorf("invalid YAML: %w", err)
	}

	var next any

	err = decoder.Decode(&next)
	if !errors.Is(err, io.EOF) {
		if err != nil {
			return document.Value{}, fmt.Errorf("invalid YAML: %w", err)
		}

		return document.Value{}, fmt.Errorf("invalid YAML: %w", ErrMultipleDocuments)
	}

	value, err := document.FromAny(raw)
	if err != nil {
		return document.Value{}, fmt.Errorf("converting YAML document: %w", err)
	}

	return value, nil
}

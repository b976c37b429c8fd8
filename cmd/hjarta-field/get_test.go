package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xalexb/hjarta-field/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()

	filePath := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(filePath, []byte(content), 0o600))

	return filePath
}

func TestRunGet(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "package.json", `{"name": "field", "version": "1.2.3", "files": ["dist"], "private": null}`)

	tests := []struct {
		name     string
		field    string
		json     bool
		expected string
	}{
		{name: "raw string", field: "version", expected: "1.2.3\n"},
		{name: "json string", field: "version", json: true, expected: "\"1.2.3\"\n"},
		{name: "sequence", field: "files", expected: "[\"dist\"]\n"},
		{name: "null", field: "private", json: true, expected: "null\n"},
		{name: "absent", field: "license", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer

			code := runGet(context.Background(), extract.New(),
				getRequest{file: file, field: tt.field, json: tt.json, verbose: false}, &out, &errOut)

			require.Equal(t, 0, code, errOut.String())
			assert.Equal(t, tt.expected, out.String())
			assert.Empty(t, errOut.String())
		})
	}
}

func TestRunGet_Failure(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "config.toml", "[tool]\nname = \"field\"\n")

	var out, errOut bytes.Buffer

	code := runGet(context.Background(), extract.New(),
		getRequest{file: file, field: "tool[", json: false, verbose: false}, &out, &errOut)

	assert.Equal(t, 1, code)
	assert.Empty(t, out.String())
	assert.Equal(t, "error: unable to parse field \"tool[\": missing closing bracket at 5\n", errOut.String())
}

func TestRunGet_Verbose(t *testing.T) {
	t.Parallel()

	file := writeFile(t, "action.yml", "runs:\n  using: node24\n")

	var out, errOut bytes.Buffer

	code := runGet(context.Background(), extract.New(),
		getRequest{file: file, field: "runs.using", json: false, verbose: true}, &out, &errOut)

	require.Equal(t, 0, code)
	assert.Equal(t, "node24\n", out.String())
	assert.Contains(t, errOut.String(), "level=DEBUG")
	assert.Contains(t, errOut.String(), "attempting to parse content with yaml parser...")
	assert.Contains(t, errOut.String(), "file="+file)
}

func TestPrintError_NotTerminal(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	printError(&buf, "boom")

	assert.Equal(t, "error: boom\n", buf.String())
	assert.False(t, isTerminal(&buf))
}

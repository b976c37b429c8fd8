package json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected any
	}{
		{
			name:     "object",
			input:    `{"name": "test", "value": 123}`,
			expected: map[string]any{"name": "test", "value": float64(123)},
		},
		{
			name:     "array",
			input:    `[1, 2, 3, "test"]`,
			expected: []any{float64(1), float64(2), float64(3), "test"},
		},
		{
			name:  "various types",
			input: `{"string": "hello", "boolean": true, "null": null, "array": [1], "object": {"key": "value"}}`,
			expected: map[string]any{
				"string":  "hello",
				"boolean": true,
				"null":    nil,
				"array":   []any{float64(1)},
				"object":  map[string]any{"key": "value"},
			},
		},
		{
			name:     "scalar root",
			input:    `"just a string"`,
			expected: "just a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := NewParser().Decode([]byte(tt.input))

			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Interface())
		})
	}
}

func TestParser_Decode_Invalid(t *testing.T) {
	t.Parallel()

	inputs := []string{
		``,
		`{name: "test"}`,
		`{"a": 1,}`,
		`{"a": 1} {"b": 2}`,
		"// comment\n{}",
	}

	for _, input := range inputs {
		_, err := NewParser().Decode([]byte(input))

		require.Error(t, err, input)
		assert.Contains(t, err.Error(), "invalid JSON")
	}
}

func TestParser_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "json", NewParser().Name())
}

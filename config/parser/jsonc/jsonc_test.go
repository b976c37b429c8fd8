package jsonc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Decode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{
			name: "line comments",
			input: `{
				// This is a comment
				"name": "test", // inline comment
				"value": 123
			}`,
		},
		{
			name: "block comments",
			input: `{
				/* This is a block comment */
				"name": "test",
				/* Another block comment */
				"value": 123
			}`,
		},
		{
			name: "trailing commas",
			input: `{
				"name": "test",
				"value": 123,
			}`,
		},
		{
			name: "mixed comment styles",
			input: `{
				// Line comment
				"name": "test",
				/* Block comment */
				"value": 123, // Trailing comment
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := NewParser().Decode([]byte(tt.input))

			require.NoError(t, err)
			assert.Equal(t, map[string]any{"name": "test", "value": float64(123)}, result.Interface())
		})
	}
}

func TestParser_Decode_RejectsUnquotedKeys(t *testing.T) {
	t.Parallel()

	_, err := NewParser().Decode([]byte(`{name: "test"}`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSONC")
}

func TestParser_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "jsonc", NewParser().Name())
}

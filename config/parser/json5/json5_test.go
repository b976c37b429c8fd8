package json5

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
			name: "comments",
			input: `{
				// This is a comment
				name: "test", // inline comment
				value: 123
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
			name: "single quotes",
			input: `{
				'name': 'test',
				'value': 123
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

func TestParser_Decode_UnquotedNestedKeys(t *testing.T) {
	t.Parallel()

	result, err := NewParser().Decode([]byte(`{nested: {key: "value"}}`))

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"nested": map[string]any{"key": "value"}}, result.Interface())
}

func TestParser_Decode_Invalid(t *testing.T) {
	t.Parallel()

	_, err := NewParser().Decode([]byte(`name = "test"`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON5")
}

func TestParser_Name(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "json5", NewParser().Name())
}

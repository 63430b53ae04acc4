package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_Build(t *testing.T) {
	raw := Object(map[string]*Property{
		"city": String("City name"),
		"days": Integer("Day offset").Min(-365).Max(365),
	}, "city")

	assert.Equal(t, "object", raw["type"])
	assert.Equal(t, []string{"city"}, raw["required"])
	assert.Equal(t, false, raw["additionalProperties"])

	props := raw["properties"].(map[string]any)
	city := props["city"].(map[string]any)
	assert.Equal(t, "string", city["type"])
	assert.Equal(t, "City name", city["description"])

	days := props["days"].(map[string]any)
	assert.Equal(t, "integer", days["type"])
	assert.Equal(t, float64(-365), days["minimum"])
}

func TestSchema_Validate(t *testing.T) {
	compiled := MustCompile(Object(map[string]*Property{
		"expression": String("Arithmetic expression"),
		"days":       Integer("Day offset"),
	}, "expression"))

	type input struct {
		args map[string]any
	}

	type expected struct {
		valid bool
	}

	tests := []struct {
		name     string
		input    input
		expected expected
	}{
		{
			name:     "valid arguments",
			input:    input{args: map[string]any{"expression": "1 + 2"}},
			expected: expected{valid: true},
		},
		{
			name:     "optional integer present",
			input:    input{args: map[string]any{"expression": "1", "days": 7}},
			expected: expected{valid: true},
		},
		{
			name:     "integral float accepted as integer",
			input:    input{args: map[string]any{"expression": "1", "days": float64(7)}},
			expected: expected{valid: true},
		},
		{
			name:     "missing required field",
			input:    input{args: map[string]any{"days": 7}},
			expected: expected{valid: false},
		},
		{
			name:     "wrong type",
			input:    input{args: map[string]any{"expression": 12}},
			expected: expected{valid: false},
		},
		{
			name:     "fractional value for integer field",
			input:    input{args: map[string]any{"expression": "1", "days": 2.5}},
			expected: expected{valid: false},
		},
		{
			name:     "unknown property",
			input:    input{args: map[string]any{"expression": "1", "bogus": true}},
			expected: expected{valid: false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := compiled.Validate(tt.input.args)

			if tt.expected.valid {
				assert.NoError(t, err)
			} else {
				var validationErr *ValidationError
				require.ErrorAs(t, err, &validationErr)
			}
		})
	}
}

func TestCompile_NilSchema(t *testing.T) {
	s, err := Compile(nil)

	require.NoError(t, err)
	assert.Nil(t, s)
	assert.NoError(t, s.Validate(map[string]any{"anything": "goes"}))
}

func TestMustCompile_PanicsOnInvalid(t *testing.T) {
	assert.Panics(t, func() {
		MustCompile(map[string]any{"type": 42})
	})
}

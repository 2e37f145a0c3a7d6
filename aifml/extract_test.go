package aifml_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"i4.energy/across/fmlgw/aifml"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{
			name:     "Last closing brace wins",
			raw:      `noise{"a":1}moretrailing}`,
			expected: `{"a":1}moretrailing}`,
		},
		{
			name:     "Body inside modem output",
			raw:      "\r\nSEND OK\r\n\r\n+IPD,60:HTTP/1.1 200 OK\r\nContent-Type: application/json\r\n\r\n{\"status\":true,\"data\":{}}\r\nCLOSED\r\n",
			expected: `{"status":true,"data":{}}`,
		},
		{
			name:     "Whole input",
			raw:      `{}`,
			expected: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := aifml.ExtractJSON(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractJSON_Errors(t *testing.T) {
	for _, raw := range []string{"no braces here", "", "only { open", "only } close", "}{"} {
		t.Run(raw, func(t *testing.T) {
			_, err := aifml.ExtractJSON(raw)
			assert.ErrorIs(t, err, aifml.ErrJSON)
		})
	}
}

package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid passes through",
			input: `{"intent":"store_search","brand":"атб"}`,
			want:  `{"intent":"store_search","brand":"атб"}`,
		},
		{
			name:  "missing opening quote on key",
			input: `{"intent":"store_search", brand":"атб"}`,
			want:  `{"intent":"store_search", "brand":"атб"}`,
		},
		{
			name:  "fully unquoted key",
			input: `{intent:"conversation"}`,
			want:  `{"intent":"conversation"}`,
		},
		{
			name:  "trailing comma in object",
			input: `{"intent":"conversation",}`,
			want:  `{"intent":"conversation"}`,
		},
		{
			name:  "trailing comma with whitespace",
			input: "{\"intent\":\"conversation\",\n}",
			want:  "{\"intent\":\"conversation\"\n}",
		},
		{
			name:  "structural characters inside strings untouched",
			input: `{"city":"м. Дніпро, вул. {тест}"}`,
			want:  `{"city":"м. Дніпро, вул. {тест}"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repairJSON(tt.input)
			assert.Equal(t, tt.want, got)

			var sink map[string]any
			require.NoError(t, json.Unmarshal([]byte(got), &sink))
		})
	}
}

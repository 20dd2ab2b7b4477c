package validator

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		record   map[string]interface{}
		required []string
		want     []string
	}{
		{
			name:     "valid candidate",
			record:   map[string]interface{}{"first_name": "Ava", "last_name": "Lee", "industry_connected": false},
			required: []string{"first_name", "last_name", "industry_connected"},
		},
		{
			name:     "missing fields reported in order",
			record:   map[string]interface{}{"industry_connected": true},
			required: []string{"first_name", "last_name", "industry_connected"},
			want:     []string{"first_name is required", "last_name is required"},
		},
		{
			name:     "null counts as missing",
			record:   map[string]interface{}{"first_name": nil, "last_name": "Lee"},
			required: []string{"first_name", "last_name"},
			want:     []string{"first_name is required"},
		},
		{
			name:     "empty string is present",
			record:   map[string]interface{}{"first_name": "", "last_name": ""},
			required: []string{"first_name", "last_name"},
		},
		{
			name:     "boolean field with string value",
			record:   map[string]interface{}{"first_name": "Ava", "last_name": "Lee", "industry_connected": "yes"},
			required: []string{"first_name", "last_name", "industry_connected"},
			want:     []string{"industry_connected should be a boolean"},
		},
		{
			name:     "boolean field with number value",
			record:   map[string]interface{}{"industry_connected": json.Number("1")},
			required: []string{"industry_connected"},
			want:     []string{"industry_connected should be a boolean"},
		},
		{
			name:     "missing boolean field is only reported once",
			record:   map[string]interface{}{},
			required: []string{"industry_connected"},
			want:     []string{"industry_connected is required"},
		},
		{
			name:     "unlisted fields are not checked",
			record:   map[string]interface{}{"party_id": json.Number("2"), "industry_connected": "no"},
			required: []string{"party_id"},
		},
		{
			name:     "nothing required",
			record:   nil,
			required: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Validate(tt.record, tt.required...))
		})
	}
}

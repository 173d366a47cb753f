package curate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecsift/vecsift/metadata"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   metadata.Value
		want string
		ok   bool
	}{
		{"RFC3339", metadata.String("2024-06-01T12:30:00Z"), "2024-06-01T12:30:00Z", true},
		{"DateOnly", metadata.String("2024-06-01"), "2024-06-01T00:00:00Z", true},
		{"SlashDate", metadata.String("2024/06/01"), "2024-06-01T00:00:00Z", true},
		{"SpaceSeparated", metadata.String("2024-06-01 12:30:00"), "2024-06-01T12:30:00Z", true},
		{"Garbage", metadata.String("next Tuesday"), "", false},
		{"EmptyString", metadata.String(""), "", false},
		{"NonString", metadata.Int(1717243800), "", false},
		{"Null", metadata.Null(), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseDate(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				want, err := time.Parse(time.RFC3339, tt.want)
				require.NoError(t, err)
				assert.True(t, got.Equal(want), "got %v want %v", got, want)
			}
		})
	}
}

package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimePeriod(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{name: "valid range", start: "2025-08-01", end: "2025-08-31"},
		{name: "single day", start: "2025-08-01", end: "2025-08-01"},
		{name: "start after end", start: "2025-08-31", end: "2025-08-01", wantErr: true},
		{name: "garbage start", start: "yesterday", end: "2025-08-31", wantErr: true},
		{name: "wrong format", start: "01-08-2025", end: "2025-08-31", wantErr: true},
		{name: "impossible date", start: "2025-02-30", end: "2025-03-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := NewTimePeriod(tt.start, tt.end)
			if tt.wantErr {
				require.Error(t, err)
				var validationErr *ValidationError
				assert.ErrorAs(t, err, &validationErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, TimePeriod{Start: tt.start, End: tt.end}, period)
		})
	}
}

func TestLastDays(t *testing.T) {
	period := LastDays(30)

	end, err := time.Parse("2006-01-02", period.End)
	require.NoError(t, err)
	start, err := time.Parse("2006-01-02", period.Start)
	require.NoError(t, err)

	assert.Equal(t, 30*24*time.Hour, end.Sub(start))
}

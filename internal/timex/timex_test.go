package timex

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuration_UnmarshalJSON(t *testing.T) {
	var cfg struct {
		A Duration `json:"a"`
		B Duration `json:"b"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"1m30s","b":2000000000}`), &cfg))
	assert.Equal(t, 90*time.Second, cfg.A.Duration)
	assert.Equal(t, 2*time.Second, cfg.B.Duration)
}

func TestDuration_UnmarshalJSON_Invalid(t *testing.T) {
	var d Duration
	assert.Error(t, json.Unmarshal([]byte(`"ten minutes"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`true`), &d))
}

func TestDuration_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Duration{Duration: 3 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, `"3s"`, string(b))
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "03-01-2024", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "3-1-2024", want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "12-31-1999", want: time.Date(1999, 12, 31, 0, 0, 0, 0, time.UTC)},
		{in: "13-01-2024", wantErr: true},
		{in: "02-30-2024", wantErr: true},
		{in: "2024-03-01", wantErr: true},
		{in: "03/01/2024", wantErr: true},
		{in: "03-01-24", wantErr: true},
		{in: "aa-bb-cccc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v", got)
		})
	}
}

func TestDayAndFormat(t *testing.T) {
	in := time.Date(2024, 3, 1, 17, 45, 0, 0, time.FixedZone("X", 3600))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Day(in))
	assert.Equal(t, "2024-03-01", FormatDate(Day(in)))
}

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// TestDuration_UnmarshalYAML tests YAML unmarshaling for Duration type
func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		expected time.Duration
		wantErr  bool
	}{
		{
			name:     "milliseconds",
			yaml:     "duration: 250ms",
			expected: 250 * time.Millisecond,
		},
		{
			name:     "seconds",
			yaml:     "duration: 30s",
			expected: 30 * time.Second,
		},
		{
			name:     "combined",
			yaml:     "duration: 1h30m",
			expected: time.Hour + 30*time.Minute,
		},
		{
			name:     "days",
			yaml:     "duration: 7d",
			expected: 7 * 24 * time.Hour,
		},
		{
			name:     "fractional days",
			yaml:     "duration: 1.5d",
			expected: time.Duration(1.5 * float64(24*time.Hour)),
		},
		{
			name:     "weeks",
			yaml:     "duration: 2w",
			expected: 14 * 24 * time.Hour,
		},
		{
			name:     "negative days",
			yaml:     "duration: -1d",
			expected: -24 * time.Hour,
		},
		{
			name:    "unknown suffix",
			yaml:    "duration: 3y",
			wantErr: true,
		},
		{
			name:    "garbage",
			yaml:    "duration: soon",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var config struct {
				Duration Duration `yaml:"duration"`
			}
			err := yaml.Unmarshal([]byte(tt.yaml), &config)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, config.Duration.ToDuration())
		})
	}
}

func TestDuration_MarshalYAML(t *testing.T) {
	config := struct {
		Duration Duration `yaml:"duration"`
	}{Duration: Duration(90 * time.Second)}

	data, err := yaml.Marshal(config)
	require.NoError(t, err)
	assert.Equal(t, "duration: 1m30s\n", string(data))
}

func TestDuration_String(t *testing.T) {
	assert.Equal(t, "15s", Duration(15*time.Second).String())
	assert.Equal(t, "0s", Duration(0).String())
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullConfig(t *testing.T) {
	cfg, err := Parse([]byte(`
server:
  port: 8080
overpass:
  apiURL: https://overpass.example.com/api/interpreter
  timeoutMS: 5000
map:
  filterLines: true
  minDownloadZoom: 15
  bounds: [42.62, 23.25, 42.75, 23.45]
log:
  level: debug
`))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://overpass.example.com/api/interpreter", cfg.Overpass.APIURL)
	assert.Equal(t, 5000, cfg.Overpass.TimeoutMS)
	assert.True(t, cfg.Map.FilterLines)
	assert.Equal(t, 15, cfg.Map.MinDownloadZoom)
	assert.Equal(t, []float64{42.62, 23.25, 42.75, 23.45}, cfg.Map.Bounds)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, 17280, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "https://overpass-api.de/api/interpreter", cfg.Overpass.APIURL)
	assert.Nil(t, cfg.Map.Bounds)
}

func TestParseRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"negative port", "server:\n  port: -1\n"},
		{"bad log level", "log:\n  level: loud\n"},
		{"short bounds", "map:\n  bounds: [42.62, 23.25]\n"},
		{"bad overpass url", "overpass:\n  apiURL: not-a-url\n"},
		{"not yaml", "server: [\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

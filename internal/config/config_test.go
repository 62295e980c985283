package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/historical-day/internal/weather"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"PORT", "HTTP_TIMEOUT", "USER_AGENT", "OPEN_METEO_ARCHIVE_URL", "WIKIMEDIA_FEED_URL",
		"WIKIMEDIA_LANGUAGE", "GEOCODER_API_KEY", "CACHE_MAX_ENTRIES", "CACHE_MAX_AGE",
		"PURGE_INTERVAL", "WARMUP_AT", "MIN_YEAR", "DEFAULT_HOUR", "DEFAULT_TIMEZONE",
		"WEATHER_LOCATIONS", "AUTH_FILE", "WEATHERAPI_API_KEY", "WEATHERAPI_HISTORY_URL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 512, cfg.CacheMaxEntries)
	assert.Equal(t, 24*time.Hour, cfg.CacheMaxAge)
	assert.Equal(t, 15*time.Minute, cfg.PurgeInterval)
	assert.Equal(t, "00:05", cfg.WarmupAt)
	assert.Equal(t, 1754, cfg.MinYear)
	assert.Equal(t, 12, cfg.DefaultHour)
	assert.Equal(t, "auto", cfg.DefaultTimezone)
	assert.Equal(t, "en", cfg.WikimediaLang)
	assert.Equal(t, weather.DefaultLocations, cfg.Locations)
	assert.Empty(t, cfg.WeatherAPIKey)
	assert.Equal(t, "https://api.weatherapi.com/v1/history.json", cfg.WeatherAPIHistoryURL)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_MAX_AGE", "1h")
	t.Setenv("MIN_YEAR", "1940")
	t.Setenv("WARMUP_AT", "off")
	t.Setenv("WEATHER_LOCATIONS", "Oslo:59.91:10.75; Lima:-12.05:-77.04")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, time.Hour, cfg.CacheMaxAge)
	assert.Equal(t, 1940, cfg.MinYear)
	assert.Empty(t, cfg.WarmupAt)
	assert.Equal(t, []weather.Location{
		{Name: "Oslo", Lat: 59.91, Lon: 10.75},
		{Name: "Lima", Lat: -12.05, Lon: -77.04},
	}, cfg.Locations)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"HTTP_TIMEOUT":      "soon",
		"CACHE_MAX_ENTRIES": "many",
		"DEFAULT_HOUR":      "24",
		"WARMUP_AT":         "25:00",
		"WEATHER_LOCATIONS": "Nowhere:95:0",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseLocations(t *testing.T) {
	_, err := parseLocations("just-a-name")
	assert.Error(t, err)

	_, err = parseLocations(" ; ")
	assert.Error(t, err)

	locs, err := parseLocations("Quito:-0.18:-78.47")
	require.NoError(t, err)
	assert.Equal(t, "Quito", locs[0].Name)
}

func TestString_MasksSensitive(t *testing.T) {
	cfg := AppConfig{Port: "8080", GeocoderAPIKey: "secret-key", WeatherAPIKey: "other-secret"}
	s := cfg.String()
	assert.NotContains(t, s, "secret-key")
	assert.NotContains(t, s, "other-secret")
	assert.Contains(t, s, `"GeocoderAPIKey":"***"`)
	assert.Contains(t, s, `"WeatherAPIKey":"***"`)
	assert.Equal(t, "secret-key", cfg.GeocoderAPIKey)
}

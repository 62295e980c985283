package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/i474232898/historical-day/internal/auth"
	"github.com/i474232898/historical-day/internal/weather"
)

type AppConfig struct {
	Port string

	// HTTPTimeout bounds every outbound call.
	HTTPTimeout time.Duration
	UserAgent   string

	// Upstream endpoints.
	ArchiveURL       string
	WikimediaFeedURL string
	WikimediaLang    string
	GeocoderAPIKey   string `sensitive:"yes"`

	// Optional fallback archive, used only when a key is set.
	WeatherAPIHistoryURL string
	WeatherAPIKey        string `sensitive:"yes"`

	// In-memory cache retention.
	CacheMaxEntries int           // max entries per cache (0 = unlimited)
	CacheMaxAge     time.Duration // max age of an entry (0 = unlimited)

	// Scheduler.
	PurgeInterval time.Duration
	WarmupAt      string // HH:MM UTC, empty disables

	// Request defaults and policy.
	MinYear         int
	DefaultHour     int
	DefaultTimezone string

	// Locations offered as presets.
	Locations []weather.Location

	AuthFile string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}
	var err error

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.UserAgent = getenvDefault("USER_AGENT", "historical-day/1.0")
	cfg.ArchiveURL = getenvDefault("OPEN_METEO_ARCHIVE_URL", "https://archive-api.open-meteo.com/v1/archive")
	cfg.WikimediaFeedURL = getenvDefault("WIKIMEDIA_FEED_URL", "https://api.wikimedia.org/feed/v1/wikipedia")
	cfg.WikimediaLang = getenvDefault("WIKIMEDIA_LANGUAGE", "en")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")
	cfg.WeatherAPIKey = os.Getenv("WEATHERAPI_API_KEY")
	cfg.WeatherAPIHistoryURL = getenvDefault("WEATHERAPI_HISTORY_URL", "https://api.weatherapi.com/v1/history.json")
	cfg.AuthFile = getenvDefault("AUTH_FILE", auth.DefaultAuthFile)
	cfg.DefaultTimezone = getenvDefault("DEFAULT_TIMEZONE", "auto")

	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.CacheMaxAge, err = getenvDuration("CACHE_MAX_AGE", "24h"); err != nil {
		return nil, err
	}
	if cfg.PurgeInterval, err = getenvDuration("PURGE_INTERVAL", "15m"); err != nil {
		return nil, err
	}

	if cfg.CacheMaxEntries, err = getenvInt("CACHE_MAX_ENTRIES", 512); err != nil {
		return nil, err
	}
	if cfg.MinYear, err = getenvInt("MIN_YEAR", 1754); err != nil {
		return nil, err
	}
	if cfg.DefaultHour, err = getenvInt("DEFAULT_HOUR", 12); err != nil {
		return nil, err
	}
	if cfg.DefaultHour < 0 || cfg.DefaultHour > 23 {
		return nil, fmt.Errorf("invalid DEFAULT_HOUR: %d not in [0, 23]", cfg.DefaultHour)
	}

	cfg.WarmupAt = getenvDefault("WARMUP_AT", "00:05")
	if strings.EqualFold(cfg.WarmupAt, "off") {
		cfg.WarmupAt = ""
	}
	if cfg.WarmupAt != "" {
		if _, err := time.Parse("15:04", cfg.WarmupAt); err != nil {
			return nil, fmt.Errorf("invalid WARMUP_AT: %w", err)
		}
	}

	locs, err := parseLocations(os.Getenv("WEATHER_LOCATIONS"))
	if err != nil {
		return nil, err
	}
	cfg.Locations = locs

	return cfg, nil
}

// parseLocations reads "Name:lat:lon;Name:lat:lon". Empty input yields the defaults.
func parseLocations(s string) ([]weather.Location, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return weather.DefaultLocations, nil
	}

	var locs []weather.Location
	for _, item := range strings.Split(s, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		parts := strings.Split(item, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid WEATHER_LOCATIONS entry %q: expected Name:lat:lon", item)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil || lat < -90 || lat > 90 {
			return nil, fmt.Errorf("invalid latitude in WEATHER_LOCATIONS entry %q", item)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
		if err != nil || lon < -180 || lon > 180 {
			return nil, fmt.Errorf("invalid longitude in WEATHER_LOCATIONS entry %q", item)
		}
		locs = append(locs, weather.Location{
			Name: strings.TrimSpace(parts[0]),
			Lat:  lat,
			Lon:  lon,
		})
	}

	if len(locs) == 0 {
		return nil, fmt.Errorf("WEATHER_LOCATIONS contains no locations")
	}
	return locs, nil
}

// String renders the config as JSON with fields tagged sensitive blanked out.
func (c AppConfig) String() string {
	masked := c
	v := reflect.ValueOf(&masked).Elem()
	for i := 0; i < v.NumField(); i++ {
		field := v.Type().Field(i)
		if field.Tag.Get("sensitive") == "yes" && !v.Field(i).IsZero() {
			v.Field(i).SetString("***")
		}
	}

	b, err := json.Marshal(masked)
	if err != nil {
		return fmt.Sprintf("config: %v", err)
	}
	return string(b)
}

func getenvDefault(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

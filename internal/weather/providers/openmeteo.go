package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/i474232898/historical-day/internal/calendar"
	"github.com/i474232898/historical-day/internal/common"
	"github.com/i474232898/historical-day/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultArchiveURL is the Open-Meteo historical weather endpoint.
const DefaultArchiveURL = "https://archive-api.open-meteo.com/v1/archive"

// hourly time values come back as local wall time without a zone.
const openMeteoTimeLayout = "2006-01-02T15:04"

var hourlyVariables = []string{
	"temperature_2m",
	"apparent_temperature",
	"precipitation",
	"cloud_cover",
	"wind_speed_10m",
	"wind_direction_10m",
	"wind_gusts_10m",
	"is_day",
	"weather_code",
}

// OpenMeteoArchiveProvider implements weather.ArchiveProvider for the Open-Meteo archive API.
type OpenMeteoArchiveProvider struct {
	name    string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewOpenMeteoArchiveProvider(client *http.Client, baseURL, userAgent string) *OpenMeteoArchiveProvider {
	if baseURL == "" {
		baseURL = DefaultArchiveURL
	}

	return &OpenMeteoArchiveProvider{
		name:    "openmeteo-archive",
		baseURL: baseURL,
		httpCfg: common.HTTPClientConfig{
			Client:    client,
			Backoff:   common.DefaultBackoff,
			UserAgent: userAgent,
		},
		circuit: common.NewCircuitBreaker("openmeteo-archive"),
	}
}

func (p *OpenMeteoArchiveProvider) Name() string {
	return p.name
}

func (p *OpenMeteoArchiveProvider) FetchDay(ctx context.Context, loc weather.Location, date calendar.Date, timezone string) (weather.DayArchive, error) {
	if timezone == "" {
		timezone = "auto"
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(loc.Lat, 'f', 4, 64))
		values.Set("longitude", strconv.FormatFloat(loc.Lon, 'f', 4, 64))
		values.Set("start_date", date.String())
		values.Set("end_date", date.String())
		values.Set("hourly", strings.Join(hourlyVariables, ","))
		values.Set("timezone", timezone)

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := common.DoRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.DayArchive{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Timezone string `json:"timezone"`
		Hourly   struct {
			Time                []string   `json:"time"`
			Temperature         []*float64 `json:"temperature_2m"`
			ApparentTemperature []*float64 `json:"apparent_temperature"`
			Precipitation       []*float64 `json:"precipitation"`
			CloudCover          []*float64 `json:"cloud_cover"`
			WindSpeed           []*float64 `json:"wind_speed_10m"`
			WindDirection       []*float64 `json:"wind_direction_10m"`
			WindGusts           []*float64 `json:"wind_gusts_10m"`
			IsDay               []*int     `json:"is_day"`
			WeatherCode         []*int     `json:"weather_code"`
		} `json:"hourly"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.DayArchive{}, fmt.Errorf("decode openmeteo archive: %w", err)
	}

	h := payload.Hourly
	n := len(h.Time)
	for name, l := range map[string]int{
		"temperature_2m":       len(h.Temperature),
		"apparent_temperature": len(h.ApparentTemperature),
		"precipitation":        len(h.Precipitation),
		"cloud_cover":          len(h.CloudCover),
		"wind_speed_10m":       len(h.WindSpeed),
		"wind_direction_10m":   len(h.WindDirection),
		"wind_gusts_10m":       len(h.WindGusts),
		"is_day":               len(h.IsDay),
		"weather_code":         len(h.WeatherCode),
	} {
		if l != n {
			return weather.DayArchive{}, fmt.Errorf("openmeteo archive: %s has %d values, time has %d", name, l, n)
		}
	}

	tz := timezone
	if payload.Timezone != "" {
		tz = payload.Timezone
	}

	archive := weather.DayArchive{
		Location: loc,
		Date:     date,
		Timezone: tz,
		Hours:    make([]weather.HourlyReading, 0, n),
	}

	for i, raw := range h.Time {
		ts, err := time.Parse(openMeteoTimeLayout, raw)
		if err != nil {
			return weather.DayArchive{}, fmt.Errorf("openmeteo archive: bad time %q: %w", raw, err)
		}

		var isDay *bool
		if h.IsDay[i] != nil {
			v := *h.IsDay[i] == 1
			isDay = &v
		}

		archive.Hours = append(archive.Hours, weather.HourlyReading{
			Time:                ts,
			TemperatureC:        h.Temperature[i],
			ApparentTemperature: h.ApparentTemperature[i],
			PrecipitationMm:     h.Precipitation[i],
			CloudCoverPct:       h.CloudCover[i],
			WindSpeedKmh:        h.WindSpeed[i],
			WindDirectionDeg:    h.WindDirection[i],
			WindGustsKmh:        h.WindGusts[i],
			IsDay:               isDay,
			WeatherCode:         h.WeatherCode[i],
		})
	}

	return archive, nil
}

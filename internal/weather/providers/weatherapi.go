package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/historical-day/internal/calendar"
	"github.com/i474232898/historical-day/internal/common"
	"github.com/i474232898/historical-day/internal/weather"
	"github.com/sony/gobreaker"
)

// DefaultWeatherAPIHistoryURL is the WeatherAPI.com history endpoint.
const DefaultWeatherAPIHistoryURL = "https://api.weatherapi.com/v1/history.json"

const weatherAPITimeLayout = "2006-01-02 15:04"

// WeatherAPIHistoryProvider implements weather.ArchiveProvider for WeatherAPI.com.
// Hours are always reported in the location's own zone; the requested
// timezone is not forwarded.
type WeatherAPIHistoryProvider struct {
	name    string
	apiKey  string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWeatherAPIHistoryProvider(client *http.Client, baseURL, apiKey, userAgent string) *WeatherAPIHistoryProvider {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIHistoryURL
	}

	return &WeatherAPIHistoryProvider{
		name:    "weatherapi-history",
		apiKey:  apiKey,
		baseURL: baseURL,
		httpCfg: common.HTTPClientConfig{
			Client:    client,
			Backoff:   common.DefaultBackoff,
			UserAgent: userAgent,
		},
		circuit: common.NewCircuitBreaker("weatherapi-history"),
	}
}

func (p *WeatherAPIHistoryProvider) Name() string {
	return p.name
}

func (p *WeatherAPIHistoryProvider) FetchDay(ctx context.Context, loc weather.Location, date calendar.Date, _ string) (weather.DayArchive, error) {
	if p.apiKey == "" {
		return weather.DayArchive{}, fmt.Errorf("weatherapi api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("key", p.apiKey)
		// WeatherAPI uses "q" for location; it accepts "lat,lon".
		values.Set("q", fmt.Sprintf("%.4f,%.4f", loc.Lat, loc.Lon))
		values.Set("dt", date.String())

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := common.DoRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return weather.DayArchive{}, err
	}
	defer resp.Body.Close()

	var payload struct {
		Location struct {
			TzID string `json:"tz_id"`
		} `json:"location"`
		Forecast struct {
			ForecastDay []struct {
				Date string `json:"date"`
				Hour []struct {
					Time       string   `json:"time"`
					TempC      *float64 `json:"temp_c"`
					FeelsLikeC *float64 `json:"feelslike_c"`
					PrecipMm   *float64 `json:"precip_mm"`
					Cloud      *float64 `json:"cloud"`
					WindKph    *float64 `json:"wind_kph"`
					WindDegree *float64 `json:"wind_degree"`
					GustKph    *float64 `json:"gust_kph"`
					IsDay      *int     `json:"is_day"`
					Condition  struct {
						Code int `json:"code"`
					} `json:"condition"`
				} `json:"hour"`
			} `json:"forecastday"`
		} `json:"forecast"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.DayArchive{}, fmt.Errorf("decode weatherapi history: %w", err)
	}

	archive := weather.DayArchive{
		Location: loc,
		Date:     date,
		Timezone: payload.Location.TzID,
	}

	for _, day := range payload.Forecast.ForecastDay {
		if day.Date != date.String() {
			continue
		}
		for _, h := range day.Hour {
			ts, err := time.Parse(weatherAPITimeLayout, h.Time)
			if err != nil {
				return weather.DayArchive{}, fmt.Errorf("weatherapi history: bad time %q: %w", h.Time, err)
			}

			var isDay *bool
			if h.IsDay != nil {
				v := *h.IsDay == 1
				isDay = &v
			}

			archive.Hours = append(archive.Hours, weather.HourlyReading{
				Time:                ts,
				TemperatureC:        h.TempC,
				ApparentTemperature: h.FeelsLikeC,
				PrecipitationMm:     h.PrecipMm,
				CloudCoverPct:       h.Cloud,
				WindSpeedKmh:        h.WindKph,
				WindDirectionDeg:    h.WindDegree,
				WindGustsKmh:        h.GustKph,
				IsDay:               isDay,
				WeatherCode:         wmoFromWeatherAPI(h.Condition.Code),
			})
		}
	}

	return archive, nil
}

// weatherAPIToWMO translates WeatherAPI condition codes to the WMO codes used
// by the archive model.
var weatherAPIToWMO = map[int]int{
	1000: 0, 1003: 2, 1006: 3, 1009: 3,
	1030: 45, 1135: 45, 1147: 48,
	1150: 51, 1153: 51, 1072: 56, 1168: 56, 1171: 57,
	1063: 61, 1180: 61, 1183: 61, 1186: 63, 1189: 63, 1192: 65, 1195: 65,
	1069: 66, 1198: 66, 1204: 66, 1201: 67, 1207: 67,
	1066: 71, 1210: 71, 1213: 71, 1216: 73, 1219: 73, 1114: 75, 1117: 75, 1222: 75, 1225: 75,
	1237: 77, 1261: 77, 1264: 77,
	1240: 80, 1243: 81, 1246: 82,
	1249: 85, 1255: 85, 1252: 86, 1258: 86,
	1087: 95, 1273: 95, 1276: 95, 1279: 95, 1282: 99,
}

func wmoFromWeatherAPI(code int) *int {
	wmo, ok := weatherAPIToWMO[code]
	if !ok {
		return nil
	}
	return &wmo
}

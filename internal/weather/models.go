package weather

import (
	"fmt"
	"time"

	"github.com/i474232898/historical-day/internal/calendar"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown      Condition = "unknown"
	ConditionClear        Condition = "clear"
	ConditionPartlyCloudy Condition = "partly-cloudy"
	ConditionCloudy       Condition = "cloudy"
	ConditionFog          Condition = "fog"
	ConditionDrizzle      Condition = "drizzle"
	ConditionRain         Condition = "rain"
	ConditionSnow         Condition = "snow"
	ConditionStorm        Condition = "storm"
)

// Location is a named point for which archive weather is requested.
type Location struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return fmt.Sprintf("%.4f:%.4f", l.Lat, l.Lon)
}

// DefaultLocations are offered when no presets are configured.
var DefaultLocations = []Location{
	{Name: "London", Lat: 51.5074, Lon: -0.1278},
	{Name: "New York", Lat: 40.7128, Lon: -74.0060},
	{Name: "Tokyo", Lat: 35.6762, Lon: 139.6503},
	{Name: "Sydney", Lat: -33.8688, Lon: 151.2093},
}

// HourlyReading is one hour of archive data. Nil fields are gaps in the archive.
type HourlyReading struct {
	Time                time.Time `json:"time"` // local wall time of the requested timezone
	TemperatureC        *float64  `json:"temperatureC"`
	ApparentTemperature *float64  `json:"apparentTemperatureC"`
	PrecipitationMm     *float64  `json:"precipitationMm"`
	CloudCoverPct       *float64  `json:"cloudCoverPercent"`
	WindSpeedKmh        *float64  `json:"windSpeedKmh"`
	WindDirectionDeg    *float64  `json:"windDirectionDeg"`
	WindGustsKmh        *float64  `json:"windGustsKmh"`
	IsDay               *bool     `json:"isDay"`
	WeatherCode         *int      `json:"weatherCode"`
}

// DayArchive is all hourly readings of one date at one location.
type DayArchive struct {
	Location Location        `json:"location"`
	Date     calendar.Date   `json:"date"`
	Timezone string          `json:"timezone"`
	Hours    []HourlyReading `json:"hours"`
}

// Observation is the display-ready view of a single hour.
type Observation struct {
	Location Location      `json:"location"`
	Date     calendar.Date `json:"date"`
	Hour     int           `json:"hour"`
	Timezone string        `json:"timezone"`

	TemperatureC    *int      `json:"temperatureC"`
	FeelsLikeC      *int      `json:"feelsLikeC"`
	PrecipitationMm *int      `json:"precipitationMm"`
	CloudCoverPct   *int      `json:"cloudCoverPercent"`
	Wind            *Wind     `json:"wind,omitempty"`
	DayPeriod       string    `json:"dayPeriod"`
	Condition       Condition `json:"condition"`
	Label           string    `json:"label"`

	Raw HourlyReading `json:"raw"`
}

// Wind groups the derived wind values.
type Wind struct {
	SpeedKmh  int    `json:"speedKmh"`
	SpeedMph  int    `json:"speedMph"`
	GustsKmh  *int   `json:"gustsKmh,omitempty"`
	GustsMph  *int   `json:"gustsMph,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// DaySummary aggregates a whole DayArchive.
type DaySummary struct {
	MinTemperatureC  *float64  `json:"minTemperatureC"`
	MaxTemperatureC  *float64  `json:"maxTemperatureC"`
	MeanTemperatureC *float64  `json:"meanTemperatureC"`
	PrecipitationMm  float64   `json:"totalPrecipitationMm"`
	MaxGustsKmh      *float64  `json:"maxGustsKmh"`
	Condition        Condition `json:"condition"`
	Hours            int       `json:"hours"`
}

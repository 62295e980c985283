package weather

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/historical-day/internal/calendar"
)

func fp(v float64) *float64 { return &v }
func ip(v int) *int         { return &v }
func bp(v bool) *bool       { return &v }

func TestCompassDirection(t *testing.T) {
	tests := []struct {
		deg  float64
		want string
	}{
		{0, "North"},
		{11.2, "North"},
		{11.3, "North-Northeast"},
		{45, "Northeast"},
		{90, "East"},
		{180, "South"},
		{200, "South-Southwest"},
		{270, "West"},
		{337.5, "North-Northwest"},
		{349, "North"},
		{360, "North"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CompassDirection(tt.deg), "degrees %v", tt.deg)
	}
}

func TestKmhToMph(t *testing.T) {
	assert.InDelta(t, 62.1371, KmhToMph(100), 1e-9)
}

func TestConditionFromCode(t *testing.T) {
	assert.Equal(t, ConditionClear, ConditionFromCode(0))
	assert.Equal(t, ConditionPartlyCloudy, ConditionFromCode(2))
	assert.Equal(t, ConditionCloudy, ConditionFromCode(3))
	assert.Equal(t, ConditionFog, ConditionFromCode(48))
	assert.Equal(t, ConditionDrizzle, ConditionFromCode(53))
	assert.Equal(t, ConditionRain, ConditionFromCode(65))
	assert.Equal(t, ConditionSnow, ConditionFromCode(75))
	assert.Equal(t, ConditionStorm, ConditionFromCode(99))
	assert.Equal(t, ConditionUnknown, ConditionFromCode(42))
}

func TestNewObservation(t *testing.T) {
	archive := DayArchive{
		Location: DefaultLocations[0],
		Date:     calendar.Date{Year: 2000, Month: 1, Day: 1},
		Timezone: "Europe/London",
	}
	r := HourlyReading{
		Time:                time.Date(2000, 1, 1, 9, 0, 0, 0, time.UTC),
		TemperatureC:        fp(4.6),
		ApparentTemperature: fp(1.2),
		PrecipitationMm:     fp(0.4),
		CloudCoverPct:       fp(87),
		WindSpeedKmh:        fp(20),
		WindDirectionDeg:    fp(225),
		WindGustsKmh:        fp(41),
		IsDay:               bp(true),
		WeatherCode:         ip(61),
	}

	obs := NewObservation(archive, r)

	assert.Equal(t, 9, obs.Hour)
	assert.Equal(t, 5, *obs.TemperatureC)
	assert.Equal(t, 1, *obs.FeelsLikeC)
	assert.Equal(t, 0, *obs.PrecipitationMm)
	assert.Equal(t, 87, *obs.CloudCoverPct)
	require.NotNil(t, obs.Wind)
	assert.Equal(t, 20, obs.Wind.SpeedKmh)
	assert.Equal(t, 12, obs.Wind.SpeedMph)
	assert.Equal(t, 41, *obs.Wind.GustsKmh)
	assert.Equal(t, 25, *obs.Wind.GustsMph)
	assert.Equal(t, "Southwest", obs.Wind.Direction)
	assert.Equal(t, "Daytime", obs.DayPeriod)
	assert.Equal(t, "09:00 - Daytime", obs.Label)
	assert.Equal(t, ConditionRain, obs.Condition)
}

// TestNewObservation_Gaps verifies that null archive values stay nil instead of
// turning into zeros.
func TestNewObservation_Gaps(t *testing.T) {
	r := HourlyReading{
		Time:  time.Date(2000, 1, 1, 23, 0, 0, 0, time.UTC),
		IsDay: bp(false),
	}

	obs := NewObservation(DayArchive{}, r)

	assert.Nil(t, obs.TemperatureC)
	assert.Nil(t, obs.Wind)
	assert.Equal(t, ConditionUnknown, obs.Condition)
	assert.Equal(t, "23:00 - Nighttime", obs.Label)
}

// TestSummarizeDay verifies the day aggregates and that condition ties go to
// the more severe condition.
func TestSummarizeDay(t *testing.T) {
	archive := DayArchive{Hours: []HourlyReading{
		{TemperatureC: fp(2), PrecipitationMm: fp(0.5), WindGustsKmh: fp(30), WeatherCode: ip(61)},
		{TemperatureC: fp(6), PrecipitationMm: fp(1.5), WindGustsKmh: fp(55), WeatherCode: ip(3)},
		{TemperatureC: nil, PrecipitationMm: nil, WeatherCode: ip(63)},
		{TemperatureC: fp(4), WeatherCode: ip(3)},
	}}

	s := SummarizeDay(archive)

	require.NotNil(t, s.MinTemperatureC)
	assert.Equal(t, 2.0, *s.MinTemperatureC)
	assert.Equal(t, 6.0, *s.MaxTemperatureC)
	assert.Equal(t, 4.0, *s.MeanTemperatureC)
	assert.Equal(t, 2.0, s.PrecipitationMm)
	assert.Equal(t, 55.0, *s.MaxGustsKmh)
	// rain and cloudy both appear twice; rain is more severe
	assert.Equal(t, ConditionRain, s.Condition)
	assert.Equal(t, 4, s.Hours)
}

func TestSummarizeDay_Empty(t *testing.T) {
	s := SummarizeDay(DayArchive{})
	assert.Nil(t, s.MeanTemperatureC)
	assert.Nil(t, s.MaxGustsKmh)
	assert.Equal(t, ConditionUnknown, s.Condition)
}

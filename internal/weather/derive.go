package weather

import (
	"fmt"
	"math"

	"github.com/i474232898/historical-day/internal/common"
)

const kmhToMph = 0.621371

var compassPoints = [16]string{
	"North", "North-Northeast", "Northeast", "East-Northeast",
	"East", "East-Southeast", "Southeast", "South-Southeast",
	"South", "South-Southwest", "Southwest", "West-Southwest",
	"West", "West-Northwest", "Northwest", "North-Northwest",
}

// CompassDirection names the 16-point compass sector of a bearing in degrees.
func CompassDirection(degrees float64) string {
	idx := int(math.Round(degrees / 22.5))
	return compassPoints[common.FloorMod(idx, 16)]
}

// KmhToMph converts km/h to mph.
func KmhToMph(kmh float64) float64 {
	return kmh * kmhToMph
}

// ConditionFromCode maps a WMO weather interpretation code.
func ConditionFromCode(code int) Condition {
	switch code {
	case 0:
		return ConditionClear
	case 1, 2:
		return ConditionPartlyCloudy
	case 3:
		return ConditionCloudy
	case 45, 48:
		return ConditionFog
	case 51, 53, 55, 56, 57:
		return ConditionDrizzle
	case 61, 63, 65, 66, 67, 80, 81, 82:
		return ConditionRain
	case 71, 73, 75, 77, 85, 86:
		return ConditionSnow
	case 95, 96, 99:
		return ConditionStorm
	default:
		return ConditionUnknown
	}
}

// severity orders conditions for tie-breaking; higher wins.
func severity(c Condition) int {
	switch c {
	case ConditionStorm:
		return 8
	case ConditionSnow:
		return 7
	case ConditionRain:
		return 6
	case ConditionDrizzle:
		return 5
	case ConditionFog:
		return 4
	case ConditionCloudy:
		return 3
	case ConditionPartlyCloudy:
		return 2
	case ConditionClear:
		return 1
	default:
		return 0
	}
}

// NewObservation derives the display values of r.
func NewObservation(archive DayArchive, r HourlyReading) Observation {
	obs := Observation{
		Location:        archive.Location,
		Date:            archive.Date,
		Hour:            r.Time.Hour(),
		Timezone:        archive.Timezone,
		TemperatureC:    roundPtr(r.TemperatureC),
		FeelsLikeC:      roundPtr(r.ApparentTemperature),
		PrecipitationMm: roundPtr(r.PrecipitationMm),
		CloudCoverPct:   roundPtr(r.CloudCoverPct),
		Condition:       ConditionUnknown,
		Raw:             r,
	}

	if r.WindSpeedKmh != nil {
		w := &Wind{
			SpeedKmh: round(*r.WindSpeedKmh),
			SpeedMph: round(KmhToMph(*r.WindSpeedKmh)),
		}
		if r.WindGustsKmh != nil {
			gk, gm := round(*r.WindGustsKmh), round(KmhToMph(*r.WindGustsKmh))
			w.GustsKmh, w.GustsMph = &gk, &gm
		}
		if r.WindDirectionDeg != nil {
			w.Direction = CompassDirection(*r.WindDirectionDeg)
		}
		obs.Wind = w
	}

	if r.WeatherCode != nil {
		obs.Condition = ConditionFromCode(*r.WeatherCode)
	}

	switch {
	case r.IsDay == nil:
		obs.DayPeriod = "Unknown"
	case *r.IsDay:
		obs.DayPeriod = "Daytime"
	default:
		obs.DayPeriod = "Nighttime"
	}
	obs.Label = fmt.Sprintf("%02d:00 - %s", obs.Hour, obs.DayPeriod)

	return obs
}

func round(v float64) int {
	return int(math.Round(v))
}

func roundPtr(v *float64) *int {
	if v == nil {
		return nil
	}
	r := round(*v)
	return &r
}

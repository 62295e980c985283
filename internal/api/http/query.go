package httpapi

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	// Timezone names are checked against the embedded database.
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/historical-day/internal/calendar"
	"github.com/i474232898/historical-day/internal/onthisday"
	"github.com/i474232898/historical-day/internal/weather"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// "auto" lets the archive resolve the zone from the coordinates.
	_ = v.RegisterValidation("tzname", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "auto" {
			return true
		}
		_, err := time.LoadLocation(s)
		return err == nil && s != "" && s != "Local"
	})
	return v
}

// dateQuery accepts either ?date=YYYY-MM-DD or ?year=&month=&day=.
type dateQuery struct {
	Year  int `validate:"min=-9999,max=9999"`
	Month int `validate:"min=1,max=12"`
	Day   int `validate:"min=1,max=31"`
}

func (q *dateQuery) bind(c *fiber.Ctx) error {
	if s := c.Query("date"); s != "" {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return err
		}
		q.Year, q.Month, q.Day = d.Year, d.Month, d.Day
		return nil
	}

	if c.Query("year") == "" && c.Query("month") == "" && c.Query("day") == "" {
		return errors.New("either date or year, month and day query parameters are required")
	}

	var err error
	if q.Year, err = queryInt(c, "year"); err != nil {
		return err
	}
	if q.Month, err = queryInt(c, "month"); err != nil {
		return err
	}
	if q.Day, err = queryInt(c, "day"); err != nil {
		return err
	}
	return nil
}

func (q dateQuery) date() (calendar.Date, error) {
	return calendar.NewDate(q.Year, q.Month, q.Day)
}

// eventsQuery holds query parameters for the events endpoint.
type eventsQuery struct {
	Month int    `validate:"min=1,max=12"`
	Day   int    `validate:"min=1,max=31"`
	Kind  string `validate:"oneof=events births deaths selected"`
}

func (q *eventsQuery) bind(c *fiber.Ctx) error {
	if s := c.Query("date"); s != "" {
		d, err := calendar.ParseDate(s)
		if err != nil {
			return err
		}
		q.Month, q.Day = d.Month, d.Day
	} else {
		var err error
		if q.Month, err = queryInt(c, "month"); err != nil {
			return err
		}
		if q.Day, err = queryInt(c, "day"); err != nil {
			return err
		}
	}

	kind, err := onthisday.ParseKind(c.Query("kind"))
	if err != nil {
		return err
	}
	q.Kind = string(kind)
	return nil
}

// weatherQuery holds query parameters shared by the weather and day endpoints.
type weatherQuery struct {
	Date     calendar.Date
	Location string
	Lat      *float64 `validate:"omitempty,latitude"`
	Lon      *float64 `validate:"omitempty,longitude"`
	Hour     int      `validate:"min=0,max=23"`
	Timezone string   `validate:"required,tzname"`
}

func (q *weatherQuery) bind(c *fiber.Ctx, defaultHour int, defaultTZ string) error {
	var dq dateQuery
	if err := dq.bind(c); err != nil {
		return err
	}
	if err := validate.Struct(dq); err != nil {
		return err
	}
	d, err := dq.date()
	if err != nil {
		return err
	}
	q.Date = d

	q.Location = strings.TrimSpace(c.Query("location"))

	lat, lon := c.Query("lat"), c.Query("lon")
	if (lat == "") != (lon == "") {
		return errors.New("lat and lon must be given together")
	}
	if lat != "" {
		la, err := strconv.ParseFloat(lat, 64)
		if err != nil {
			return fmt.Errorf("invalid lat: %q", lat)
		}
		lo, err := strconv.ParseFloat(lon, 64)
		if err != nil {
			return fmt.Errorf("invalid lon: %q", lon)
		}
		q.Lat, q.Lon = &la, &lo
	}

	q.Hour = defaultHour
	if c.Query("hour") != "" {
		if q.Hour, err = queryInt(c, "hour"); err != nil {
			return err
		}
	}

	q.Timezone = c.Query("timezone", defaultTZ)
	return nil
}

func (h *handlers) bindWeatherQuery(c *fiber.Ctx) (weatherQuery, error) {
	var q weatherQuery
	if err := q.bind(c, h.deps.DefaultHour, h.deps.DefaultTimezone); err != nil {
		if errors.Is(err, calendar.ErrInvalidDate) {
			return q, toFiberError(err)
		}
		return q, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return q, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.deps.YearPolicy.Check(q.Date.Year); err != nil {
		return q, toFiberError(err)
	}
	return q, nil
}

// resolveWeatherQuery turns the request into a service query. Coordinates win
// over a location name; with neither the first preset is used.
func (h *handlers) resolveWeatherQuery(ctx context.Context, q weatherQuery) (weather.Query, error) {
	wq := weather.Query{
		Date:     q.Date,
		Hour:     q.Hour,
		Timezone: q.Timezone,
	}

	switch {
	case q.Lat != nil:
		name := q.Location
		if name == "" {
			name = fmt.Sprintf("%.4f,%.4f", *q.Lat, *q.Lon)
		}
		wq.Location = weather.Location{Name: name, Lat: *q.Lat, Lon: *q.Lon}
	case q.Location != "":
		loc, err := h.deps.Weather.ResolveLocation(ctx, q.Location)
		if err != nil {
			return weather.Query{}, err
		}
		wq.Location = loc
	default:
		locs := h.deps.Weather.Locations()
		if len(locs) == 0 {
			return weather.Query{}, weather.ErrUnknownLocation
		}
		wq.Location = locs[0]
	}
	return wq, nil
}

func queryInt(c *fiber.Ctx, key string) (int, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return 0, fmt.Errorf("%s query parameter is required", key)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, v)
	}
	return n, nil
}

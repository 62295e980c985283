package httpapi

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/historical-day/internal/calendar"
	"github.com/i474232898/historical-day/internal/common"
	"github.com/i474232898/historical-day/internal/onthisday"
	"github.com/i474232898/historical-day/internal/weather"
)

const upstreamTimeout = 20 * time.Second

// CacheAdmin is the view of a cache exposed on the admin routes.
type CacheAdmin interface {
	Len() int
	Clear() int
}

// Dependencies is everything the routes need.
type Dependencies struct {
	Weather *weather.Service
	Events  *onthisday.Service

	// AdminAuth guards /api/v1/admin. Nil leaves the admin group unregistered.
	AdminAuth fiber.Handler
	Caches    map[string]CacheAdmin

	YearPolicy      calendar.YearPolicy
	DefaultHour     int
	DefaultTimezone string
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	h := &handlers{deps: deps}
	v1 := app.Group("/api/v1")

	v1.Get("/weekday", h.weekday)
	v1.Get("/locations", h.locations)
	v1.Get("/weather/historical", h.historicalWeather)
	v1.Get("/events", h.events)
	v1.Get("/day", h.day)

	if deps.AdminAuth != nil {
		admin := v1.Group("/admin", deps.AdminAuth)
		admin.Get("/cache", h.cacheStats)
		admin.Delete("/cache", h.clearCache)
	}
}

type handlers struct {
	deps Dependencies
}

func (h *handlers) weekday(c *fiber.Ctx) error {
	var q dateQuery
	if err := q.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	d, err := q.date()
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(describeDate(d))
}

func (h *handlers) locations(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"locations": h.deps.Weather.Locations(),
	})
}

func (h *handlers) historicalWeather(c *fiber.Ctx) error {
	q, err := h.bindWeatherQuery(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), upstreamTimeout)
	defer cancel()

	wq, err := h.resolveWeatherQuery(ctx, q)
	if err != nil {
		return toFiberError(err)
	}

	report, err := h.deps.Weather.GetReport(ctx, wq)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(report)
}

func (h *handlers) events(c *fiber.Ctx) error {
	var q eventsQuery
	if err := q.bind(c); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), upstreamTimeout)
	defer cancel()

	res, err := h.deps.Events.GetEvents(ctx, onthisday.Kind(q.Kind), q.Month, q.Day)
	if err != nil {
		return toFiberError(err)
	}
	return c.JSON(res)
}

// panel is one independently fetched section of the dashboard.
type panel struct {
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
	Status int         `json:"status,omitempty"`
}

func newPanel(data interface{}, err error) panel {
	if err == nil {
		return panel{Data: data}
	}
	status := fiber.StatusBadGateway
	var fe *fiber.Error
	if errors.As(toFiberError(err), &fe) {
		status = fe.Code
	}
	return panel{Error: err.Error(), Status: status}
}

// day serves the whole page for one date: the weekday line, the weather at the
// chosen hour and the events of that month/day. Panels fail independently.
func (h *handlers) day(c *fiber.Ctx) error {
	q, err := h.bindWeatherQuery(c)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), upstreamTimeout)
	defer cancel()

	var (
		wg           sync.WaitGroup
		weatherPanel panel
		eventsPanel  panel
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		wq, err := h.resolveWeatherQuery(ctx, q)
		if err != nil {
			weatherPanel = newPanel(nil, err)
			return
		}
		report, err := h.deps.Weather.GetReport(ctx, wq)
		weatherPanel = newPanel(report, err)
	}()
	go func() {
		defer wg.Done()
		res, err := h.deps.Events.GetEvents(ctx, onthisday.KindEvents, q.Date.Month, q.Date.Day)
		eventsPanel = newPanel(res, err)
	}()
	wg.Wait()

	resp := describeDate(q.Date)
	return c.JSON(fiber.Map{
		"date":     resp.Date,
		"long":     resp.Long,
		"weekday":  resp.Weekday,
		"leapYear": resp.LeapYear,
		"weather":  weatherPanel,
		"events":   eventsPanel,
	})
}

func (h *handlers) cacheStats(c *fiber.Ctx) error {
	sizes := make(map[string]int, len(h.deps.Caches))
	for name, cache := range h.deps.Caches {
		sizes[name] = cache.Len()
	}
	return c.JSON(fiber.Map{"entries": sizes})
}

func (h *handlers) clearCache(c *fiber.Ctx) error {
	cleared := make(map[string]int, len(h.deps.Caches))
	for name, cache := range h.deps.Caches {
		cleared[name] = cache.Clear()
	}
	return c.JSON(fiber.Map{"cleared": cleared})
}

// dateResponse is the weekday line shown next to a date.
type dateResponse struct {
	Date     string           `json:"date"`
	Long     string           `json:"long"`
	Weekday  calendar.Weekday `json:"weekday"`
	LeapYear bool             `json:"leapYear"`
}

func describeDate(d calendar.Date) dateResponse {
	return dateResponse{
		Date:     d.String(),
		Long:     d.Long(),
		Weekday:  calendar.WeekdayOf(d),
		LeapYear: calendar.IsLeapYear(d.Year),
	}
}

// toFiberError maps domain and upstream errors to HTTP errors.
func toFiberError(err error) error {
	var se *common.StatusError
	switch {
	case errors.Is(err, calendar.ErrInvalidDate),
		errors.Is(err, calendar.ErrYearOutOfRange),
		errors.Is(err, onthisday.ErrInvalidDay),
		errors.Is(err, onthisday.ErrUnknownKind):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrNoData),
		errors.Is(err, weather.ErrHourNotFound),
		errors.Is(err, weather.ErrUnknownLocation):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, weather.ErrNoProvider),
		errors.Is(err, onthisday.ErrNoProvider),
		errors.Is(err, common.ErrCircuitOpen):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return fiber.NewError(fiber.StatusGatewayTimeout, "upstream request timed out")
	case errors.As(err, &se):
		if se.Code == http.StatusNotFound || se.Code == http.StatusBadRequest {
			return fiber.NewError(fiber.StatusNotFound, "no upstream data for request: "+se.Error())
		}
		return fiber.NewError(fiber.StatusBadGateway, "upstream request failed")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "upstream request failed")
	}
}

package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/i474232898/historical-day/internal/calendar"
)

var (
	ErrNoData          = errors.New("no archive data for requested date")
	ErrHourNotFound    = errors.New("hour not found in weather data")
	ErrUnknownLocation = errors.New("unknown location")
	ErrNoProvider      = errors.New("no weather archive provider configured")
)

// Query identifies one hour of archive weather.
type Query struct {
	Location Location
	Date     calendar.Date
	Hour     int
	Timezone string
}

// Report is the weather at the requested hour together with its day summary.
type Report struct {
	Observation Observation `json:"observation"`
	Summary     DaySummary  `json:"summary"`
}

// Service fetches archive weather through a provider and caches whole days.
type Service struct {
	cache     Cache
	provider  ArchiveProvider
	geocoder  Geocoder
	locations []Location
}

// NewService creates a new Service. geocoder may be nil.
func NewService(cache Cache, provider ArchiveProvider, geocoder Geocoder, locations []Location) *Service {
	if len(locations) == 0 {
		locations = DefaultLocations
	}
	return &Service{
		cache:     cache,
		provider:  provider,
		geocoder:  geocoder,
		locations: locations,
	}
}

// Locations returns the preset locations.
func (s *Service) Locations() []Location {
	out := make([]Location, len(s.locations))
	copy(out, s.locations)
	return out
}

// ResolveLocation returns the preset named name (case-insensitive) or, when a
// geocoder is configured, the geocoded place.
func (s *Service) ResolveLocation(ctx context.Context, name string) (Location, error) {
	name = strings.TrimSpace(name)
	for _, l := range s.locations {
		if strings.EqualFold(l.Name, name) {
			return l, nil
		}
	}

	if s.geocoder == nil || name == "" {
		return Location{}, fmt.Errorf("%w: %q", ErrUnknownLocation, name)
	}

	loc, err := s.geocoder.Geocode(ctx, name)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %q: %v", ErrUnknownLocation, name, err)
	}
	return loc, nil
}

// GetDay returns all hourly readings of q.Date, from cache when possible.
func (s *Service) GetDay(ctx context.Context, q Query) (DayArchive, error) {
	if s.provider == nil {
		return DayArchive{}, ErrNoProvider
	}

	key := cacheKey(q)
	if archive, err := s.cache.Get(key); err == nil {
		log.Printf("DEBUG: archive cache hit for %s", key)
		return archive, nil
	}

	archive, err := s.provider.FetchDay(ctx, q.Location, q.Date, q.Timezone)
	if err != nil {
		log.Printf("provider %s fetch failed for %s: %v", s.provider.Name(), key, err)
		return DayArchive{}, err
	}
	if len(archive.Hours) == 0 {
		return DayArchive{}, fmt.Errorf("%w: %s", ErrNoData, q.Date)
	}

	s.cache.Save(key, archive)
	return archive, nil
}

// GetReport returns the observation at q.Hour and the summary of the whole day.
func (s *Service) GetReport(ctx context.Context, q Query) (Report, error) {
	archive, err := s.GetDay(ctx, q)
	if err != nil {
		return Report{}, err
	}

	for _, r := range archive.Hours {
		if r.Time.Hour() == q.Hour {
			return Report{
				Observation: NewObservation(archive, r),
				Summary:     SummarizeDay(archive),
			}, nil
		}
	}
	return Report{}, fmt.Errorf("%w: %02d:00 on %s", ErrHourNotFound, q.Hour, q.Date)
}

func cacheKey(q Query) string {
	tz := q.Timezone
	if tz == "" {
		tz = "auto"
	}
	return q.Location.Key() + "|" + q.Date.String() + "|" + tz
}

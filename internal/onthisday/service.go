package onthisday

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/i474232898/historical-day/internal/calendar"
)

var (
	ErrUnknownKind = errors.New("unknown event kind")
	ErrInvalidDay  = errors.New("invalid month/day")
	ErrNoProvider  = errors.New("no events provider configured")
)

// leapReference is any leap year; it makes February 29 a valid month/day.
const leapReference = 2000

// Service fetches on-this-day lists through a provider and caches them.
type Service struct {
	cache    Cache
	provider Provider
	language string
}

// NewService creates a new Service. language defaults to "en".
func NewService(cache Cache, provider Provider, language string) *Service {
	if language == "" {
		language = "en"
	}
	return &Service{
		cache:    cache,
		provider: provider,
		language: language,
	}
}

// Language returns the feed language in use.
func (s *Service) Language() string {
	return s.language
}

// GetEvents returns the kind list for month/day grouped by century.
func (s *Service) GetEvents(ctx context.Context, kind Kind, month, day int) (DayEvents, error) {
	if s.provider == nil {
		return DayEvents{}, ErrNoProvider
	}
	if _, err := ParseKind(string(kind)); err != nil {
		return DayEvents{}, err
	}
	if !(calendar.Date{Year: leapReference, Month: month, Day: day}).Valid() {
		return DayEvents{}, fmt.Errorf("%w: %d/%d", ErrInvalidDay, month, day)
	}

	key := fmt.Sprintf("%s|%s|%02d-%02d", s.language, kind, month, day)
	if cached, err := s.cache.Get(key); err == nil {
		log.Printf("DEBUG: events cache hit for %s", key)
		return cached, nil
	}

	events, err := s.provider.FetchEvents(ctx, s.language, kind, month, day)
	if err != nil {
		log.Printf("provider %s fetch failed for %s: %v", s.provider.Name(), key, err)
		return DayEvents{}, err
	}

	result := DayEvents{
		Kind:     kind,
		Month:    month,
		Day:      day,
		Language: s.language,
		Count:    len(events),
		Groups:   GroupByCentury(events),
	}
	s.cache.Save(key, result)
	return result, nil
}

// Warm fetches every kind for date so later requests hit the cache.
func (s *Service) Warm(ctx context.Context, date calendar.Date) error {
	var errs []error
	for _, k := range Kinds {
		if _, err := s.GetEvents(ctx, k, date.Month, date.Day); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/i474232898/historical-day/internal/calendar"
)

// FallbackProvider asks each provider in turn and returns the first day with data.
type FallbackProvider []ArchiveProvider

func (f FallbackProvider) Name() string {
	names := make([]string, len(f))
	for i, p := range f {
		names[i] = p.Name()
	}
	return strings.Join(names, "+")
}

func (f FallbackProvider) FetchDay(ctx context.Context, loc Location, date calendar.Date, timezone string) (DayArchive, error) {
	if len(f) == 0 {
		return DayArchive{}, ErrNoProvider
	}

	var errs []error
	for _, p := range f {
		archive, err := p.FetchDay(ctx, loc, date, timezone)
		if err == nil && len(archive.Hours) > 0 {
			return archive, nil
		}
		if err == nil {
			err = fmt.Errorf("%w: %s", ErrNoData, date)
		}

		// Log and continue; a later provider may still have the day.
		log.Printf("provider %s fetch failed for %s on %s: %v", p.Name(), loc.Key(), date, err)
		errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))

		if ctx.Err() != nil {
			break
		}
	}
	return DayArchive{}, errors.Join(errs...)
}

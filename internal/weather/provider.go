package weather

import (
	"context"

	"github.com/i474232898/historical-day/internal/calendar"
)

// ArchiveProvider abstracts a historical weather source (e.g. the Open-Meteo archive).
type ArchiveProvider interface {
	Name() string
	FetchDay(ctx context.Context, loc Location, date calendar.Date, timezone string) (DayArchive, error)
}

// Geocoder resolves a free-text place name to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Location, error)
}

// Cache is the contract the archive cache must satisfy.
type Cache interface {
	Save(key string, archive DayArchive)
	Get(key string) (DayArchive, error)
}

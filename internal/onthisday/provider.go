package onthisday

import "context"

// Provider abstracts an on-this-day feed (e.g. the Wikimedia feed API).
type Provider interface {
	Name() string
	FetchEvents(ctx context.Context, lang string, kind Kind, month, day int) ([]Event, error)
}

// Cache is the contract the events cache must satisfy.
type Cache interface {
	Save(key string, events DayEvents)
	Get(key string) (DayEvents, error)
}

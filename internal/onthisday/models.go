package onthisday

import "fmt"

// Kind selects which on-this-day list is requested.
type Kind string

const (
	KindEvents   Kind = "events"
	KindBirths   Kind = "births"
	KindDeaths   Kind = "deaths"
	KindSelected Kind = "selected"
)

// Kinds lists every supported Kind.
var Kinds = []Kind{KindEvents, KindBirths, KindDeaths, KindSelected}

// ParseKind returns the Kind named s. An empty s means KindEvents.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindEvents, nil
	}
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Page is an encyclopedia article linked from an event.
type Page struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Event is one historical entry. Negative years are BC.
type Event struct {
	Year  int    `json:"year"`
	Text  string `json:"text"`
	Link  string `json:"link,omitempty"` // first page's article, the "read more" target
	Pages []Page `json:"pages,omitempty"`
}

// CenturyGroup holds events whose year falls in [Century, Century+100).
type CenturyGroup struct {
	Century int     `json:"century"`
	Label   string  `json:"label"`
	Events  []Event `json:"events"`
}

// DayEvents is what the service returns for one month/day.
type DayEvents struct {
	Kind     Kind           `json:"kind"`
	Month    int            `json:"month"`
	Day      int            `json:"day"`
	Language string         `json:"language"`
	Count    int            `json:"count"`
	Groups   []CenturyGroup `json:"groups"`
}

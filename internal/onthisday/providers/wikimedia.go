package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/i474232898/historical-day/internal/common"
	"github.com/i474232898/historical-day/internal/onthisday"
	"github.com/sony/gobreaker"
)

// DefaultFeedURL is the Wikimedia feed API root for Wikipedia projects.
const DefaultFeedURL = "https://api.wikimedia.org/feed/v1/wikipedia"

// WikimediaProvider implements onthisday.Provider for the Wikimedia on-this-day feed.
type WikimediaProvider struct {
	name    string
	baseURL string
	httpCfg common.HTTPClientConfig
	circuit *gobreaker.CircuitBreaker
}

func NewWikimediaProvider(client *http.Client, baseURL, userAgent string) *WikimediaProvider {
	if baseURL == "" {
		baseURL = DefaultFeedURL
	}

	return &WikimediaProvider{
		name:    "wikimedia",
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCfg: common.HTTPClientConfig{
			Client:    client,
			Backoff:   common.DefaultBackoff,
			UserAgent: userAgent,
		},
		circuit: common.NewCircuitBreaker("wikimedia"),
	}
}

func (p *WikimediaProvider) Name() string {
	return p.name
}

type wikiPage struct {
	Title           string `json:"title"`
	NormalizedTitle string `json:"normalizedtitle"`
	ContentURLs     struct {
		Desktop struct {
			Page string `json:"page"`
		} `json:"desktop"`
	} `json:"content_urls"`
}

type wikiEvent struct {
	Text  string     `json:"text"`
	Year  int        `json:"year"`
	Pages []wikiPage `json:"pages"`
}

func (p *WikimediaProvider) FetchEvents(ctx context.Context, lang string, kind onthisday.Kind, month, day int) ([]onthisday.Event, error) {
	buildRequest := func() (*http.Request, error) {
		u := fmt.Sprintf("%s/%s/onthisday/%s/%02d/%02d",
			p.baseURL, url.PathEscape(lang), url.PathEscape(string(kind)), month, day)
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := common.DoRequestWithResilience(ctx, p.httpCfg, p.circuit, buildRequest)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// The feed keys each list by its kind; "all" would return every list at once.
	var payload map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode wikimedia feed: %w", err)
	}

	raw, ok := payload[string(kind)]
	if !ok {
		return []onthisday.Event{}, nil
	}

	var items []wikiEvent
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode wikimedia %s: %w", kind, err)
	}

	events := make([]onthisday.Event, 0, len(items))
	for _, it := range items {
		ev := onthisday.Event{
			Year: it.Year,
			Text: it.Text,
		}
		for _, pg := range it.Pages {
			title := pg.NormalizedTitle
			if title == "" {
				title = pg.Title
			}
			ev.Pages = append(ev.Pages, onthisday.Page{
				Title: title,
				URL:   pg.ContentURLs.Desktop.Page,
			})
		}
		if len(ev.Pages) > 0 {
			ev.Link = ev.Pages[0].URL
		}
		events = append(events, ev)
	}

	return events, nil
}

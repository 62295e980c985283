package providers

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/historical-day/internal/weather"
)

var errEmptyPlace = errors.New("place name is empty")

// geocodeFunc matches geocoder.Geocoding so tests can stub the network call.
type geocodeFunc func(geocoder.Address) (geocoder.Location, error)

// GoogleGeocoder resolves "City" or "City, Country" through the Google Geocoding API.
type GoogleGeocoder struct {
	geocode geocodeFunc
}

// the geocoder package keeps its key in a package variable.
var apiKeyOnce sync.Once

func NewGoogleGeocoder(apiKey string) *GoogleGeocoder {
	apiKeyOnce.Do(func() {
		geocoder.ApiKey = apiKey
	})
	return &GoogleGeocoder{geocode: geocoder.Geocoding}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, place string) (weather.Location, error) {
	addr, name := parsePlace(place)
	if name == "" {
		return weather.Location{}, errEmptyPlace
	}

	type result struct {
		loc geocoder.Location
		err error
	}
	done := make(chan result, 1)
	go func() {
		loc, err := g.geocode(addr)
		done <- result{loc, err}
	}()

	select {
	case <-ctx.Done():
		return weather.Location{}, ctx.Err()
	case r := <-done:
		if r.err != nil {
			return weather.Location{}, r.err
		}
		return weather.Location{
			Name: name,
			Lat:  r.loc.Latitude,
			Lon:  r.loc.Longitude,
		}, nil
	}
}

func parsePlace(place string) (geocoder.Address, string) {
	parts := strings.SplitN(place, ",", 2)
	city := strings.TrimSpace(parts[0])
	addr := geocoder.Address{City: city}
	if len(parts) == 2 {
		addr.Country = strings.TrimSpace(parts[1])
	}
	return addr, city
}

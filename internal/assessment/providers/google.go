package providers

import (
	"context"
	"strings"

	"github.com/kelvins/geocoder"

	"github.com/ecoscope/home-assessment/internal/assessment"
)

// GoogleGeocodeProvider implements assessment.GeocodeProvider against the
// Google Maps Geocoding API via the kelvins/geocoder wrapper. Used as a
// fallback when OpenCage is unconfigured or failing.
type GoogleGeocodeProvider struct {
	name string
}

// NewGoogleGeocodeProvider configures the wrapper's API key. The underlying
// library keys off a package-level variable, so only one Google key per
// process is supported.
func NewGoogleGeocodeProvider(apiKey string) *GoogleGeocodeProvider {
	geocoder.ApiKey = apiKey
	return &GoogleGeocodeProvider{name: "Google Geocoding API"}
}

func (p *GoogleGeocodeProvider) Name() string {
	return p.name
}

// Geocode resolves a free-text location. The wrapper has no context support;
// the deadline is honored on a best-effort basis by checking before the call.
func (p *GoogleGeocodeProvider) Geocode(ctx context.Context, query string) (float64, float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}

	loc, err := geocoder.Geocoding(geocoder.Address{Street: query})
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "zero_results") {
			return 0, 0, assessment.ErrNoResults
		}
		return 0, 0, err
	}

	return loc.Latitude, loc.Longitude, nil
}

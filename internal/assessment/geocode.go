package assessment

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/ecoscope/home-assessment/internal/common"
)

// Geocoder turns a free-text location into coordinates by trying a chain of
// providers in order. Resolve is a total function: it always returns a
// GeocodeResult and never an error, so downstream assessments can degrade
// instead of failing the whole request.
type Geocoder struct {
	providers []GeocodeProvider
}

// NewGeocoder builds a Geocoder over the given provider chain.
func NewGeocoder(providers ...GeocodeProvider) *Geocoder {
	return &Geocoder{providers: providers}
}

// Resolve geocodes the query. On success Source carries the winning
// provider's name; on failure Source is "unresolved" and Notes carries one
// human-readable reason per attempted provider, in order.
func (g *Geocoder) Resolve(ctx context.Context, query string) GeocodeResult {
	if len(g.providers) == 0 {
		return GeocodeResult{
			Source: string(SourceUnresolved),
			Notes:  []string{"No geocoding provider is configured."},
		}
	}

	var notes []string
	for _, p := range g.providers {
		lat, lon, err := p.Geocode(ctx, query)
		if err != nil {
			note := geocodeFailureNote(p.Name(), query, err)
			notes = append(notes, note)
			log.Printf("WARN [%s] %s", ErrCodeUpstreamUnavailable, note)
			continue
		}

		notes = append(notes, fmt.Sprintf("Successfully geocoded location via %s.", p.Name()))
		return GeocodeResult{
			Latitude:  &lat,
			Longitude: &lon,
			Source:    p.Name(),
			Notes:     notes,
		}
	}

	return GeocodeResult{
		Source: string(SourceUnresolved),
		Notes:  notes,
	}
}

// geocodeFailureNote maps a provider error to the human-readable reason that
// ends up in the response payload.
func geocodeFailureNote(provider, query string, err error) string {
	msg := err.Error()
	switch {
	case errors.Is(err, ErrNoResults):
		return fmt.Sprintf("%s found no results for %q.", provider, query)
	case errors.Is(err, context.DeadlineExceeded) || common.HasAny(msg, "timeout", "deadline exceeded"):
		return fmt.Sprintf("%s timed out.", provider)
	case common.HasAny(msg, "rate limited", "quota", "402", "429"):
		return fmt.Sprintf("%s quota exceeded or rate limited.", provider)
	case common.HasAny(msg, "api key is not configured"):
		return fmt.Sprintf("%s is not configured.", provider)
	default:
		return fmt.Sprintf("%s request failed: %s.", provider, msg)
	}
}

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscope/home-assessment/internal/assessment"
)

func TestOpenCageGeocode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Philadelphia, PA", q.Get("q"))
		assert.Equal(t, "test-key", q.Get("key"))
		assert.Equal(t, "1", q.Get("limit"))
		assert.Equal(t, "1", q.Get("no_annotations"))

		fmt.Fprint(w, `{
			"status": {"code": 200, "message": "OK"},
			"results": [{"geometry": {"lat": 39.9526, "lng": -75.1652}}]
		}`)
	}))
	defer srv.Close()

	p := NewOpenCageProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	lat, lon, err := p.Geocode(context.Background(), "Philadelphia, PA")
	require.NoError(t, err)
	assert.Equal(t, 39.9526, lat)
	assert.Equal(t, -75.1652, lon)
}

func TestOpenCageGeocodeNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": {"code": 200, "message": "OK"}, "results": []}`)
	}))
	defer srv.Close()

	p := NewOpenCageProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	_, _, err := p.Geocode(context.Background(), "xyzzy")
	require.ErrorIs(t, err, assessment.ErrNoResults)
}

func TestOpenCageGeocodeQuotaExceeded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": {"code": 402, "message": "payment required"}, "results": []}`)
	}))
	defer srv.Close()

	p := NewOpenCageProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	_, _, err := p.Geocode(context.Background(), "Philadelphia, PA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "402")
}

func TestOpenCageGeocodeMissingAPIKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Fatal("no request expected without an api key")
	}))
	defer srv.Close()

	p := NewOpenCageProvider(srv.Client(), "")
	p.baseURL = srv.URL

	_, _, err := p.Geocode(context.Background(), "Philadelphia, PA")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is not configured")
}

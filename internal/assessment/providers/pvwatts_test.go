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

func TestPVWattsAnnualACOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "test-key", q.Get("api_key"))
		assert.Equal(t, "39.95", q.Get("lat"))
		assert.Equal(t, "-75.17", q.Get("lon"))
		assert.Equal(t, "4.00", q.Get("system_capacity"))
		assert.Equal(t, "0", q.Get("module_type"))
		assert.Equal(t, "14", q.Get("losses"))
		assert.Equal(t, "1", q.Get("array_type"))
		assert.Equal(t, "39.95", q.Get("tilt"))
		assert.Equal(t, "180", q.Get("azimuth"))
		assert.Equal(t, "json", q.Get("format"))

		fmt.Fprint(w, `{"errors": [], "outputs": {"ac_annual": 6132.45}}`)
	}))
	defer srv.Close()

	p := NewPVWattsProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	kwh, err := p.AnnualACOutput(context.Background(), 39.95, -75.17, 4.0, assessment.DefaultPVParams(39.95))
	require.NoError(t, err)
	assert.Equal(t, 6132.45, kwh)
}

func TestPVWattsErrorsInPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"errors": ["system_capacity above maximum"], "outputs": {}}`)
	}))
	defer srv.Close()

	p := NewPVWattsProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	_, err := p.AnnualACOutput(context.Background(), 39.95, -75.17, 400, assessment.DefaultPVParams(39.95))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "system_capacity above maximum")
}

func TestPVWattsMissingOutput(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"errors": [], "outputs": {}}`)
	}))
	defer srv.Close()

	p := NewPVWattsProvider(srv.Client(), "test-key")
	p.baseURL = srv.URL

	_, err := p.AnnualACOutput(context.Background(), 39.95, -75.17, 4.0, assessment.DefaultPVParams(39.95))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ac_annual")
}

func TestPVWattsMissingAPIKey(t *testing.T) {
	p := NewPVWattsProvider(http.DefaultClient, "")

	_, err := p.AnnualACOutput(context.Background(), 39.95, -75.17, 4.0, assessment.DefaultPVParams(39.95))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key is not configured")
}

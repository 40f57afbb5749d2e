package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecoscope/home-assessment/internal/assessment"
	"github.com/ecoscope/home-assessment/internal/cache"
)

type fixedGeocoder struct{ lat, lon float64 }

func (g fixedGeocoder) Name() string { return "Fixed Geocoder" }

func (g fixedGeocoder) Geocode(_ context.Context, _ string) (float64, float64, error) {
	return g.lat, g.lon, nil
}

type fixedHistory struct{ inches float64 }

func (h fixedHistory) Name() string { return "Fixed Archive" }

func (h fixedHistory) DailyPrecipitation(_ context.Context, _, _ float64, start, _ time.Time) ([]assessment.DailyPrecipitation, error) {
	return []assessment.DailyPrecipitation{{Date: start, Inches: h.inches}}, nil
}

type fixedSummary struct{ temp, rh float64 }

func (s fixedSummary) Name() string { return "Fixed Archive" }

func (s fixedSummary) DailySummary(_ context.Context, _, _ float64, _ time.Time) (assessment.DailySummary, error) {
	return assessment.DailySummary{TemperatureC: &s.temp, RelativeHumidityPct: &s.rh}, nil
}

type fixedPV struct {
	kwh float64
	err error
}

func (p fixedPV) Name() string { return "Fixed PV Model" }

func (p fixedPV) AnnualACOutput(_ context.Context, _, _, _ float64, _ assessment.PVParams) (float64, error) {
	return p.kwh, p.err
}

type faultyPV struct{}

func (faultyPV) Name() string { return "Faulty PV Model" }

func (faultyPV) AnnualACOutput(_ context.Context, _, _, _ float64, _ assessment.PVParams) (float64, error) {
	panic("nil map write")
}

func newTestApp(t *testing.T, geo assessment.GeocodeProvider, pv assessment.PVProvider) *fiber.App {
	t.Helper()

	geocoder := assessment.NewGeocoder()
	if geo != nil {
		geocoder = assessment.NewGeocoder(geo)
	}

	service := assessment.NewService(assessment.ServiceConfig{
		Geocoder: geocoder,
		History:  fixedHistory{inches: 40.0},
		Recent:   fixedSummary{temp: 25, rh: 60},
		PV:       pv,
		Cache:    cache.New(cache.NewMemoryStore(), 30*24*time.Hour),
	})

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, service)
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (*http.Response, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	return resp, payload
}

func TestAssessmentMissingLocation(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, fixedPV{kwh: 5000})

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/assessment/solar", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "input_invalid", payload["code"])
}

func TestAssessmentUnknownKind(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, fixedPV{kwh: 5000})

	resp, payload := doRequest(t, app, http.MethodGet, "/api/v1/assessment/geothermal?location=Philadelphia", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "input_invalid", payload["code"])
}

func TestAssessmentMalformedNumericParam(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, fixedPV{kwh: 5000})

	resp, payload := doRequest(t, app, http.MethodGet,
		"/api/v1/assessment/solar?location=Philadelphia&home_size_sqft=big", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "input_invalid", payload["code"])
	assert.Contains(t, payload["message"], "must be a number")
}

func TestAssessmentNegativeHomeSize(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, fixedPV{kwh: 5000})

	resp, _ := doRequest(t, app, http.MethodGet,
		"/api/v1/assessment/solar?location=Philadelphia&home_size_sqft=-100", "")

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSolarAssessmentUserElectricityCost(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, fixedPV{kwh: 6000})

	resp, payload := doRequest(t, app, http.MethodGet,
		"/api/v1/assessment/solar?location=Philadelphia&electricity_cost_per_kwh=0.22", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "user-provided", payload["source_of_electricity_cost"])
	assert.Equal(t, 0.22, payload["user_electricity_cost_per_kwh_used"])
	assert.Equal(t, 1320.0, payload["estimated_annual_savings_dollars"])
}

func TestRainwaterAssessmentDegradesOnGeocodingFailure(t *testing.T) {
	// No geocoder configured: the response is 200 with nulled figures and
	// explanatory notes, never an error status.
	app := newTestApp(t, nil, fixedPV{kwh: 5000})

	resp, payload := doRequest(t, app, http.MethodGet,
		"/api/v1/assessment/rainwater?location=Philadelphia", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, payload["retrieved_latitude"])
	assert.Nil(t, payload["annual_rainfall_inches"])
	assert.Equal(t, "unavailable", payload["rainfall_data_source"])
	assert.Equal(t, 0.0, payload["estimated_annual_gallons"])
}

func TestAWGAssessment(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, fixedPV{kwh: 5000})

	resp, payload := doRequest(t, app, http.MethodGet,
		"/api/v1/assessment/awg?location=Philadelphia", "")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2.5, payload["estimated_daily_gallons"])
	assert.Equal(t, 912.5, payload["estimated_annual_gallons"])
	assert.Equal(t, false, payload["out_of_model_range"])
}

func TestAssessmentInternalFault(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, faultyPV{})

	resp, payload := doRequest(t, app, http.MethodGet,
		"/api/v1/assessment/solar?location=Philadelphia", "")

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "internal_fault", payload["code"])
}

func TestProfileAccepted(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, fixedPV{kwh: 5000})

	body := `{
		"geographic_location": "Philadelphia, PA",
		"household_details": {"num_occupants": 3, "home_size_sqft": 1800},
		"utility_usage": {"electricity_kwh_monthly": 900, "water_gallons_monthly": 4000}
	}`
	resp, payload := doRequest(t, app, http.MethodPost, "/api/v1/profile", body)

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "success", payload["status"])
	assert.Equal(t, "Profile data received", payload["message"])
}

func TestProfileMissingRequiredFields(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, fixedPV{kwh: 5000})

	body := `{"geographic_location": "Philadelphia, PA"}`
	resp, payload := doRequest(t, app, http.MethodPost, "/api/v1/profile", body)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "input_invalid", payload["code"])
}

func TestProfileMalformedJSON(t *testing.T) {
	app := newTestApp(t, fixedGeocoder{lat: 40, lon: -75}, fixedPV{kwh: 5000})

	resp, payload := doRequest(t, app, http.MethodPost, "/api/v1/profile", `{"geographic_location":`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "input_invalid", payload["code"])
}

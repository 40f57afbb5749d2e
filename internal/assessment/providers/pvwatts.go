package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/ecoscope/home-assessment/internal/assessment"
)

// PVWattsProvider implements assessment.PVProvider against NREL PVWatts v8.
// Deliberately uncached: the model is deterministic for identical inputs and
// NREL caches server-side.
type PVWattsProvider struct {
	name    string
	apiKey  string
	baseURL string
	rc      resilientClient
}

func NewPVWattsProvider(client *http.Client, apiKey string) *PVWattsProvider {
	return &PVWattsProvider{
		name:    "NREL PVWatts API v8",
		apiKey:  apiKey,
		baseURL: "https://developer.nrel.gov/api/pvwatts/v8.json",
		rc:      newResilientClient(client, "pvwatts"),
	}
}

func (p *PVWattsProvider) Name() string {
	return p.name
}

func (p *PVWattsProvider) AnnualACOutput(ctx context.Context, lat, lon, capacityKW float64, params assessment.PVParams) (float64, error) {
	if p.apiKey == "" {
		return 0, fmt.Errorf("nrel api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("api_key", p.apiKey)
		values.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("system_capacity", strconv.FormatFloat(capacityKW, 'f', 2, 64))
		values.Set("module_type", strconv.Itoa(params.ModuleType))
		values.Set("losses", strconv.FormatFloat(params.LossesPct, 'f', -1, 64))
		values.Set("array_type", strconv.Itoa(params.ArrayType))
		values.Set("tilt", strconv.FormatFloat(params.TiltDeg, 'f', 2, 64))
		values.Set("azimuth", strconv.FormatFloat(params.AzimuthDeg, 'f', -1, 64))
		values.Set("format", "json")
		values.Set("timeframe", "hourly")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := p.rc.do(ctx, buildRequest)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	var payload struct {
		Errors  []string `json:"errors"`
		Outputs struct {
			ACAnnual *float64 `json:"ac_annual"`
		} `json:"outputs"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, err
	}

	if len(payload.Errors) > 0 {
		return 0, fmt.Errorf("pvwatts: %s", strings.Join(payload.Errors, "; "))
	}
	if payload.Outputs.ACAnnual == nil {
		return 0, fmt.Errorf("pvwatts response missing ac_annual output")
	}

	return *payload.Outputs.ACAnnual, nil
}

package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/ecoscope/home-assessment/internal/assessment"
)

// OpenCageProvider implements assessment.GeocodeProvider against the
// OpenCage Geocoding API. The trial tier's quota is assumed sufficient for a
// session, so results are not cached.
type OpenCageProvider struct {
	name    string
	apiKey  string
	baseURL string
	rc      resilientClient
}

func NewOpenCageProvider(client *http.Client, apiKey string) *OpenCageProvider {
	return &OpenCageProvider{
		name:    "OpenCage Geocoding API",
		apiKey:  apiKey,
		baseURL: "https://api.opencagedata.com/geocode/v1/json",
		rc:      newResilientClient(client, "opencage"),
	}
}

func (p *OpenCageProvider) Name() string {
	return p.name
}

func (p *OpenCageProvider) Geocode(ctx context.Context, query string) (float64, float64, error) {
	if p.apiKey == "" {
		return 0, 0, fmt.Errorf("opencage api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("q", query)
		values.Set("key", p.apiKey)
		values.Set("limit", "1")
		values.Set("no_annotations", "1")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	resp, err := p.rc.do(ctx, buildRequest)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	var payload struct {
		Status struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"status"`
		Results []struct {
			Geometry struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"geometry"`
		} `json:"results"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return 0, 0, err
	}

	if payload.Status.Code != 0 && payload.Status.Code != 200 {
		return 0, 0, fmt.Errorf("opencage status %d: %s", payload.Status.Code, payload.Status.Message)
	}
	if len(payload.Results) == 0 {
		return 0, 0, assessment.ErrNoResults
	}

	g := payload.Results[0].Geometry
	return g.Lat, g.Lng, nil
}

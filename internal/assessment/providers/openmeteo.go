package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/ecoscope/home-assessment/internal/assessment"
)

const dateLayout = "2006-01-02"

// OpenMeteoArchiveProvider serves both daily precipitation history and
// single-day temperature/humidity summaries from the Open-Meteo archive API.
// No API key is required. It implements assessment.HistoryProvider and
// assessment.SummaryProvider.
type OpenMeteoArchiveProvider struct {
	name    string
	baseURL string
	rc      resilientClient
}

func NewOpenMeteoArchiveProvider(client *http.Client) *OpenMeteoArchiveProvider {
	return &OpenMeteoArchiveProvider{
		name:    "Open-Meteo Archive API",
		baseURL: "https://archive-api.open-meteo.com/v1/archive",
		rc:      newResilientClient(client, "openmeteo-archive"),
	}
}

func (p *OpenMeteoArchiveProvider) Name() string {
	return p.name
}

// DailyPrecipitation returns one record per day with a known precipitation
// total, in inches, for [start, end]. Days the archive has no value for are
// skipped rather than reported as zero.
func (p *OpenMeteoArchiveProvider) DailyPrecipitation(ctx context.Context, lat, lon float64, start, end time.Time) ([]assessment.DailyPrecipitation, error) {
	payload, err := p.fetchDaily(ctx, lat, lon, start, end, "precipitation_sum")
	if err != nil {
		return nil, err
	}

	records := make([]assessment.DailyPrecipitation, 0, len(payload.Daily.Time))
	for i, day := range payload.Daily.Time {
		if i >= len(payload.Daily.PrecipitationSum) || payload.Daily.PrecipitationSum[i] == nil {
			continue
		}
		date, err := time.Parse(dateLayout, day)
		if err != nil {
			continue
		}
		records = append(records, assessment.DailyPrecipitation{
			Date:   date,
			Inches: *payload.Daily.PrecipitationSum[i],
		})
	}
	return records, nil
}

// DailySummary returns the mean temperature and relative humidity for a
// single day. Either field may be nil if the archive has no value.
func (p *OpenMeteoArchiveProvider) DailySummary(ctx context.Context, lat, lon float64, date time.Time) (assessment.DailySummary, error) {
	payload, err := p.fetchDaily(ctx, lat, lon, date, date, "temperature_2m_mean,relative_humidity_2m_mean")
	if err != nil {
		return assessment.DailySummary{}, err
	}

	var summary assessment.DailySummary
	if len(payload.Daily.TemperatureMean) > 0 {
		summary.TemperatureC = payload.Daily.TemperatureMean[0]
	}
	if len(payload.Daily.RelativeHumidityMean) > 0 {
		summary.RelativeHumidityPct = payload.Daily.RelativeHumidityMean[0]
	}
	return summary, nil
}

type archiveDailyPayload struct {
	Daily struct {
		Time                 []string   `json:"time"`
		PrecipitationSum     []*float64 `json:"precipitation_sum"`
		TemperatureMean      []*float64 `json:"temperature_2m_mean"`
		RelativeHumidityMean []*float64 `json:"relative_humidity_2m_mean"`
	} `json:"daily"`
}

func (p *OpenMeteoArchiveProvider) fetchDaily(ctx context.Context, lat, lon float64, start, end time.Time, variables string) (archiveDailyPayload, error) {
	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
		values.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
		values.Set("start_date", start.Format(dateLayout))
		values.Set("end_date", end.Format(dateLayout))
		values.Set("daily", variables)
		values.Set("precipitation_unit", "inch")
		values.Set("timezone", "UTC")

		u := fmt.Sprintf("%s?%s", p.baseURL, values.Encode())
		return http.NewRequest(http.MethodGet, u, nil)
	}

	var payload archiveDailyPayload

	resp, err := p.rc.do(ctx, buildRequest)
	if err != nil {
		return payload, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMeteoDailyPrecipitation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "39.95", q.Get("latitude"))
		assert.Equal(t, "-75.17", q.Get("longitude"))
		assert.Equal(t, "2024-01-01", q.Get("start_date"))
		assert.Equal(t, "2024-01-04", q.Get("end_date"))
		assert.Equal(t, "precipitation_sum", q.Get("daily"))
		assert.Equal(t, "inch", q.Get("precipitation_unit"))
		assert.Equal(t, "UTC", q.Get("timezone"))

		fmt.Fprint(w, `{
			"daily": {
				"time": ["2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"],
				"precipitation_sum": [0.12, null, 0.0, 1.4]
			}
		}`)
	}))
	defer srv.Close()

	p := NewOpenMeteoArchiveProvider(srv.Client())
	p.baseURL = srv.URL

	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)
	records, err := p.DailyPrecipitation(context.Background(), 39.95, -75.17, start, end)
	require.NoError(t, err)

	// The null day is skipped, the zero day is kept.
	require.Len(t, records, 3)
	assert.Equal(t, 0.12, records[0].Inches)
	assert.Equal(t, start, records[0].Date)
	assert.Equal(t, 0.0, records[1].Inches)
	assert.Equal(t, 1.4, records[2].Inches)
	assert.Equal(t, end, records[2].Date)
}

func TestOpenMeteoDailySummary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "2024-06-15", q.Get("start_date"))
		assert.Equal(t, "2024-06-15", q.Get("end_date"))
		assert.Equal(t, "temperature_2m_mean,relative_humidity_2m_mean", q.Get("daily"))

		fmt.Fprint(w, `{
			"daily": {
				"time": ["2024-06-15"],
				"temperature_2m_mean": [25.3],
				"relative_humidity_2m_mean": [61.0]
			}
		}`)
	}))
	defer srv.Close()

	p := NewOpenMeteoArchiveProvider(srv.Client())
	p.baseURL = srv.URL

	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	summary, err := p.DailySummary(context.Background(), 39.95, -75.17, day)
	require.NoError(t, err)

	require.NotNil(t, summary.TemperatureC)
	assert.Equal(t, 25.3, *summary.TemperatureC)
	require.NotNil(t, summary.RelativeHumidityPct)
	assert.Equal(t, 61.0, *summary.RelativeHumidityPct)
}

func TestOpenMeteoDailySummaryMissingValues(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{
			"daily": {
				"time": ["2024-06-15"],
				"temperature_2m_mean": [null],
				"relative_humidity_2m_mean": []
			}
		}`)
	}))
	defer srv.Close()

	p := NewOpenMeteoArchiveProvider(srv.Client())
	p.baseURL = srv.URL

	day := time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)
	summary, err := p.DailySummary(context.Background(), 39.95, -75.17, day)
	require.NoError(t, err)

	assert.Nil(t, summary.TemperatureC)
	assert.Nil(t, summary.RelativeHumidityPct)
}

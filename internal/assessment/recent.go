package assessment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ecoscope/home-assessment/internal/cache"
)

// recentConditions fetches yesterday's mean temperature and relative
// humidity for a resolved coordinate, cached under (recent-weather, rounded
// coordinates). Failures come back as unavailable conditions, never an error.
func (s *Service) recentConditions(ctx context.Context, lat, lon float64) DailyConditions {
	date := s.yesterday()
	key := cache.Key(datasetRecentWeather, lat, lon, s.precision)

	var cached DailyConditions
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	summary, err := s.recent.DailySummary(ctx, lat, lon, date)
	if err != nil {
		note := fmt.Sprintf("Recent weather unavailable: %s request failed.", s.recent.Name())
		log.Printf("WARN [%s] daily summary for %s failed: %v", ErrCodeUpstreamUnavailable, date.Format("2006-01-02"), err)
		return DailyConditions{
			Date:   date.Format("2006-01-02"),
			Source: SourceUnavailable,
			Note:   note,
		}
	}

	cond := DailyConditions{
		TemperatureC:        summary.TemperatureC,
		RelativeHumidityPct: summary.RelativeHumidityPct,
		Date:                date.Format("2006-01-02"),
		Source:              SourceLive,
	}

	if err := s.cache.Put(ctx, key, cond); err != nil {
		log.Printf("WARN: failed to cache recent conditions for %s: %v", key, err)
	}
	return cond
}

// yesterday is the most recent complete day relative to the request.
func (s *Service) yesterday() time.Time {
	t := s.now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
}

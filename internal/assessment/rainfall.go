package assessment

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ecoscope/home-assessment/internal/cache"
)

const (
	// How many complete calendar years of precipitation feed the average.
	historyYears = 30

	// The archive limits how wide one request may be, so history is pulled
	// one decade at a time and concatenated.
	historyChunkYears = 10

	datasetRainfallHistory = "rainfall-history"
	datasetRecentWeather   = "recent-weather"
)

// rainfallStats reduces ~30 years of daily precipitation for a resolved
// coordinate to one average annual rainfall figure. Results are cached under
// (rainfall-history, rounded coordinates); failures are returned as
// unavailable stats and never cached.
func (s *Service) rainfallStats(ctx context.Context, lat, lon float64) RainfallStats {
	key := cache.Key(datasetRainfallHistory, lat, lon, s.precision)

	var cached RainfallStats
	if s.cache.Get(ctx, key, &cached) {
		return cached
	}

	endYear := s.now().UTC().Year() - 1
	startYear := endYear - (historyYears - 1)

	var records []DailyPrecipitation
	for year := startYear; year <= endYear; year += historyChunkYears {
		chunkEnd := year + historyChunkYears - 1
		if chunkEnd > endYear {
			chunkEnd = endYear
		}

		start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(chunkEnd, time.December, 31, 0, 0, 0, 0, time.UTC)

		chunk, err := s.history.DailyPrecipitation(ctx, lat, lon, start, end)
		if err != nil {
			note := fmt.Sprintf("Historical rainfall unavailable: %s request failed.", s.history.Name())
			log.Printf("WARN [%s] rainfall history %d-%d failed: %v", ErrCodeUpstreamUnavailable, year, chunkEnd, err)
			return RainfallStats{Source: SourceUnavailable, Note: note}
		}
		records = append(records, chunk...)
	}

	yearTotals := make(map[int]float64)
	for _, r := range records {
		yearTotals[r.Date.Year()] += r.Inches
	}

	if len(yearTotals) == 0 {
		return RainfallStats{
			Source: SourceUnavailable,
			Note:   fmt.Sprintf("Historical rainfall unavailable: %s returned no records.", s.history.Name()),
		}
	}

	var sum float64
	for _, total := range yearTotals {
		sum += total
	}
	avg := round2(sum / float64(len(yearTotals)))

	stats := RainfallStats{
		AnnualRainfallInches: &avg,
		YearsAveraged:        len(yearTotals),
		Source:               SourceLive,
	}

	if err := s.cache.Put(ctx, key, stats); err != nil {
		log.Printf("WARN: failed to cache rainfall stats for %s: %v", key, err)
	}
	return stats
}

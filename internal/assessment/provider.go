package assessment

import (
	"context"
	"errors"
	"time"
)

// ErrNoResults is returned by a GeocodeProvider when the query resolved to
// zero matches (as opposed to the provider itself failing).
var ErrNoResults = errors.New("no geocoding results for location")

// GeocodeProvider abstracts an external geocoding service
// (e.g. OpenCage, Google).
type GeocodeProvider interface {
	Name() string
	Geocode(ctx context.Context, query string) (lat, lon float64, err error)
}

// DailyPrecipitation is a single day's precipitation total in inches.
type DailyPrecipitation struct {
	Date   time.Time
	Inches float64
}

// HistoryProvider abstracts a historical-weather archive capable of serving
// daily precipitation records for a coordinate and date range. Providers may
// limit how wide a range one call can cover; callers chunk and concatenate.
type HistoryProvider interface {
	Name() string
	DailyPrecipitation(ctx context.Context, lat, lon float64, start, end time.Time) ([]DailyPrecipitation, error)
}

// DailySummary is a single day's mean temperature and relative humidity.
// Either field may be nil when the provider has no value for that day.
type DailySummary struct {
	TemperatureC        *float64
	RelativeHumidityPct *float64
}

// SummaryProvider abstracts a provider of single-day weather aggregates.
type SummaryProvider interface {
	Name() string
	DailySummary(ctx context.Context, lat, lon float64, date time.Time) (DailySummary, error)
}

// PVParams are the array parameters passed to the PV-production model.
type PVParams struct {
	ModuleType int     // 0 = standard
	ArrayType  int     // 1 = fixed open rack
	LossesPct  float64 // system losses in percent
	TiltDeg    float64
	AzimuthDeg float64
}

// DefaultPVParams returns the stock array parameters. Tilt follows latitude,
// which is close to optimal for fixed arrays; azimuth 180 is south-facing.
func DefaultPVParams(lat float64) PVParams {
	return PVParams{
		ModuleType: 0,
		ArrayType:  1,
		LossesPct:  14,
		TiltDeg:    lat,
		AzimuthDeg: 180,
	}
}

// PVProvider abstracts an external PV-production model returning estimated
// annual AC output in kWh for a system at the given coordinate.
type PVProvider interface {
	Name() string
	AnnualACOutput(ctx context.Context, lat, lon, capacityKW float64, params PVParams) (float64, error)
}

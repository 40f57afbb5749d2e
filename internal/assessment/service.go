package assessment

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ecoscope/home-assessment/internal/cache"
)

// Service runs the three assessment pipelines. Each orchestrator owns every
// intermediate value it requests; the TTL cache is the only state that
// outlives a request. Orchestrators never panic past their boundary: any
// unexpected fault is converted into an internal_fault AppError.
type Service struct {
	geocoder  *Geocoder
	history   HistoryProvider
	recent    SummaryProvider
	pv        PVProvider
	cache     *cache.Cache
	precision int
	defaults  Defaults
	yield     AWGYieldTable

	// now is swappable in tests (the "yesterday" and history windows
	// depend on it).
	now func() time.Time
}

// ServiceConfig wires a Service's collaborators.
type ServiceConfig struct {
	Geocoder       *Geocoder
	History        HistoryProvider
	Recent         SummaryProvider
	PV             PVProvider
	Cache          *cache.Cache
	CoordPrecision int
	Defaults       Defaults
	YieldTable     AWGYieldTable
}

// NewService creates a Service. A zero Defaults falls back to the stock
// assumptions and a nil YieldTable to the stock condensation model.
func NewService(cfg ServiceConfig) *Service {
	if cfg.Defaults == (Defaults{}) {
		cfg.Defaults = DefaultAssumptions()
	}
	if cfg.YieldTable == nil {
		cfg.YieldTable = DefaultAWGYieldTable()
	}
	if cfg.CoordPrecision <= 0 {
		cfg.CoordPrecision = 2
	}

	return &Service{
		geocoder:  cfg.Geocoder,
		history:   cfg.History,
		recent:    cfg.Recent,
		pv:        cfg.PV,
		cache:     cfg.Cache,
		precision: cfg.CoordPrecision,
		defaults:  cfg.Defaults,
		yield:     cfg.YieldTable,
		now:       time.Now,
	}
}

// SolarAssessment estimates annual PV production and its financial and
// environmental value for the given location.
func (s *Service) SolarAssessment(ctx context.Context, req Request) (result *SolarAssessmentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR [%s] solar assessment panic: %v", ErrCodeInternalFault, r)
			result = nil
			err = newInternalFault("unexpected internal error during solar assessment")
		}
	}()

	if strings.TrimSpace(req.Location) == "" {
		return nil, NewInputError("location parameter (e.g., address, city, zipcode) is required")
	}

	geo := s.geocoder.Resolve(ctx, req.Location)
	capacity, capacityNote := s.systemCapacity(req.HomeSizeSqft)

	result = &SolarAssessmentResult{
		AssessmentID:              uuid.NewString(),
		InputLocationString:       req.Location,
		RetrievedLatitude:         geo.Latitude,
		RetrievedLongitude:        geo.Longitude,
		GeocodingDataSource:       geo.Source,
		GeocodingNotes:            geo.Notes,
		RequestedSystemCapacityKW: capacity,
		SolarDataSource:           string(SourceUnavailable),
		Notes:                     []string{capacityNote},
	}

	if geo.Resolved() {
		kwh, pvErr := s.pv.AnnualACOutput(ctx, *geo.Latitude, *geo.Longitude, capacity, DefaultPVParams(*geo.Latitude))
		if pvErr != nil {
			log.Printf("WARN [%s] pv estimate failed: %v", ErrCodeUpstreamUnavailable, pvErr)
			result.Notes = append(result.Notes, fmt.Sprintf(
				"Solar production estimate unavailable: %s request failed.", s.pv.Name()))
		} else {
			v := round2(kwh)
			result.EstimatedAnnualACKWh = &v
			result.SolarDataSource = s.pv.Name()
		}
	} else {
		result.Notes = append(result.Notes,
			"Geocoding failed; solar production could not be estimated.")
	}

	fin := SolarFinancials(result.EstimatedAnnualACKWh, capacity, req.ElectricityCostPerKWh, s.defaults)
	result.ElectricityCostPerKWhUsed = fin.ElectricityCostPerKWh
	result.SourceOfElectricityCost = fin.ElectricityCostSource
	result.EstimatedAnnualSavings = fin.AnnualSavingsDollars
	result.InstallCostPerWattUsed = s.defaults.SolarInstallCostPerWatt
	result.EstimatedSystemCost = fin.SystemCostDollars
	result.SimplePaybackPeriodYears = fin.PaybackYears
	result.FinancialNotes = fin.Notes

	result.CO2EmissionsFactorUsed = s.defaults.CO2EmissionsFactorKgPerKWh
	result.EstimatedAnnualCO2Reduction = CO2Reduction(result.EstimatedAnnualACKWh, s.defaults.CO2EmissionsFactorKgPerKWh)
	result.EnvironmentalNotes = []string{
		fmt.Sprintf("CO2 reduction calculated using an average grid emissions factor of %.2f kg CO2/kWh.",
			s.defaults.CO2EmissionsFactorKgPerKWh),
		"This is an estimate; actual displaced emissions vary by region and time of day.",
	}

	return result, nil
}

// RainwaterAssessment estimates annual rainwater collection and its
// financial value for the given location.
func (s *Service) RainwaterAssessment(ctx context.Context, req Request) (result *RainwaterAssessmentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR [%s] rainwater assessment panic: %v", ErrCodeInternalFault, r)
			result = nil
			err = newInternalFault("unexpected internal error during rainwater assessment")
		}
	}()

	if strings.TrimSpace(req.Location) == "" {
		return nil, NewInputError("location parameter (e.g., address, city, zipcode) is required")
	}

	geo := s.geocoder.Resolve(ctx, req.Location)
	area, areaNote := s.collectionArea(req.HomeSizeSqft)

	result = &RainwaterAssessmentResult{
		AssessmentID:           uuid.NewString(),
		InputLocationString:    req.Location,
		RetrievedLatitude:      geo.Latitude,
		RetrievedLongitude:     geo.Longitude,
		GeocodingDataSource:    geo.Source,
		GeocodingNotes:         geo.Notes,
		CollectionAreaUsedSqft: area,
		Notes:                  []string{areaNote},
	}

	var stats RainfallStats
	if geo.Resolved() {
		stats = s.rainfallStats(ctx, *geo.Latitude, *geo.Longitude)
	} else {
		stats = RainfallStats{
			Source: SourceUnavailable,
			Note:   "Geocoding failed; rainfall defaulted to 0.0 inches.",
		}
	}

	result.AnnualRainfallInches = stats.AnnualRainfallInches
	result.RainfallYearsAveraged = stats.YearsAveraged
	result.RainfallDataSource = stats.Source
	if stats.Note != "" {
		result.Notes = append(result.Notes, stats.Note)
	}

	// A failed fetch collapses to 0 estimated gallons for compatibility
	// with the original behavior; rainfall_data_source and the null
	// annual_rainfall_inches keep "unknown" distinguishable from "zero
	// potential".
	var gallons *float64
	if stats.AnnualRainfallInches != nil {
		g := round2(*stats.AnnualRainfallInches * area * inchesToGallonsPerSqft * collectionEfficiency)
		result.EstimatedAnnualGallons = g
		gallons = &g
		result.Notes = append(result.Notes, fmt.Sprintf(
			"Based on a %.2f inch average annual rainfall over %d years and an %.0f%% collection efficiency.",
			*stats.AnnualRainfallInches, stats.YearsAveraged, collectionEfficiency*100))
	} else {
		result.Notes = append(result.Notes,
			"Estimated collection defaulted to 0 gallons because rainfall data is unavailable.")
	}

	fin := RainwaterFinancials(gallons, req.WaterCostPerGallon, s.defaults)
	result.WaterCostPerGallonUsed = fin.WaterCostPerGallon
	result.SourceOfWaterCost = fin.WaterCostSource
	result.EstimatedAnnualSavings = fin.AnnualSavingsDollars
	result.StorageCostPerGallonUsed = s.defaults.RainwaterStorageCostPerGallon
	result.StorageCapacityGallonsUsed = fin.StorageCapacityGallons
	result.EstimatedSystemCost = fin.SystemCostDollars
	result.SimplePaybackPeriodYears = fin.PaybackYears
	result.FinancialNotes = fin.Notes

	return result, nil
}

// AWGAssessment estimates daily and annual atmospheric water generation for
// the given location from yesterday's conditions.
func (s *Service) AWGAssessment(ctx context.Context, req Request) (result *AWGAssessmentResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR [%s] awg assessment panic: %v", ErrCodeInternalFault, r)
			result = nil
			err = newInternalFault("unexpected internal error during awg assessment")
		}
	}()

	if strings.TrimSpace(req.Location) == "" {
		return nil, NewInputError("location parameter (e.g., address, city, zipcode) is required")
	}

	geo := s.geocoder.Resolve(ctx, req.Location)

	var cond DailyConditions
	if geo.Resolved() {
		cond = s.recentConditions(ctx, *geo.Latitude, *geo.Longitude)
	} else {
		cond = DailyConditions{
			Date:   s.yesterday().Format("2006-01-02"),
			Source: SourceUnavailable,
			Note:   "Geocoding failed; atmospheric conditions are unavailable.",
		}
	}

	result = &AWGAssessmentResult{
		AssessmentID:        uuid.NewString(),
		InputLocationString: req.Location,
		RetrievedLatitude:   geo.Latitude,
		RetrievedLongitude:  geo.Longitude,
		GeocodingDataSource: geo.Source,
		GeocodingNotes:      geo.Notes,
		TemperatureC:        cond.TemperatureC,
		RelativeHumidityPct: cond.RelativeHumidityPct,
		WeatherDate:         cond.Date,
		WeatherDataSource:   cond.Source,
	}
	if cond.Note != "" {
		result.Notes = append(result.Notes, cond.Note)
	}

	daily, inRange := s.yield.DailyYield(cond.TemperatureC, cond.RelativeHumidityPct)
	result.EstimatedDailyGallons = daily
	result.EstimatedAnnualGallons = round2(daily * daysPerYear)
	result.OutOfModelRange = !inRange

	if inRange {
		result.Notes = append(result.Notes, fmt.Sprintf(
			"Daily yield of %.2f gallons from the condensation model; annual yield assumes no seasonal variation (x365).", daily))
	} else {
		note := "Conditions are outside the AWG model range; daily yield defaulted to 0.0 gallons."
		log.Printf("WARN [%s] %s", ErrCodeComputationGuard, note)
		result.Notes = append(result.Notes, note)
	}

	return result, nil
}

// WarmLocation resolves a configured location and refreshes its cached
// rainfall history and recent conditions. Used by the prewarm scheduler.
func (s *Service) WarmLocation(ctx context.Context, location string) error {
	geo := s.geocoder.Resolve(ctx, location)
	if !geo.Resolved() {
		return fmt.Errorf("warm %q: location did not resolve", location)
	}

	stats := s.rainfallStats(ctx, *geo.Latitude, *geo.Longitude)
	cond := s.recentConditions(ctx, *geo.Latitude, *geo.Longitude)

	if stats.Source == SourceUnavailable || cond.Source == SourceUnavailable {
		return fmt.Errorf("warm %q: one or more datasets unavailable", location)
	}
	return nil
}

// systemCapacity derives the PV system size from home size (1 kW per 250
// sqft, clamped to [1, 15] kW) or falls back to the default nameplate size.
func (s *Service) systemCapacity(homeSizeSqft *float64) (float64, string) {
	capacity := s.defaults.SolarSystemCapacityKW
	note := fmt.Sprintf(
		"Estimated annual AC energy production for a default %.1f kW DC system.", capacity)

	if homeSizeSqft != nil && *homeSizeSqft > 0 {
		capacity = round2(math.Max(minSystemKW, math.Min(maxSystemKW, *homeSizeSqft/sqftPerKW)))
		note = fmt.Sprintf(
			"Estimated annual AC energy production for a %.2f kW DC system (estimated based on %.0f sqft home size).",
			capacity, *homeSizeSqft)
	}
	return capacity, note
}

// collectionArea derives the rainwater collection area from home size (a
// quarter of the footprint) or falls back to the default roof area.
func (s *Service) collectionArea(homeSizeSqft *float64) (float64, string) {
	if homeSizeSqft != nil && *homeSizeSqft > 0 {
		area := round2(*homeSizeSqft * collectionAreaHomeFraction)
		return area, fmt.Sprintf(
			"Collection area of %.2f sqft estimated from %.0f sqft home size.", area, *homeSizeSqft)
	}

	area := s.defaults.CollectionRoofAreaSqft
	return area, fmt.Sprintf("Using default collection area (%.0f sqft).", area)
}

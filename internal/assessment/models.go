package assessment

// DataSource labels where a figure came from so a caller can distinguish
// "no potential" from "could not determine".
type DataSource string

const (
	SourceLive        DataSource = "live"
	SourceUnavailable DataSource = "unavailable"
	SourceUnresolved  DataSource = "unresolved"
)

// CostSource records whether a cost input was supplied by the caller or
// filled from the configured defaults.
type CostSource string

const (
	CostSourceUser    CostSource = "user-provided"
	CostSourceDefault CostSource = "default"
)

// GeocodeResult is what location resolution produces. Latitude/Longitude are
// nil when the location could not be resolved; Source then is "unresolved"
// and Notes explains why.
type GeocodeResult struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Source    string   `json:"source"`
	Notes     []string `json:"notes"`
}

// Resolved reports whether coordinate-dependent lookups can proceed.
func (g GeocodeResult) Resolved() bool {
	return g.Latitude != nil && g.Longitude != nil
}

// RainfallStats is the reduced view of ~30 years of daily precipitation.
type RainfallStats struct {
	AnnualRainfallInches *float64   `json:"annual_rainfall_inches"`
	YearsAveraged        int        `json:"years_averaged"`
	Source               DataSource `json:"source"`
	Note                 string     `json:"note,omitempty"`
}

// DailyConditions is yesterday's mean temperature and relative humidity.
type DailyConditions struct {
	TemperatureC        *float64   `json:"temperature_celsius"`
	RelativeHumidityPct *float64   `json:"relative_humidity_percent"`
	Date                string     `json:"date"`
	Source              DataSource `json:"source"`
	Note                string     `json:"note,omitempty"`
}

// Request carries the per-assessment query inputs. Optional numeric inputs
// are pointers so "absent" is distinguishable from zero.
type Request struct {
	Location              string
	HomeSizeSqft          *float64
	ElectricityCostPerKWh *float64
	WaterCostPerGallon    *float64
}

// Defaults holds every assumption used when the caller supplies nothing.
// Values mirror the ones the product shipped with; all are overridable
// through configuration.
type Defaults struct {
	ElectricityCostPerKWh           float64
	WaterCostPerGallon              float64
	SolarInstallCostPerWatt         float64
	RainwaterStorageCostPerGallon   float64
	RainwaterStorageCapacityGallons float64
	CO2EmissionsFactorKgPerKWh      float64
	CollectionRoofAreaSqft          float64
	SolarSystemCapacityKW           float64
}

// DefaultAssumptions returns the stock defaults.
func DefaultAssumptions() Defaults {
	return Defaults{
		ElectricityCostPerKWh:           0.15,
		WaterCostPerGallon:              0.004,
		SolarInstallCostPerWatt:         3.0,
		RainwaterStorageCostPerGallon:   2.0,
		RainwaterStorageCapacityGallons: 1000,
		CO2EmissionsFactorKgPerKWh:      0.45,
		CollectionRoofAreaSqft:          200,
		SolarSystemCapacityKW:           4.0,
	}
}

const (
	// 1 inch of rain on 1 sqft of collection area yields 0.623 gallons.
	inchesToGallonsPerSqft = 0.623

	// Fraction of rainfall a real system actually captures.
	collectionEfficiency = 0.8

	// Roof fraction assumed usable for rainwater collection.
	collectionAreaHomeFraction = 0.25

	// System sizing: 1 kW of PV per this many sqft of home, clamped below.
	sqftPerKW   = 250.0
	minSystemKW = 1.0
	maxSystemKW = 15.0
	daysPerYear = 365
)

// SolarAssessmentResult is the full solar response payload. Field names
// follow the public API contract; nil numeric fields serialize as null,
// never as omitted fields.
type SolarAssessmentResult struct {
	AssessmentID        string   `json:"assessment_id"`
	InputLocationString string   `json:"input_location_string"`
	RetrievedLatitude   *float64 `json:"retrieved_latitude"`
	RetrievedLongitude  *float64 `json:"retrieved_longitude"`
	GeocodingDataSource string   `json:"geocoding_data_source"`
	GeocodingNotes      []string `json:"geocoding_notes"`

	RequestedSystemCapacityKW float64  `json:"requested_system_capacity_kw"`
	EstimatedAnnualACKWh      *float64 `json:"estimated_annual_ac_kwh"`
	SolarDataSource           string   `json:"solar_data_source"`

	ElectricityCostPerKWhUsed   float64    `json:"user_electricity_cost_per_kwh_used"`
	SourceOfElectricityCost     CostSource `json:"source_of_electricity_cost"`
	EstimatedAnnualSavings      float64    `json:"estimated_annual_savings_dollars"`
	InstallCostPerWattUsed      float64    `json:"default_solar_install_cost_per_watt_used"`
	EstimatedSystemCost         float64    `json:"estimated_system_cost_dollars"`
	SimplePaybackPeriodYears    *float64   `json:"simple_payback_period_years"`
	FinancialNotes              []string   `json:"financial_notes"`
	CO2EmissionsFactorUsed      float64    `json:"default_co2_emissions_factor_kg_per_kwh_used"`
	EstimatedAnnualCO2Reduction *float64   `json:"estimated_annual_co2_reduction_kg"`
	EnvironmentalNotes          []string   `json:"environmental_notes"`

	Notes []string `json:"notes"`
}

// RainwaterAssessmentResult is the full rainwater response payload.
type RainwaterAssessmentResult struct {
	AssessmentID        string   `json:"assessment_id"`
	InputLocationString string   `json:"input_location_string"`
	RetrievedLatitude   *float64 `json:"retrieved_latitude"`
	RetrievedLongitude  *float64 `json:"retrieved_longitude"`
	GeocodingDataSource string   `json:"geocoding_data_source"`
	GeocodingNotes      []string `json:"geocoding_notes"`

	AnnualRainfallInches   *float64   `json:"annual_rainfall_inches"`
	RainfallYearsAveraged  int        `json:"rainfall_years_averaged"`
	RainfallDataSource     DataSource `json:"rainfall_data_source"`
	CollectionAreaUsedSqft float64    `json:"collection_area_used_sqft"`
	EstimatedAnnualGallons float64    `json:"estimated_annual_gallons"`

	WaterCostPerGallonUsed     float64    `json:"user_water_cost_per_gallon_used"`
	SourceOfWaterCost          CostSource `json:"source_of_water_cost"`
	EstimatedAnnualSavings     float64    `json:"estimated_annual_water_savings_dollars"`
	StorageCostPerGallonUsed   float64    `json:"default_rainwater_system_cost_per_gallon_storage_used"`
	StorageCapacityGallonsUsed float64    `json:"estimated_rainwater_system_storage_capacity_gallons_assumed"`
	EstimatedSystemCost        float64    `json:"estimated_rainwater_system_cost_dollars"`
	SimplePaybackPeriodYears   *float64   `json:"simple_rainwater_payback_period_years"`
	FinancialNotes             []string   `json:"financial_notes_rainwater"`

	Notes []string `json:"notes"`
}

// AWGAssessmentResult is the atmospheric water generation response payload.
type AWGAssessmentResult struct {
	AssessmentID        string   `json:"assessment_id"`
	InputLocationString string   `json:"input_location_string"`
	RetrievedLatitude   *float64 `json:"retrieved_latitude"`
	RetrievedLongitude  *float64 `json:"retrieved_longitude"`
	GeocodingDataSource string   `json:"geocoding_data_source"`
	GeocodingNotes      []string `json:"geocoding_notes"`

	TemperatureC        *float64   `json:"temperature_celsius"`
	RelativeHumidityPct *float64   `json:"relative_humidity_percent"`
	WeatherDate         string     `json:"weather_date"`
	WeatherDataSource   DataSource `json:"weather_data_source"`

	EstimatedDailyGallons  float64 `json:"estimated_daily_gallons"`
	EstimatedAnnualGallons float64 `json:"estimated_annual_gallons"`
	OutOfModelRange        bool    `json:"out_of_model_range"`

	Notes []string `json:"notes"`
}

package assessment

import (
	"fmt"
	"math"
)

// SolarFinance is the output of the solar financial calculator.
type SolarFinance struct {
	SystemCostDollars     float64
	AnnualSavingsDollars  float64
	PaybackYears          *float64
	ElectricityCostPerKWh float64
	ElectricityCostSource CostSource
	Notes                 []string
}

// SolarFinancials computes cost, savings and simple payback for a PV system.
// A nil annualKWh means production could not be determined; savings collapse
// to zero and payback is nil with an explanatory note. Payback is never
// computed by dividing by zero.
func SolarFinancials(annualKWh *float64, capacityKW float64, userRate *float64, d Defaults) SolarFinance {
	f := SolarFinance{
		ElectricityCostPerKWh: d.ElectricityCostPerKWh,
		ElectricityCostSource: CostSourceDefault,
	}
	if userRate != nil {
		f.ElectricityCostPerKWh = *userRate
		f.ElectricityCostSource = CostSourceUser
	}
	f.Notes = append(f.Notes, fmt.Sprintf(
		"Electricity cost used: $%.2f/kWh (source: %s).", f.ElectricityCostPerKWh, f.ElectricityCostSource))

	f.SystemCostDollars = round2(capacityKW * 1000 * d.SolarInstallCostPerWatt)
	f.Notes = append(f.Notes, fmt.Sprintf(
		"System cost estimated at $%.2f/Watt for a %.2f kW system.", d.SolarInstallCostPerWatt, capacityKW))

	if annualKWh == nil {
		f.Notes = append(f.Notes,
			"Annual savings unavailable: energy production could not be determined.")
		f.Notes = append(f.Notes,
			"Payback period is not applicable without an energy production estimate.")
		return f
	}

	f.AnnualSavingsDollars = round2(*annualKWh * f.ElectricityCostPerKWh)
	f.Notes = append(f.Notes, fmt.Sprintf(
		"Annual savings calculated based on %.2f kWh annual production.", *annualKWh))

	if f.AnnualSavingsDollars > 0 {
		payback := round1(f.SystemCostDollars / f.AnnualSavingsDollars)
		f.PaybackYears = &payback
		f.Notes = append(f.Notes,
			"Simple payback period does not include system degradation, maintenance, or potential incentives/financing.")
	} else if *annualKWh <= 0 {
		f.Notes = append(f.Notes,
			"Payback period is not applicable as estimated energy production is zero or negative.")
	} else {
		f.Notes = append(f.Notes,
			"Payback period is not applicable due to zero or negative estimated annual savings (check electricity cost).")
	}
	return f
}

// CO2Reduction converts annual energy production into displaced grid
// emissions. A nil input propagates to a nil output.
func CO2Reduction(annualKWh *float64, factorKgPerKWh float64) *float64 {
	if annualKWh == nil {
		return nil
	}
	kg := round2(*annualKWh * factorKgPerKWh)
	return &kg
}

// RainwaterFinance is the output of the rainwater financial calculator.
type RainwaterFinance struct {
	SystemCostDollars      float64
	AnnualSavingsDollars   float64
	PaybackYears           *float64
	WaterCostPerGallon     float64
	WaterCostSource        CostSource
	StorageCapacityGallons float64
	Notes                  []string
}

// RainwaterFinancials computes cost, savings and simple payback for a
// rainwater harvesting system, under the same nil/zero guard rules as
// SolarFinancials.
func RainwaterFinancials(annualGallons *float64, userRate *float64, d Defaults) RainwaterFinance {
	f := RainwaterFinance{
		WaterCostPerGallon:     d.WaterCostPerGallon,
		WaterCostSource:        CostSourceDefault,
		StorageCapacityGallons: d.RainwaterStorageCapacityGallons,
	}
	if userRate != nil {
		f.WaterCostPerGallon = *userRate
		f.WaterCostSource = CostSourceUser
	}
	f.Notes = append(f.Notes, fmt.Sprintf(
		"Water cost used: $%.4f/gallon (source: %s).", f.WaterCostPerGallon, f.WaterCostSource))

	f.SystemCostDollars = round2(f.StorageCapacityGallons * d.RainwaterStorageCostPerGallon)
	f.Notes = append(f.Notes, fmt.Sprintf(
		"System cost estimated for a %.0f gallon storage system at $%.2f/gallon of storage.",
		f.StorageCapacityGallons, d.RainwaterStorageCostPerGallon))
	f.Notes = append(f.Notes,
		"Actual system costs can vary widely based on system type, complexity, and local installation rates.")

	if annualGallons == nil {
		f.Notes = append(f.Notes,
			"Annual savings unavailable: collected water volume could not be determined.")
		f.Notes = append(f.Notes,
			"Payback period is not applicable without a water collection estimate.")
		return f
	}

	f.AnnualSavingsDollars = round2(*annualGallons * f.WaterCostPerGallon)
	f.Notes = append(f.Notes, fmt.Sprintf(
		"Annual savings based on %.2f gallons collected.", *annualGallons))

	if f.AnnualSavingsDollars > 0 {
		payback := round1(f.SystemCostDollars / f.AnnualSavingsDollars)
		f.PaybackYears = &payback
		f.Notes = append(f.Notes,
			"Simple payback period does not include maintenance, or potential incentives/financing.")
	} else if *annualGallons <= 0 {
		f.Notes = append(f.Notes,
			"Payback period is not applicable as estimated water collection is zero or negative.")
	} else {
		f.Notes = append(f.Notes,
			"Payback period is not applicable due to zero or negative estimated annual savings (check water cost).")
	}
	return f
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

package service

import (
	"fmt"
	"math"

	"github.com/calai-app/calai/pkg/model"
)

// Conversion constants. Weights are stored in lbs and heights in inches
// regardless of the user's display unit system.
const (
	LbsPerKg    = 2.20462262185
	InchesPerCm = 0.393701
	MlPerFlOz   = 29.5735
)

// LbsToKg converts pounds to kilograms.
func LbsToKg(lbs float64) float64 { return lbs / LbsPerKg }

// KgToLbs converts kilograms to pounds.
func KgToLbs(kg float64) float64 { return kg * LbsPerKg }

// InchesToCm converts inches to centimeters.
func InchesToCm(in float64) float64 { return in / InchesPerCm }

// CmToInches converts centimeters to inches.
func CmToInches(cm float64) float64 { return cm * InchesPerCm }

// FormatWeight renders a stored lbs value in the user's display units.
func FormatWeight(weightLbs float64, units model.UnitSystem) string {
	if units == model.UnitMetric {
		return fmt.Sprintf("%.1f kg", LbsToKg(weightLbs))
	}
	return fmt.Sprintf("%.1f lbs", weightLbs)
}

// FormatHeight renders a stored inches value in the user's display units;
// imperial display uses feet and inches.
func FormatHeight(heightInches float64, units model.UnitSystem) string {
	if units == model.UnitMetric {
		return fmt.Sprintf("%.0f cm", InchesToCm(heightInches))
	}
	feet := int(heightInches) / 12
	inches := int(math.Round(math.Mod(heightInches, 12)))
	return fmt.Sprintf("%d' %d\"", feet, inches)
}

// FormatWater renders a stored fl oz value in the user's display units.
func FormatWater(flOz float64, units model.UnitSystem) string {
	if units == model.UnitMetric {
		return fmt.Sprintf("%.0f ml", flOz*MlPerFlOz)
	}
	return fmt.Sprintf("%.0f fl oz", flOz)
}

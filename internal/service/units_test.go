package service

import (
	"testing"

	"github.com/calai-app/calai/pkg/model"
	"github.com/stretchr/testify/assert"
)

func TestWeightConversionRoundTrip(t *testing.T) {
	assert.InDelta(t, 81.65, LbsToKg(180), 0.01)
	assert.InDelta(t, 180, KgToLbs(LbsToKg(180)), 1e-9)
}

func TestHeightConversionRoundTrip(t *testing.T) {
	assert.InDelta(t, 177.8, InchesToCm(70), 0.01)
	assert.InDelta(t, 70, CmToInches(InchesToCm(70)), 1e-9)
}

func TestFormatWeight(t *testing.T) {
	assert.Equal(t, "180.0 lbs", FormatWeight(180, model.UnitImperial))
	assert.Equal(t, "81.6 kg", FormatWeight(180, model.UnitMetric))
}

func TestFormatHeight(t *testing.T) {
	assert.Equal(t, "5' 10\"", FormatHeight(70, model.UnitImperial))
	assert.Equal(t, "178 cm", FormatHeight(70, model.UnitMetric))
}

func TestFormatWater(t *testing.T) {
	assert.Equal(t, "64 fl oz", FormatWater(64, model.UnitImperial))
	assert.Equal(t, "1893 ml", FormatWater(64, model.UnitMetric))
}

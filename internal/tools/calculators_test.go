package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFertilizerRecommendsAllThree(t *testing.T) {
	out, err := FertilizerTool{}.Call(context.Background(), map[string]any{
		"crop":       "wheat",
		"area_acres": 2.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Urea:")
	assert.Contains(t, out, "DAP:")
	assert.Contains(t, out, "MOP:")
	assert.Contains(t, out, "Total cost:")
}

func TestFertilizerSufficientSoil(t *testing.T) {
	// Soil test values high enough to cover every wheat requirement.
	out, err := FertilizerTool{}.Call(context.Background(), map[string]any{
		"crop":           "wheat",
		"area_acres":     1.0,
		"nitrogen_ppm":   200.0,
		"phosphorus_ppm": 200.0,
		"potassium_ppm":  200.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "sufficient nutrients")
}

func TestFertilizerUnknownCrop(t *testing.T) {
	out, err := FertilizerTool{}.Call(context.Background(), map[string]any{
		"crop":       "quinoa",
		"area_acres": 1.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "not found")
	assert.Contains(t, out, "available_crops")
}

func TestFertilizerAcidicSoilIncreasesDose(t *testing.T) {
	base, err := FertilizerTool{}.Call(context.Background(), map[string]any{
		"crop": "rice", "area_acres": 1.0,
	})
	assert.NoError(t, err)

	acidic, err := FertilizerTool{}.Call(context.Background(), map[string]any{
		"crop": "rice", "area_acres": 1.0, "soil_ph": 5.0,
	})
	assert.NoError(t, err)
	assert.NotEqual(t, base, acidic)
}

func TestIrrigationPlan(t *testing.T) {
	out, err := IrrigationTool{}.Call(context.Background(), map[string]any{
		"crop":              "wheat",
		"area_acres":        1.0,
		"irrigation_method": "drip",
		"growth_stage":      "flowering",
		"season":            "rabi",
	})
	assert.NoError(t, err)
	// 5.5 mm * 1.0 * 1.0 * 4047 L / 0.90 efficiency
	assert.Contains(t, out, "Daily water need: 24732 liters")
	assert.Contains(t, out, "Irrigate every 1 days")
	assert.Contains(t, out, "Critical stage")
}

func TestIrrigationUnknownMethod(t *testing.T) {
	out, err := IrrigationTool{}.Call(context.Background(), map[string]any{
		"crop":              "wheat",
		"area_acres":        1.0,
		"irrigation_method": "bucket",
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "not supported")
	assert.Contains(t, out, "drip")
}

func TestIrrigationDefaultsStageAndSeason(t *testing.T) {
	out, err := IrrigationTool{}.Call(context.Background(), map[string]any{
		"crop":              "rice",
		"area_acres":        2.0,
		"irrigation_method": "flood",
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Irrigation plan for 2 acres of rice using flood")
	assert.NotContains(t, out, "Critical stage")
}

func TestSeedRequirement(t *testing.T) {
	out, err := SeedTool{}.Call(context.Background(), map[string]any{
		"crop":            "wheat",
		"farm_area_acres": 3.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Total seed needed: 150 kg")
	assert.Contains(t, out, "Estimated cost: Rs. 3750")
	assert.Contains(t, out, "Plant spacing: 20cm x 2cm")
}

func TestSeedCustomRateOverridesDefault(t *testing.T) {
	out, err := SeedTool{}.Call(context.Background(), map[string]any{
		"crop":                  "wheat",
		"farm_area_acres":       1.0,
		"seed_rate_kg_per_acre": 60.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Total seed needed: 60 kg")
}

func TestSeedCropAdvice(t *testing.T) {
	out, err := SeedTool{}.Call(context.Background(), map[string]any{
		"crop": "tomato", "farm_area_acres": 1.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "nursery")
}

func TestPesticideParseDosage(t *testing.T) {
	cases := []struct {
		in     string
		amount float64
		unit   dosageUnit
	}{
		{"2ml/L", 2, dosageMlPerLiter},
		{"2.5g/L", 2.5, dosageGPerLiter},
		{"500g/ha", 500, dosageGPerHectare},
		{"1L/ha", 1000, dosageMlPerHectare},
		{"1kg/ha", 1000, dosageGPerHectare},
		{"0.5 ml/L", 0.5, dosageMlPerLiter},
		{"garbage", 0, dosageUnknown},
		{"2ml", 0, dosageUnknown},
	}
	for _, tc := range cases {
		amount, unit := parseDosage(tc.in)
		assert.Equal(t, tc.amount, amount, tc.in)
		assert.Equal(t, tc.unit, unit, tc.in)
	}
}

func TestPesticideMixingPerLiter(t *testing.T) {
	out, err := PesticideTool{}.Call(context.Background(), map[string]any{
		"chemical_name":      "chlorpyrifos",
		"dosage_per_hectare": "2ml/L",
		"tank_size_liters":   15.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Mix 30.0 ml of chlorpyrifos in 15 liters water")
	assert.Contains(t, out, "SAFETY")
}

func TestPesticideMixingPerHectare(t *testing.T) {
	// 500 g/ha over 250 L/ha spray volume = 2 g/L, times 100 L tank.
	out, err := PesticideTool{}.Call(context.Background(), map[string]any{
		"chemical_name":      "mancozeb",
		"dosage_per_hectare": "500g/ha",
		"tank_size_liters":   100.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Mix 200.0 grams of mancozeb in 100 liters water")
}

func TestPesticideBadDosage(t *testing.T) {
	out, err := PesticideTool{}.Call(context.Background(), map[string]any{
		"chemical_name":      "chlorpyrifos",
		"dosage_per_hectare": "lots",
		"tank_size_liters":   15.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "could not parse dosage format")
}

func TestProfitabilityProfit(t *testing.T) {
	out, err := ProfitabilityTool{}.Call(context.Background(), map[string]any{
		"crop":                     "wheat",
		"area_acres":               2.0,
		"seed_cost_per_acre":       2500.0,
		"fertilizer_cost_per_acre": 4000.0,
		"labor_cost_per_acre":      8000.0,
		"irrigation_cost_per_acre": 3000.0,
		"pesticide_cost_per_acre":  2000.0,
		"other_costs_per_acre":     2000.0,
		"expected_yield_per_acre":  25.0,
		"market_price_per_unit":    2200.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Total cost: Rs. 21500 per acre")
	assert.Contains(t, out, "Expected revenue: Rs. 55000 per acre")
	assert.Contains(t, out, "Profit: Rs. 33500 per acre")
	assert.Contains(t, out, "Break-even price: Rs. 860 per quintal")
}

func TestProfitabilityLoss(t *testing.T) {
	out, err := ProfitabilityTool{}.Call(context.Background(), map[string]any{
		"crop":                     "rice",
		"area_acres":               1.0,
		"seed_cost_per_acre":       5000.0,
		"fertilizer_cost_per_acre": 10000.0,
		"labor_cost_per_acre":      20000.0,
		"irrigation_cost_per_acre": 8000.0,
		"pesticide_cost_per_acre":  5000.0,
		"other_costs_per_acre":     5000.0,
		"expected_yield_per_acre":  10.0,
		"market_price_per_unit":    2000.0,
	})
	assert.NoError(t, err)
	assert.Contains(t, out, "Loss:")
	assert.Contains(t, out, "Consider cost reduction")
}

func TestProfitabilityYieldUnitConversion(t *testing.T) {
	out, err := ProfitabilityTool{}.Call(context.Background(), map[string]any{
		"crop":                     "maize",
		"area_acres":               1.0,
		"seed_cost_per_acre":       2000.0,
		"fertilizer_cost_per_acre": 4500.0,
		"labor_cost_per_acre":      8000.0,
		"irrigation_cost_per_acre": 3500.0,
		"pesticide_cost_per_acre":  2000.0,
		"other_costs_per_acre":     2000.0,
		"expected_yield_per_acre":  3500.0,
		"market_price_per_unit":    1800.0,
		"yield_unit":               "kg",
	})
	assert.NoError(t, err)
	// 3500 kg = 35 quintal at Rs. 1800
	assert.Contains(t, out, "Expected revenue: Rs. 63000 per acre")
}

func TestFloatArgCoercion(t *testing.T) {
	args := map[string]any{
		"f": 2.5,
		"i": 3,
		"s": "4.5",
		"b": "nope",
	}
	assert.Equal(t, 2.5, floatArg(args, "f", 0))
	assert.Equal(t, 3.0, floatArg(args, "i", 0))
	assert.Equal(t, 4.5, floatArg(args, "s", 0))
	assert.Equal(t, 9.0, floatArg(args, "b", 9))
	assert.Equal(t, 9.0, floatArg(args, "missing", 9))
}

func TestUnknownCropPayloadListsCrops(t *testing.T) {
	out, err := unknownCropPayload(cropNutrients)
	assert.NoError(t, err)
	assert.Contains(t, out, "wheat")
	assert.True(t, strings.Contains(out, "available_crops"))
}

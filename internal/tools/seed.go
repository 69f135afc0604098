package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/kheti-ai/kheti/internal/llm"
)

type seedData struct {
	SeedRateKg      float64 // kg per acre
	RowSpacingCm    float64
	PlantSpacingCm  float64
	SeedsPerKg      float64
	GerminationRate float64 // percent
	CostPerKg       float64 // rupees
}

var cropSeeds = map[string]seedData{
	"wheat":     {SeedRateKg: 50, RowSpacingCm: 20, PlantSpacingCm: 2, SeedsPerKg: 33000, GerminationRate: 85, CostPerKg: 25},
	"rice":      {SeedRateKg: 25, RowSpacingCm: 20, PlantSpacingCm: 15, SeedsPerKg: 45000, GerminationRate: 80, CostPerKg: 40},
	"cotton":    {SeedRateKg: 5, RowSpacingCm: 45, PlantSpacingCm: 15, SeedsPerKg: 8000, GerminationRate: 75, CostPerKg: 4000},
	"maize":     {SeedRateKg: 20, RowSpacingCm: 60, PlantSpacingCm: 20, SeedsPerKg: 3500, GerminationRate: 90, CostPerKg: 250},
	"sugarcane": {SeedRateKg: 3750, RowSpacingCm: 90, PlantSpacingCm: 30, SeedsPerKg: 1, GerminationRate: 70, CostPerKg: 2},
	"soybean":   {SeedRateKg: 30, RowSpacingCm: 30, PlantSpacingCm: 5, SeedsPerKg: 6000, GerminationRate: 85, CostPerKg: 60},
	"groundnut": {SeedRateKg: 100, RowSpacingCm: 30, PlantSpacingCm: 10, SeedsPerKg: 2200, GerminationRate: 75, CostPerKg: 80},
	"mustard":   {SeedRateKg: 4, RowSpacingCm: 30, PlantSpacingCm: 10, SeedsPerKg: 300000, GerminationRate: 80, CostPerKg: 120},
	"onion":     {SeedRateKg: 4, RowSpacingCm: 15, PlantSpacingCm: 10, SeedsPerKg: 300000, GerminationRate: 70, CostPerKg: 800},
	"tomato":    {SeedRateKg: 0.2, RowSpacingCm: 60, PlantSpacingCm: 45, SeedsPerKg: 350000, GerminationRate: 85, CostPerKg: 15000},
	"potato":    {SeedRateKg: 1200, RowSpacingCm: 60, PlantSpacingCm: 20, SeedsPerKg: 25, GerminationRate: 90, CostPerKg: 15},
}

// SeedTool estimates seed quantity, spacing and cost for a farm area
type SeedTool struct{}

func (SeedTool) Name() string {
	return "seed_calculator"
}

func (SeedTool) Description() string {
	return "Calculate seed quantity, spacing and cost needed for a crop and farm area."
}

func (SeedTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "crop", Type: "string", Description: "Name of the crop, e.g. wheat, rice, cotton", Required: true},
		{Name: "farm_area_acres", Type: "number", Description: "Total farm area in acres", Required: true},
		{Name: "row_spacing_cm", Type: "number", Description: "Distance between rows in cm (optional)", Required: false},
		{Name: "plant_spacing_cm", Type: "number", Description: "Distance between plants in cm (optional)", Required: false},
		{Name: "seed_rate_kg_per_acre", Type: "number", Description: "Custom seed rate in kg per acre (optional)", Required: false},
	}
}

func (SeedTool) Call(ctx context.Context, args map[string]any) (string, error) {
	crop := strings.ToLower(strings.TrimSpace(stringArg(args, "crop")))
	area := floatArg(args, "farm_area_acres", 1)

	info, ok := cropSeeds[crop]
	if !ok {
		return unknownCropPayload(cropSeeds)
	}

	seedRate := floatArg(args, "seed_rate_kg_per_acre", 0)
	if seedRate <= 0 {
		seedRate = info.SeedRateKg
	}
	rowSpacing := floatArg(args, "row_spacing_cm", 0)
	if rowSpacing <= 0 {
		rowSpacing = info.RowSpacingCm
	}
	plantSpacing := floatArg(args, "plant_spacing_cm", 0)
	if plantSpacing <= 0 {
		plantSpacing = info.PlantSpacingCm
	}

	totalSeedKg := seedRate * area
	totalCost := totalSeedKg * info.CostPerKg

	var b strings.Builder
	fmt.Fprintf(&b, "Seed requirement for %g acres of %s:\n", area, crop)
	fmt.Fprintf(&b, "- Total seed needed: %g kg\n", totalSeedKg)
	fmt.Fprintf(&b, "- Estimated cost: Rs. %.0f\n", totalCost)
	fmt.Fprintf(&b, "- Plant spacing: %gcm x %gcm\n", rowSpacing, plantSpacing)

	switch crop {
	case "tomato":
		b.WriteString("- Raise seedlings in nursery first, then transplant")
	case "cotton":
		b.WriteString("- Treat seeds with fungicide before sowing")
	case "maize":
		b.WriteString("- Plant 2-3 seeds per hill, thin to 1 plant later")
	default:
		b.WriteString("- Sow at 2-3 cm depth")
	}

	return b.String(), nil
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/kheti-ai/kheti/internal/llm"
)

type cropWater struct {
	PeakMMDay float64
	TotalMM   float64
}

// Peak daily water need (mm/day) and seasonal total (mm)
var cropWaterNeeds = map[string]cropWater{
	"wheat":     {PeakMMDay: 5.5, TotalMM: 450},
	"rice":      {PeakMMDay: 7.5, TotalMM: 1200},
	"cotton":    {PeakMMDay: 6.0, TotalMM: 700},
	"maize":     {PeakMMDay: 6.5, TotalMM: 500},
	"sugarcane": {PeakMMDay: 8.0, TotalMM: 1800},
	"soybean":   {PeakMMDay: 5.0, TotalMM: 450},
	"groundnut": {PeakMMDay: 4.5, TotalMM: 500},
	"mustard":   {PeakMMDay: 4.0, TotalMM: 300},
	"onion":     {PeakMMDay: 4.5, TotalMM: 350},
	"tomato":    {PeakMMDay: 5.5, TotalMM: 400},
	"potato":    {PeakMMDay: 5.0, TotalMM: 350},
}

var irrigationEfficiency = map[string]float64{
	"drip":      0.90,
	"sprinkler": 0.75,
	"flood":     0.45,
	"furrow":    0.60,
	"micro":     0.85,
}

var stageMultipliers = map[string]float64{
	"sowing":     0.3,
	"vegetative": 0.7,
	"flowering":  1.0,
	"fruiting":   1.0,
	"maturity":   0.4,
}

var seasonMultipliers = map[string]float64{
	"kharif": 0.8,
	"rabi":   1.0,
	"summer": 1.3,
}

type irrigationSchedule struct {
	FrequencyDays int
	HoursPerDay   float64
}

var irrigationSchedules = map[string]irrigationSchedule{
	"drip":      {FrequencyDays: 1, HoursPerDay: 2},
	"sprinkler": {FrequencyDays: 3, HoursPerDay: 4},
	"flood":     {FrequencyDays: 7, HoursPerDay: 6},
	"furrow":    {FrequencyDays: 5, HoursPerDay: 5},
	"micro":     {FrequencyDays: 2, HoursPerDay: 3},
}

// Pumping cost in rupees per 1000 liters
var irrigationCostPer1000L = map[string]float64{
	"drip":      2.5,
	"sprinkler": 4.0,
	"flood":     8.0,
	"furrow":    6.0,
	"micro":     3.5,
}

// IrrigationTool computes daily water need, schedule and cost for a crop
type IrrigationTool struct{}

func (IrrigationTool) Name() string {
	return "irrigation_calculator"
}

func (IrrigationTool) Description() string {
	return "Calculate irrigation water requirement, schedule and daily cost for a crop by area and irrigation method."
}

func (IrrigationTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "crop", Type: "string", Description: "Name of the crop, e.g. wheat, rice, cotton", Required: true},
		{Name: "area_acres", Type: "number", Description: "Farm area in acres", Required: true},
		{Name: "irrigation_method", Type: "string", Description: "drip, sprinkler, flood, furrow or micro", Required: true},
		{Name: "growth_stage", Type: "string", Description: "sowing, vegetative, flowering, fruiting or maturity", Required: false},
		{Name: "season", Type: "string", Description: "kharif, rabi or summer", Required: false},
	}
}

func (IrrigationTool) Call(ctx context.Context, args map[string]any) (string, error) {
	crop := strings.ToLower(strings.TrimSpace(stringArg(args, "crop")))
	method := strings.ToLower(strings.TrimSpace(stringArg(args, "irrigation_method")))
	stage := strings.ToLower(strings.TrimSpace(stringArg(args, "growth_stage")))
	season := strings.ToLower(strings.TrimSpace(stringArg(args, "season")))
	area := floatArg(args, "area_acres", 1)

	info, ok := cropWaterNeeds[crop]
	if !ok {
		return unknownCropPayload(cropWaterNeeds)
	}

	efficiency, ok := irrigationEfficiency[method]
	if !ok {
		methods := make([]string, 0, len(irrigationEfficiency))
		for name := range irrigationEfficiency {
			methods = append(methods, name)
		}
		sort.Strings(methods)
		out, err := json.Marshal(map[string]any{
			"error":             "irrigation method not supported",
			"available_methods": methods,
		})
		if err != nil {
			return Unavailable, nil
		}
		return string(out), nil
	}

	stageFactor, ok := stageMultipliers[stage]
	if !ok {
		stageFactor = 0.7
	}
	seasonFactor, ok := seasonMultipliers[season]
	if !ok {
		seasonFactor = 1.0
	}

	// 1 mm of water over 1 acre is about 4047 liters
	adjustedMM := info.PeakMMDay * stageFactor * seasonFactor
	totalLiters := adjustedMM * 4047 * area
	actualLiters := totalLiters / efficiency

	sched := irrigationSchedules[method]
	dailyCost := (actualLiters / 1000) * irrigationCostPer1000L[method]

	var b strings.Builder
	fmt.Fprintf(&b, "Irrigation plan for %g acres of %s using %s:\n", area, crop, method)
	fmt.Fprintf(&b, "- Daily water need: %.0f liters\n", actualLiters)
	fmt.Fprintf(&b, "- Irrigate every %d days for %g hours\n", sched.FrequencyDays, sched.HoursPerDay)
	fmt.Fprintf(&b, "- Daily cost: Rs. %.0f\n", dailyCost)
	if stage == "flowering" || stage == "fruiting" {
		fmt.Fprintf(&b, "- Critical stage: Don't skip watering during %s\n", stage)
	}
	b.WriteString("- Best time: Early morning or evening")
	return b.String(), nil
}

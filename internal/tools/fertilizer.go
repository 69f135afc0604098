package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/kheti-ai/kheti/internal/llm"
)

type nutrientNeed struct {
	N, P, K float64
}

// N-P-K requirement in kg per acre
var cropNutrients = map[string]nutrientNeed{
	"wheat":     {N: 120, P: 60, K: 40},
	"rice":      {N: 100, P: 50, K: 50},
	"cotton":    {N: 150, P: 75, K: 75},
	"maize":     {N: 120, P: 60, K: 50},
	"sugarcane": {N: 200, P: 80, K: 100},
	"soybean":   {N: 40, P: 80, K: 50},
	"groundnut": {N: 25, P: 50, K: 75},
	"mustard":   {N: 80, P: 40, K: 40},
	"barley":    {N: 80, P: 40, K: 30},
	"gram":      {N: 20, P: 50, K: 30},
	"tomato":    {N: 150, P: 100, K: 120},
	"onion":     {N: 100, P: 50, K: 100},
	"potato":    {N: 150, P: 75, K: 150},
}

// Approximate Indian market prices per kg
const (
	ureaPricePerKg = 6.5
	dapPricePerKg  = 27.0
	mopPricePerKg  = 17.0
)

// FertilizerTool computes urea, DAP and MOP doses from soil test values
type FertilizerTool struct{}

func (FertilizerTool) Name() string {
	return "fertilizer_calculator"
}

func (FertilizerTool) Description() string {
	return "Calculate fertilizer dosage (urea, DAP, MOP) and cost for a crop based on area and soil test values."
}

func (FertilizerTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "crop", Type: "string", Description: "Name of the crop, e.g. wheat, rice, cotton", Required: true},
		{Name: "area_acres", Type: "number", Description: "Farm area in acres", Required: true},
		{Name: "nitrogen_ppm", Type: "number", Description: "Available nitrogen in soil (ppm)", Required: false},
		{Name: "phosphorus_ppm", Type: "number", Description: "Available phosphorus in soil (ppm)", Required: false},
		{Name: "potassium_ppm", Type: "number", Description: "Available potassium in soil (ppm)", Required: false},
		{Name: "soil_ph", Type: "number", Description: "Soil pH, default 7.0", Required: false},
	}
}

func (FertilizerTool) Call(ctx context.Context, args map[string]any) (string, error) {
	crop := strings.ToLower(strings.TrimSpace(stringArg(args, "crop")))
	area := floatArg(args, "area_acres", 1)
	soilPH := floatArg(args, "soil_ph", 7.0)

	req, ok := cropNutrients[crop]
	if !ok {
		return unknownCropPayload(cropNutrients)
	}

	// Soil test ppm to kg/acre, roughly 1 ppm = 0.9 kg/acre
	availN := floatArg(args, "nitrogen_ppm", 0) * 0.9
	availP := floatArg(args, "phosphorus_ppm", 0) * 0.9
	availK := floatArg(args, "potassium_ppm", 0) * 0.9

	nNeeded := math.Max(0, req.N-availN)
	pNeeded := math.Max(0, req.P-availP)
	kNeeded := math.Max(0, req.K-availK)

	phFactor := 1.0
	switch {
	case soilPH < 6.0:
		phFactor = 1.2
	case soilPH > 8.0:
		phFactor = 1.1
	}
	nNeeded *= phFactor
	pNeeded *= phFactor
	kNeeded *= phFactor

	// DAP carries 46% P2O5 (P x 2.29) and 18% N; the nitrogen it
	// supplies comes off the urea dose. Urea is 46% N, MOP 60% K2O.
	dapKg := (pNeeded * 2.29 / 0.46) * area
	nitrogenFromDAP := dapKg * 0.18 / area
	ureaKg := (math.Max(0, nNeeded-nitrogenFromDAP) / 0.46) * area
	mopKg := (kNeeded * 1.2 / 0.60) * area

	ureaKg = math.Round(ureaKg*10) / 10
	dapKg = math.Round(dapKg*10) / 10
	mopKg = math.Round(mopKg*10) / 10

	if ureaKg == 0 && dapKg == 0 && mopKg == 0 {
		return fmt.Sprintf("For %g acres of %s: Your soil has sufficient nutrients. No additional fertilizer needed right now.", area, crop), nil
	}

	ureaCost := ureaKg * ureaPricePerKg
	dapCost := dapKg * dapPricePerKg
	mopCost := mopKg * mopPricePerKg

	var b strings.Builder
	fmt.Fprintf(&b, "Fertilizer recommendation for %g acres of %s:\n", area, crop)
	if ureaKg > 0 {
		fmt.Fprintf(&b, "- Urea: %g kg (Rs. %.0f)\n", ureaKg, ureaCost)
	}
	if dapKg > 0 {
		fmt.Fprintf(&b, "- DAP: %g kg (Rs. %.0f)\n", dapKg, dapCost)
	}
	if mopKg > 0 {
		fmt.Fprintf(&b, "- MOP: %g kg (Rs. %.0f)\n", mopKg, mopCost)
	}
	fmt.Fprintf(&b, "Total cost: Rs. %.0f\n", ureaCost+dapCost+mopCost)
	b.WriteString("Apply DAP during land preparation, split urea in 3 doses.")
	return b.String(), nil
}

func unknownCropPayload[V any](table map[string]V) (string, error) {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)
	out, err := json.Marshal(map[string]any{
		"error":           "crop not found in database",
		"available_crops": names,
	})
	if err != nil {
		return Unavailable, nil
	}
	return string(out), nil
}

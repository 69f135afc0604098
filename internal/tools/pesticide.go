package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kheti-ai/kheti/internal/llm"
)

// Assumed spray volume in liters per hectare for per-area dosages
const standardSprayVolumeLPerHa = 250

type pesticideInfo struct {
	Type         string
	StandardDose string
}

var pesticides = map[string]pesticideInfo{
	"chlorpyrifos":       {Type: "insecticide", StandardDose: "2ml/L"},
	"imidacloprid":       {Type: "insecticide", StandardDose: "0.5ml/L"},
	"acetamiprid":        {Type: "insecticide", StandardDose: "1ml/L"},
	"mancozeb":           {Type: "fungicide", StandardDose: "2.5g/L"},
	"carbendazim":        {Type: "fungicide", StandardDose: "1ml/L"},
	"propiconazole":      {Type: "fungicide", StandardDose: "1ml/L"},
	"2,4-d":              {Type: "herbicide", StandardDose: "2ml/L"},
	"glyphosate":         {Type: "herbicide", StandardDose: "2ml/L"},
	"atrazine":           {Type: "herbicide", StandardDose: "2.5ml/L"},
	"cypermethrin":       {Type: "insecticide", StandardDose: "1ml/L"},
	"lambda cyhalothrin": {Type: "insecticide", StandardDose: "1ml/L"},
	"thiamethoxam":       {Type: "insecticide", StandardDose: "0.5ml/L"},
}

// Average market price in rupees per liter by chemical class
var pesticideCostPerLiter = map[string]float64{
	"insecticide": 500,
	"fungicide":   400,
	"herbicide":   300,
}

type dosageUnit int

const (
	dosageUnknown dosageUnit = iota
	dosageMlPerLiter
	dosageGPerLiter
	dosageMlPerHectare
	dosageGPerHectare
)

// parseDosage understands strings like "2ml/L", "2.5g/L", "500g/ha",
// "1L/ha" and "1kg/ha".
func parseDosage(s string) (float64, dosageUnit) {
	s = strings.ToLower(strings.TrimSpace(s))
	parts := strings.SplitN(s, "/", 2)
	if len(parts) != 2 {
		return 0, dosageUnknown
	}
	amount := strings.TrimSpace(parts[0])
	per := strings.TrimSpace(parts[1])

	num := func(suffix string) (float64, bool) {
		v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(amount, suffix)), 64)
		return v, err == nil
	}

	switch per {
	case "l":
		switch {
		case strings.HasSuffix(amount, "ml"):
			if v, ok := num("ml"); ok {
				return v, dosageMlPerLiter
			}
		case strings.HasSuffix(amount, "g"):
			if v, ok := num("g"); ok {
				return v, dosageGPerLiter
			}
		case strings.HasSuffix(amount, "l"):
			if v, ok := num("l"); ok {
				return v * 1000, dosageMlPerLiter
			}
		}
	case "ha":
		switch {
		case strings.HasSuffix(amount, "ml"):
			if v, ok := num("ml"); ok {
				return v, dosageMlPerHectare
			}
		case strings.HasSuffix(amount, "kg"):
			if v, ok := num("kg"); ok {
				return v * 1000, dosageGPerHectare
			}
		case strings.HasSuffix(amount, "g"):
			if v, ok := num("g"); ok {
				return v, dosageGPerHectare
			}
		case strings.HasSuffix(amount, "l"):
			if v, ok := num("l"); ok {
				return v * 1000, dosageMlPerHectare
			}
		}
	}
	return 0, dosageUnknown
}

// PesticideTool computes tank mixing quantities from a labelled dosage
type PesticideTool struct{}

func (PesticideTool) Name() string {
	return "pesticide_calculator"
}

func (PesticideTool) Description() string {
	return "Calculate exact pesticide mixing quantity for a sprayer tank from the labelled dosage, with safety guidance."
}

func (PesticideTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "chemical_name", Type: "string", Description: "Name or active ingredient of the pesticide", Required: true},
		{Name: "dosage_per_hectare", Type: "string", Description: `Recommended dosage, e.g. "2ml/L", "500g/ha", "1L/ha"`, Required: true},
		{Name: "tank_size_liters", Type: "number", Description: "Sprayer tank capacity in liters", Required: true},
		{Name: "target_area_acres", Type: "number", Description: "Area to be sprayed in acres", Required: false},
	}
}

func (PesticideTool) Call(ctx context.Context, args map[string]any) (string, error) {
	chemical := strings.TrimSpace(stringArg(args, "chemical_name"))
	dosage := stringArg(args, "dosage_per_hectare")
	tank := floatArg(args, "tank_size_liters", 15)

	amount, unit := parseDosage(dosage)
	if unit == dosageUnknown {
		out, err := json.Marshal(map[string]any{
			"error":            "could not parse dosage format",
			"expected_formats": []string{"2ml/L", "500g/ha", "1L/ha", "2.5g/L"},
			"provided":         dosage,
		})
		if err != nil {
			return Unavailable, nil
		}
		return string(out), nil
	}

	var pesticideMl, pesticideG float64
	switch unit {
	case dosageMlPerLiter:
		pesticideMl = amount * tank
	case dosageGPerLiter:
		pesticideG = amount * tank
	case dosageMlPerHectare:
		pesticideMl = amount / standardSprayVolumeLPerHa * tank
	case dosageGPerHectare:
		pesticideG = amount / standardSprayVolumeLPerHa * tank
	}

	areaCoveredAcres := tank / standardSprayVolumeLPerHa / 0.4047

	info, ok := pesticides[strings.ToLower(chemical)]
	if !ok {
		info = pesticideInfo{Type: "unknown"}
	}
	costPerLiter, ok := pesticideCostPerLiter[info.Type]
	if !ok {
		costPerLiter = 400
	}
	cost := (pesticideMl / 1000) * costPerLiter

	var b strings.Builder
	fmt.Fprintf(&b, "Pesticide mixing for %gL tank:\n", tank)
	if pesticideMl > 0 {
		fmt.Fprintf(&b, "- Mix %.1f ml of %s in %g liters water\n", pesticideMl, chemical, tank)
	} else if pesticideG > 0 {
		fmt.Fprintf(&b, "- Mix %.1f grams of %s in %g liters water\n", pesticideG, chemical, tank)
	}
	fmt.Fprintf(&b, "- This will cover %.1f acres\n", areaCoveredAcres)
	fmt.Fprintf(&b, "- Cost: Rs. %.0f\n", cost)
	b.WriteString("- SAFETY: Wear gloves, mask, and goggles\n")
	b.WriteString("- Spray during early morning or evening")
	return b.String(), nil
}

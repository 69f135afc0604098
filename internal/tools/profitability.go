package tools

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kheti-ai/kheti/internal/llm"
)

type standardCost struct {
	Seed, Fertilizer, Labor, Irrigation, Pesticide, Other float64
	Total                                                 float64
	YieldQuintal                                          float64
	PricePerQuintal                                       float64
}

// Reference per-acre cultivation costs in rupees
var standardCosts = map[string]standardCost{
	"wheat":     {Seed: 2500, Fertilizer: 4000, Labor: 8000, Irrigation: 3000, Pesticide: 2000, Other: 2000, Total: 21500, YieldQuintal: 25, PricePerQuintal: 2200},
	"rice":      {Seed: 1500, Fertilizer: 5000, Labor: 12000, Irrigation: 5000, Pesticide: 2500, Other: 2500, Total: 28500, YieldQuintal: 30, PricePerQuintal: 2000},
	"cotton":    {Seed: 1200, Fertilizer: 6000, Labor: 15000, Irrigation: 4000, Pesticide: 4000, Other: 3000, Total: 33200, YieldQuintal: 12, PricePerQuintal: 6000},
	"maize":     {Seed: 2000, Fertilizer: 4500, Labor: 8000, Irrigation: 3500, Pesticide: 2000, Other: 2000, Total: 22000, YieldQuintal: 35, PricePerQuintal: 1800},
	"sugarcane": {Seed: 15000, Fertilizer: 8000, Labor: 20000, Irrigation: 8000, Pesticide: 3000, Other: 5000, Total: 59000, YieldQuintal: 400, PricePerQuintal: 350},
}

// ProfitabilityTool produces a per-acre cost, revenue and break-even
// analysis for a crop.
type ProfitabilityTool struct{}

func (ProfitabilityTool) Name() string {
	return "profitability_calculator"
}

func (ProfitabilityTool) Description() string {
	return "Calculate farming profitability per acre: costs, revenue, profit margin, break-even price and ROI."
}

func (ProfitabilityTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "crop", Type: "string", Description: "Name of the crop", Required: true},
		{Name: "area_acres", Type: "number", Description: "Total farm area in acres", Required: true},
		{Name: "seed_cost_per_acre", Type: "number", Description: "Seed cost per acre in rupees", Required: true},
		{Name: "fertilizer_cost_per_acre", Type: "number", Description: "Fertilizer cost per acre in rupees", Required: true},
		{Name: "labor_cost_per_acre", Type: "number", Description: "Labor cost per acre in rupees", Required: true},
		{Name: "irrigation_cost_per_acre", Type: "number", Description: "Irrigation cost per acre in rupees", Required: true},
		{Name: "pesticide_cost_per_acre", Type: "number", Description: "Pesticide cost per acre in rupees", Required: true},
		{Name: "other_costs_per_acre", Type: "number", Description: "Other costs per acre in rupees", Required: true},
		{Name: "expected_yield_per_acre", Type: "number", Description: "Expected yield per acre", Required: true},
		{Name: "market_price_per_unit", Type: "number", Description: "Current market price per unit in rupees", Required: true},
		{Name: "yield_unit", Type: "string", Description: "quintal, kg or tonnes", Required: false},
	}
}

func (ProfitabilityTool) Call(ctx context.Context, args map[string]any) (string, error) {
	crop := strings.TrimSpace(stringArg(args, "crop"))
	area := floatArg(args, "area_acres", 1)

	seedCost := floatArg(args, "seed_cost_per_acre", 0)
	fertCost := floatArg(args, "fertilizer_cost_per_acre", 0)
	laborCost := floatArg(args, "labor_cost_per_acre", 0)
	irrigCost := floatArg(args, "irrigation_cost_per_acre", 0)
	pestCost := floatArg(args, "pesticide_cost_per_acre", 0)
	otherCost := floatArg(args, "other_costs_per_acre", 0)
	yield := floatArg(args, "expected_yield_per_acre", 0)
	price := floatArg(args, "market_price_per_unit", 0)

	yieldQuintal := yield
	switch strings.ToLower(stringArg(args, "yield_unit")) {
	case "kg":
		yieldQuintal = yield / 100
	case "tonnes":
		yieldQuintal = yield * 10
	}

	costPerAcre := seedCost + fertCost + laborCost + irrigCost + pestCost + otherCost
	revenuePerAcre := yieldQuintal * price
	profitPerAcre := revenuePerAcre - costPerAcre

	marginPercent := 0.0
	if revenuePerAcre > 0 {
		marginPercent = profitPerAcre / revenuePerAcre * 100
	}
	roiPercent := 0.0
	if costPerAcre > 0 {
		roiPercent = profitPerAcre / costPerAcre * 100
	}
	breakEvenPrice := 0.0
	if yieldQuintal > 0 {
		breakEvenPrice = costPerAcre / yieldQuintal
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Profitability analysis for %g acres of %s:\n", area, crop)
	fmt.Fprintf(&b, "- Total cost: Rs. %.0f per acre\n", costPerAcre)
	fmt.Fprintf(&b, "- Expected revenue: Rs. %.0f per acre\n", revenuePerAcre)

	if profitPerAcre > 0 {
		fmt.Fprintf(&b, "- Profit: Rs. %.0f per acre (%.1f%% margin)\n", profitPerAcre, marginPercent)
		fmt.Fprintf(&b, "- Total farm profit: Rs. %.0f\n", profitPerAcre*area)
		fmt.Fprintf(&b, "- Return on investment: %.1f%%\n", roiPercent)
	} else {
		fmt.Fprintf(&b, "- Loss: Rs. %.0f per acre\n", math.Abs(profitPerAcre))
		b.WriteString("- Consider cost reduction or better prices\n")
	}
	fmt.Fprintf(&b, "- Break-even price: Rs. %.0f per quintal\n", breakEvenPrice)

	if std, ok := standardCosts[strings.ToLower(crop)]; ok {
		if costPerAcre > std.Total*1.1 {
			fmt.Fprintf(&b, "- Your costs are %.1f%% higher than standard (Rs. %.0f/acre)\n", (costPerAcre-std.Total)/std.Total*100, std.Total)
		}
		if yieldQuintal < std.YieldQuintal*0.9 {
			fmt.Fprintf(&b, "- Your yield is %.1f%% lower than standard (%.0f quintal/acre)\n", (std.YieldQuintal-yieldQuintal)/std.YieldQuintal*100, std.YieldQuintal)
		}
	}

	switch {
	case roiPercent < 15:
		b.WriteString("- Recommendation: Low profitability - review costs or crop choice")
	case marginPercent > 25:
		b.WriteString("- Recommendation: Good profitability - maintain current practices")
	default:
		b.WriteString("- Recommendation: Moderate profitability - optimize costs")
	}

	return b.String(), nil
}

package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kheti-ai/kheti/internal/llm"
)

var nationalHelplines = map[string]any{
	"Kisan Call Centre":                   "1800-180-1551",
	"NAFED Farmer Helpline":               "1800-111-622",
	"eNAM Help Desk":                      "1800-270-0224",
	"Agricultural Transport Call Centre":  []string{"1800-180-4200", "14488"},
}

var stateHelplines = map[string]string{
	"Andhra Pradesh":   "040-23317191",
	"Assam":            "0361-2265264",
	"Bihar":            "0612-221359",
	"Chhattisgarh":     "0771-2234584",
	"Delhi":            "011-120-23713399",
	"Gujarat":          "079-23256204",
	"Haryana":          "0172-705600",
	"Himachal Pradesh": "0177-2623678",
	"Jharkhand":        "0651-2233549",
	"Karnataka":        "080-22253758",
	"Kerala":           "0471-2305318",
	"Madhya Pradesh":   "0751-324811",
	"Maharashtra":      "020-26121041",
	"Odisha":           "0674-2391295",
	"Punjab":           "0181-254935",
	"Rajasthan":        "0141-2227709",
	"Tamil Nadu":       "044-24341929",
	"Uttar Pradesh":    "0522-205210",
	"Uttarakhand":      "0135-2711909",
	"West Bengal":      "033-24761492",
}

var agristackHelplines = map[string]string{
	"Uttar Pradesh": "0522-2720548",
	"Maharashtra":   "022-6789001",
	"Gujarat":       "079-23200112",
	"Rajasthan":     "0141-2710200",
}

// HelplineTool returns agricultural helpline numbers for a state or the
// national directory.
type HelplineTool struct{}

func (HelplineTool) Name() string {
	return "helpline_numbers"
}

func (HelplineTool) Description() string {
	return "Fetch agricultural helpline numbers for a specific Indian state, or national helplines. Use when a farmer asks who to call for help."
}

func (HelplineTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "state", Type: "string", Description: `Name of the Indian state, or "national" for national helplines`, Required: false},
	}
}

func (HelplineTool) Call(ctx context.Context, args map[string]any) (string, error) {
	state := strings.TrimSpace(stringArg(args, "state"))
	if state == "" {
		state = "national"
	}

	result := map[string]any{}

	if strings.EqualFold(state, "national") {
		result["national"] = nationalHelplines
	} else if name, number, ok := lookupFold(stateHelplines, state); ok {
		result[name] = number
		if _, agristack, ok := lookupFold(agristackHelplines, state); ok {
			result["agristack"] = agristack
		}
	} else {
		// Unknown state: return the whole directory like the helpdesk
		// poster would.
		result["national"] = nationalHelplines
		result["states"] = stateHelplines
	}

	out, err := json.Marshal(result)
	if err != nil {
		return Unavailable, nil
	}
	return string(out), nil
}

func lookupFold(m map[string]string, key string) (string, string, bool) {
	for k, v := range m {
		if strings.EqualFold(k, key) {
			return k, v, true
		}
	}
	return "", "", false
}

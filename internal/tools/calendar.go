package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kheti-ai/kheti/internal/llm"
)

// CropSeason holds the sowing and harvesting window for one season
type CropSeason struct {
	Sowing     string `json:"sowing"`
	Harvesting string `json:"harvesting"`
}

// state -> crop -> season -> window
var cropCalendar = map[string]map[string]map[string]CropSeason{
	"Andhra Pradesh": {
		"Paddy": {
			"Kharif": {Sowing: "May-June", Harvesting: "Nov-Dec"},
			"Rabi":   {Sowing: "Nov-Dec", Harvesting: "May-June"},
			"Summer": {Sowing: "March-April", Harvesting: "July-Aug"},
		},
		"Groundnut": {
			"Kharif": {Sowing: "Jun(B)-July(E)", Harvesting: "Sep(M)-Nov(M)"},
			"Rabi":   {Sowing: "Nov(M)-Jan(E)", Harvesting: "Feb(E)-May(B)"},
		},
		"Cotton": {
			"Kharif": {Sowing: "Jun(E)-Jul(E)", Harvesting: "Dec(E)-Mar(M)"},
		},
		"Maize": {
			"Kharif": {Sowing: "Jun(M)-Jul(M)", Harvesting: "Sep(M)-Oct(E)"},
			"Rabi":   {Sowing: "Oct(E)-Jan(M)", Harvesting: "Feb(E)-May(B)"},
		},
		"Sugarcane": {
			"Kharif": {Sowing: "Dec(E)-Jun(M)", Harvesting: "Dec(E)-May(M)"},
		},
	},
	"Assam": {
		"Paddy": {
			"Kharif": {Sowing: "Feb-March", Harvesting: "June-July"},
			"Rabi":   {Sowing: "June-July", Harvesting: "Nov-Dec"},
			"Summer": {Sowing: "Nov-Dec", Harvesting: "May-June"},
		},
		"Wheat": {
			"Rabi": {Sowing: "Nov(B)-Dec(M)", Harvesting: "Mar(B)-Apr(E)"},
		},
		"Mustard": {
			"Rabi": {Sowing: "Oct(M)-Nov(M)", Harvesting: "Jan(E)-Feb(E)"},
		},
	},
	"Bihar": {
		"Paddy": {
			"Kharif": {Sowing: "Jun(M)-Jul(E)", Harvesting: "Oct(E)-Dec(B)"},
		},
		"Wheat": {
			"Rabi": {Sowing: "Nov(M)-Dec(E)", Harvesting: "Mar(E)-Apr(E)"},
		},
		"Maize": {
			"Kharif": {Sowing: "Jun(M)-Jul(M)", Harvesting: "Sep(E)-Oct(E)"},
			"Rabi":   {Sowing: "Oct(M)-Nov(M)", Harvesting: "Apr(B)-May(B)"},
		},
	},
	"Gujarat": {
		"Groundnut": {
			"Kharif": {Sowing: "Jun(M)-Jul(M)", Harvesting: "Oct(B)-Nov(M)"},
		},
		"Cotton": {
			"Kharif": {Sowing: "May(E)-Jun(E)", Harvesting: "Nov(B)-Feb(E)"},
		},
		"Wheat": {
			"Rabi": {Sowing: "Nov(B)-Dec(B)", Harvesting: "Mar(B)-Apr(B)"},
		},
	},
	"Haryana": {
		"Wheat": {
			"Rabi": {Sowing: "Oct(E)-Nov(E)", Harvesting: "Apr(B)-Apr(E)"},
		},
		"Paddy": {
			"Kharif": {Sowing: "Jun(M)-Jul(M)", Harvesting: "Oct(B)-Nov(B)"},
		},
		"Mustard": {
			"Rabi": {Sowing: "Oct(B)-Oct(E)", Harvesting: "Feb(E)-Mar(E)"},
		},
	},
	"Madhya Pradesh": {
		"Soybean": {
			"Kharif": {Sowing: "Jun(E)-Jul(M)", Harvesting: "Sep(E)-Oct(M)"},
		},
		"Wheat": {
			"Rabi": {Sowing: "Nov(B)-Dec(B)", Harvesting: "Mar(B)-Apr(B)"},
		},
		"Gram": {
			"Rabi": {Sowing: "Oct(M)-Nov(M)", Harvesting: "Feb(E)-Mar(E)"},
		},
	},
	"Maharashtra": {
		"Cotton": {
			"Kharif": {Sowing: "Jun(B)-Jul(B)", Harvesting: "Nov(B)-Feb(E)"},
		},
		"Soybean": {
			"Kharif": {Sowing: "Jun(M)-Jul(M)", Harvesting: "Sep(E)-Oct(M)"},
		},
		"Sugarcane": {
			"Kharif": {Sowing: "Dec(E)-Feb(E)", Harvesting: "Nov-Apr"},
		},
	},
	"Punjab": {
		"Wheat": {
			"Rabi": {Sowing: "Oct(E)-Nov(M)", Harvesting: "Apr(B)-Apr(E)"},
		},
		"Paddy": {
			"Kharif": {Sowing: "Jun(M)-Jul(B)", Harvesting: "Oct(B)-Nov(B)"},
		},
		"Maize": {
			"Kharif": {Sowing: "May(E)-Jun(E)", Harvesting: "Sep(B)-Sep(E)"},
		},
	},
	"Rajasthan": {
		"Bajra": {
			"Kharif": {Sowing: "Jun(E)-Jul(M)", Harvesting: "Sep(E)-Oct(M)"},
		},
		"Mustard": {
			"Rabi": {Sowing: "Oct(B)-Nov(B)", Harvesting: "Feb(M)-Mar(M)"},
		},
		"Wheat": {
			"Rabi": {Sowing: "Nov(B)-Dec(B)", Harvesting: "Mar(M)-Apr(M)"},
		},
		"Gram": {
			"Rabi": {Sowing: "Oct(M)-Nov(M)", Harvesting: "Mar(B)-Apr(B)"},
		},
		"Groundnut": {
			"Kharif": {Sowing: "Jun(M)-Jul(M)", Harvesting: "Oct(B)-Nov(B)"},
		},
	},
	"Uttar Pradesh": {
		"Wheat": {
			"Rabi": {Sowing: "Nov(B)-Dec(M)", Harvesting: "Mar(E)-Apr(E)"},
		},
		"Paddy": {
			"Kharif": {Sowing: "Jun(M)-Jul(E)", Harvesting: "Oct(M)-Nov(E)"},
		},
		"Sugarcane": {
			"Kharif": {Sowing: "Feb(B)-Mar(E)", Harvesting: "Nov-Apr"},
		},
	},
	"West Bengal": {
		"Paddy": {
			"Kharif": {Sowing: "Jun(B)-Jul(E)", Harvesting: "Nov(B)-Dec(M)"},
			"Rabi":   {Sowing: "Dec(E)-Jan(E)", Harvesting: "Apr(E)-May(E)"},
		},
		"Jute": {
			"Kharif": {Sowing: "Mar(M)-May(M)", Harvesting: "Jul(M)-Sep(M)"},
		},
		"Mustard": {
			"Rabi": {Sowing: "Oct(M)-Nov(M)", Harvesting: "Jan(E)-Feb(E)"},
		},
	},
}

// CalendarTool answers sowing and harvesting questions from the crop
// calendar table.
type CalendarTool struct{}

func (CalendarTool) Name() string {
	return "crop_calendar"
}

func (CalendarTool) Description() string {
	return "Look up sowing and harvesting windows for crops in an Indian state. Use for questions about when to sow or harvest, or which crop suits the current month."
}

func (CalendarTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "state", Type: "string", Description: "Name of the Indian state", Required: true},
		{Name: "crop", Type: "string", Description: "Crop name; omit to list all crops for the state", Required: false},
	}
}

func (CalendarTool) Call(ctx context.Context, args map[string]any) (string, error) {
	state := strings.TrimSpace(stringArg(args, "state"))
	crop := strings.TrimSpace(stringArg(args, "crop"))

	var stateData map[string]map[string]CropSeason
	for name, data := range cropCalendar {
		if strings.EqualFold(name, state) {
			stateData = data
			break
		}
	}
	if stateData == nil {
		return Unavailable, nil
	}

	if crop == "" {
		out, err := json.Marshal(stateData)
		if err != nil {
			return Unavailable, nil
		}
		return string(out), nil
	}

	for name, seasons := range stateData {
		if strings.EqualFold(name, crop) {
			out, err := json.Marshal(map[string]map[string]CropSeason{name: seasons})
			if err != nil {
				return Unavailable, nil
			}
			return string(out), nil
		}
	}

	return Unavailable, nil
}

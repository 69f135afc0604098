package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kheti-ai/kheti/internal/llm"
)

// AgricultureOffice is one state directorate contact entry
type AgricultureOffice struct {
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
	Fax     string `json:"fax,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

var agricultureOffices = map[string]AgricultureOffice{
	"Andhra Pradesh": {
		Address: "Director Directorate of Economics & Statistics, Govt. of Andhra Pradesh, 410, Khairathabad, HYDERABAD-500 004",
		Phone:   "+91-40-23317191",
		Fax:     "+91-40-23307459",
		Email:   "dir_economics@ap.gov.in",
		Website: "https://agriculture.ap.gov.in",
	},
	"Assam": {
		Address: "Director Directorate of Economics & Statistics, Govt. of Assam, GUWAHATI - 781 006",
		Phone:   "+91-361-2265264",
		Email:   "dir-stat-assam@yahoo.co.in",
		Website: "https://agri.assam.gov.in",
	},
	"Bihar": {
		Address: "Director Bureau of Statistics & Evaluation, Planning Department, Barrack No.17, Old Secretariat, Govt. of Bihar, PATNA - 800 015",
		Phone:   "+91-612-221359",
		Fax:     "+91-612-2221359",
		Website: "https://state.bihar.gov.in/agriculture",
	},
	"Chhattisgarh": {
		Address: "Director Deputy Commissioner, Office of Land Records and Settlement, Gandhi Chowk, DKS Bhavan, Govt. of Chhattisgarh, RAIPUR",
		Phone:   "+91-771-2234584",
		Website: "https://agriportal.cg.nic.in",
	},
	"Gujarat": {
		Address: "Director of Agriculture, Krishi Bhavan, Sector 10-A, GANDHINAGAR - 382 010",
		Phone:   "+91-79-23256204",
		Website: "https://dag.gujarat.gov.in",
	},
	"Haryana": {
		Address: "Director General Agriculture, Krishi Bhawan, Sector 21, PANCHKULA - 134 112",
		Phone:   "+91-172-705600",
		Website: "https://agriharyana.gov.in",
	},
	"Karnataka": {
		Address: "Commissioner of Agriculture, Sheshadri Road, BENGALURU - 560 001",
		Phone:   "+91-80-22253758",
		Website: "https://raitamitra.karnataka.gov.in",
	},
	"Kerala": {
		Address: "Director of Agriculture, Vikas Bhavan, THIRUVANANTHAPURAM - 695 033",
		Phone:   "+91-471-2305318",
		Website: "https://keralaagriculture.gov.in",
	},
	"Madhya Pradesh": {
		Address: "Director Farmer Welfare & Agriculture Development, Vindhyachal Bhavan, BHOPAL - 462 004",
		Phone:   "+91-751-324811",
		Website: "https://mpkrishi.mp.gov.in",
	},
	"Maharashtra": {
		Address: "Commissioner of Agriculture, Maharashtra State, Central Building, PUNE - 411 001",
		Phone:   "+91-20-26121041",
		Website: "https://krishi.maharashtra.gov.in",
	},
	"Punjab": {
		Address: "Director of Agriculture, Govt. of Punjab, CHANDIGARH - 160 017",
		Phone:   "+91-181-254935",
		Website: "https://agri.punjab.gov.in",
	},
	"Rajasthan": {
		Address: "Directorate of Agriculture, Pant Krishi Bhawan, Janpath, JAIPUR - 302 005",
		Phone:   "+91-141-2227709",
		Website: "https://agriculture.rajasthan.gov.in",
	},
	"Tamil Nadu": {
		Address: "Director of Agriculture, Chepauk, CHENNAI - 600 005",
		Phone:   "+91-44-24341929",
		Website: "https://www.tnagrisnet.tn.gov.in",
	},
	"Uttar Pradesh": {
		Address: "Director of Agriculture, Krishi Bhawan, Madan Mohan Malviya Marg, LUCKNOW - 226 001",
		Phone:   "+91-522-205210",
		Website: "https://agriculture.up.gov.in",
	},
	"West Bengal": {
		Address: "Addl. Director of Agri.(Evaluation), Department of Agri; Govt. of West Bengal, 17, S.P. Mukherjee Road, KOLKATA - 700 025",
		Phone:   "+91-33-24761492, +91-33-24758763",
		Fax:     "+91-33-24755674",
		Email:   "agrievln@cal2.vsnl.net.in",
		Website: "https://matirkatha.net",
	},
}

// OfficesTool returns government agriculture office contacts for a state
type OfficesTool struct{}

func (OfficesTool) Name() string {
	return "govt_offices"
}

func (OfficesTool) Description() string {
	return "Get the address and contact details of the main government agriculture office for an Indian state."
}

func (OfficesTool) Params() []llm.Param {
	return []llm.Param{
		{Name: "state", Type: "string", Description: "Name of the Indian state", Required: true},
	}
}

func (OfficesTool) Call(ctx context.Context, args map[string]any) (string, error) {
	state := strings.TrimSpace(stringArg(args, "state"))
	if state == "" {
		state = "Kerala"
	}

	for name, office := range agricultureOffices {
		if strings.EqualFold(name, state) {
			out, err := json.Marshal(map[string]AgricultureOffice{name: office})
			if err != nil {
				return Unavailable, nil
			}
			return string(out), nil
		}
	}

	return Unavailable, nil
}

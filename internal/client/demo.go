package client

import "github.com/raysh454/caselookup/internal/model"

// DemoCase is shown instead of a live lookup when the client runs in demo
// mode. It never reaches the server.
func DemoCase() *model.CaseRecord {
	return &model.CaseRecord{
		Petitioner:  model.Ptr("John Doe"),
		Respondent:  model.Ptr("Jane Smith"),
		FilingDate:  model.Ptr("2022-01-15"),
		NextHearing: model.Ptr("2023-06-10"),
		Orders: []model.OrderLink{
			{Name: "Order #1", URL: "#"},
			{Name: "Order #2", URL: "#"},
			{Name: "Order #3", URL: "#"},
		},
	}
}

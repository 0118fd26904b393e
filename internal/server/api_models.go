package server

import "github.com/raysh454/caselookup/internal/model"

// LookupBody documents the two accepted request shapes of /fetch and
// /fetch-case. Only one of URL or the case fields needs to be set.
type LookupBody struct {
	URL        string `json:"url,omitempty" example:"https://delhihighcourt.nic.in/app/get-case-type-status?case_type=FAO&case_number=12&year=2023"`
	CaseType   string `json:"case_type,omitempty" example:"W.P.(C)"`
	CaseNumber string `json:"case_number,omitempty" example:"1234"`
	FilingYear string `json:"filing_year,omitempty" example:"2023"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// LookupEvent is streamed on /ws/lookups once per submitted lookup, in
// completion order. Exactly one of Record or Error is set.
type LookupEvent struct {
	Index     int               `json:"index"`
	RequestID string            `json:"request_id"`
	Record    *model.CaseRecord `json:"record,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// BatchDone closes a /ws/lookups stream.
type BatchDone struct {
	Done      bool `json:"done"`
	Total     int  `json:"total"`
	Succeeded int  `json:"succeeded"`
}

package client

import (
	"encoding/json"
	"strings"

	"github.com/raysh454/caselookup/internal/model"
)

// NotFound is rendered in place of an absent field.
const NotFound = "Not found"

// LatestOrderName labels an order synthesised from a bare pdf_url.
const LatestOrderName = "Latest Order"

// Payload is the lookup response as the client reads it. Older backends
// answer with a single pdf_url instead of an orders list.
type Payload struct {
	Petitioner  *string         `json:"petitioner"`
	Respondent  *string         `json:"respondent"`
	FilingDate  *string         `json:"filing_date"`
	NextHearing *string         `json:"next_hearing"`
	Orders      json.RawMessage `json:"orders"`
	PDFURL      string          `json:"pdf_url"`
	Error       string          `json:"error"`
}

// Normalize turns a decoded Payload into a CaseRecord. It is applied exactly
// once, when a response is accepted:
//
//   - orders that is not a JSON array counts as missing
//   - missing orders plus a non-empty pdf_url becomes
//     [{name: "Latest Order", url: pdf_url}]
//   - otherwise missing orders becomes an empty list
//   - empty strings count as absent
func Normalize(p Payload) *model.CaseRecord {
	rec := model.NewCaseRecord()
	rec.Petitioner = nonEmpty(p.Petitioner)
	rec.Respondent = nonEmpty(p.Respondent)
	rec.FilingDate = nonEmpty(p.FilingDate)
	rec.NextHearing = nonEmpty(p.NextHearing)

	var orders []model.OrderLink
	if len(p.Orders) > 0 && json.Unmarshal(p.Orders, &orders) == nil && orders != nil {
		rec.Orders = orders
		return rec
	}
	if url := strings.TrimSpace(p.PDFURL); url != "" {
		rec.Orders = []model.OrderLink{{Name: LatestOrderName, URL: url}}
	}
	return rec
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}

// Display renders an optional field for the result panel.
func Display(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return NotFound
	}
	return *s
}

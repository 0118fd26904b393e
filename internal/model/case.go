package model

// CaseRecord is the normalized result of a successful lookup. Fields that
// were not found in the source document are nil and marshal as JSON null so
// the client can tell "absent" apart from "not fetched".
type CaseRecord struct {
	Petitioner  *string     `json:"petitioner"`
	Respondent  *string     `json:"respondent"`
	FilingDate  *string     `json:"filing_date"`
	NextHearing *string     `json:"next_hearing"`
	Orders      []OrderLink `json:"orders"`
}

// OrderLink is a named reference to a downloadable court document.
type OrderLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// NewCaseRecord returns a record with every field absent and an empty,
// non-nil order list.
func NewCaseRecord() *CaseRecord {
	return &CaseRecord{Orders: []OrderLink{}}
}

// Present reports whether at least one scalar field or order was found.
func (c *CaseRecord) Present() bool {
	if c == nil {
		return false
	}
	return c.Petitioner != nil || c.Respondent != nil || c.FilingDate != nil ||
		c.NextHearing != nil || len(c.Orders) > 0
}

// StringOrEmpty dereferences an optional field.
func StringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}

package model

// LookupRequest is the direct-locator form of a lookup.
type LookupRequest struct {
	URL string `json:"url"`
}

// CaseQuery is the client-facing form of a lookup. It is turned into a
// locator through the configured case URL template.
type CaseQuery struct {
	CaseType   string `json:"case_type"`
	CaseNumber string `json:"case_number"`
	FilingYear string `json:"filing_year"`
}

// ErrorResponse is the uniform failure payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// CaseTypes are the case categories offered by the lookup form.
var CaseTypes = []string{"W.P.(C)", "Crl.M.C.", "FAO", "RSA", "CRL.A.", "CS(OS)"}

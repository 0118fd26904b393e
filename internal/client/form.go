package client

import "github.com/raysh454/caselookup/internal/model"

// Field identifies one input of the lookup form.
type Field int

const (
	FieldCaseType Field = iota
	FieldCaseNumber
	FieldFilingYear
)

// Form holds the raw user input.
type Form struct {
	CaseType   string
	CaseNumber string
	FilingYear string
}

func (f *Form) set(field Field, value string) {
	switch field {
	case FieldCaseType:
		f.CaseType = value
	case FieldCaseNumber:
		f.CaseNumber = value
	case FieldFilingYear:
		f.FilingYear = value
	}
}

// Query converts the form into the request sent to the lookup endpoint.
func (f Form) Query() model.CaseQuery {
	return model.CaseQuery{
		CaseType:   f.CaseType,
		CaseNumber: f.CaseNumber,
		FilingYear: f.FilingYear,
	}.Normalized()
}

// Valid reports whether the form may be submitted.
func (f Form) Valid() bool {
	return f.Query().Validate() == nil
}

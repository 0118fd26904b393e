package model

import (
	"errors"
	"strconv"
	"strings"
)

const (
	MinFilingYear = 1900
	MaxFilingYear = 2099
)

var (
	ErrMissingCaseType   = errors.New("case type is required")
	ErrInvalidCaseNumber = errors.New("case number must be a positive integer")
	ErrInvalidFilingYear = errors.New("filing year must be between 1900 and 2099")
)

// Validate checks the form rules shared by the endpoint and the client:
// a chosen case type, a positive integer case number and a filing year
// within [MinFilingYear, MaxFilingYear].
func (q CaseQuery) Validate() error {
	if strings.TrimSpace(q.CaseType) == "" {
		return ErrMissingCaseType
	}
	n, err := strconv.Atoi(strings.TrimSpace(q.CaseNumber))
	if err != nil || n <= 0 {
		return ErrInvalidCaseNumber
	}
	y, err := strconv.Atoi(strings.TrimSpace(q.FilingYear))
	if err != nil || y < MinFilingYear || y > MaxFilingYear {
		return ErrInvalidFilingYear
	}
	return nil
}

// Normalized returns a copy with surrounding whitespace removed.
func (q CaseQuery) Normalized() CaseQuery {
	return CaseQuery{
		CaseType:   strings.TrimSpace(q.CaseType),
		CaseNumber: strings.TrimSpace(q.CaseNumber),
		FilingYear: strings.TrimSpace(q.FilingYear),
	}
}

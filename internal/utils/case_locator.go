package utils

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/raysh454/caselookup/internal/model"
)

// DefaultCaseURLTemplate points at the court's case status page.
const DefaultCaseURLTemplate = "https://delhihighcourt.nic.in/app/get-case-type-status?case_type={case_type}&case_number={case_number}&year={filing_year}"

var ErrEmptyTemplate = errors.New("case url template is empty")

// BuildCaseLocator expands a case URL template with the query-escaped
// values of q. Placeholders are {case_type}, {case_number} and
// {filing_year}. The result is validated with ParseLocator.
func BuildCaseLocator(template string, q model.CaseQuery) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", ErrEmptyTemplate
	}
	q = q.Normalized()

	r := strings.NewReplacer(
		"{case_type}", url.QueryEscape(q.CaseType),
		"{case_number}", url.QueryEscape(q.CaseNumber),
		"{filing_year}", url.QueryEscape(q.FilingYear),
	)
	raw := r.Replace(template)

	u, err := ParseLocator(raw)
	if err != nil {
		return "", fmt.Errorf("case url template produced invalid locator: %w", err)
	}
	return u.String(), nil
}

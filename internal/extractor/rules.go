package extractor

// Field names one scalar attribute of a case record.
type Field string

const (
	FieldPetitioner  Field = "petitioner"
	FieldRespondent  Field = "respondent"
	FieldFilingDate  Field = "filing_date"
	FieldNextHearing Field = "next_hearing"
)

// FieldRule locates one field. Primary is tried first; Fallback only when
// Primary produced no element with non-empty text. Both are goquery
// (cascadia) selectors and Fallback may be empty.
type FieldRule struct {
	Field    Field
	Primary  string
	Fallback string
}

// LinkRule locates the order/judgment links. Every element matched by the
// winning selector contributes one link, in document order.
type LinkRule struct {
	Primary  string
	Fallback string
}

// Rules is the complete, ordered rule set applied by an Extractor.
type Rules struct {
	Fields []FieldRule
	Orders LinkRule
}

// labelled matches the value cell that follows a label cell, the layout used
// by the court's case status table. The label may be wrapped in inline
// markup; cells that hold a nested table are layout, not labels.
func labelled(label string) string {
	return `td:not(:has(td, th)):contains("` + label + `") + td, ` +
		`th:not(:has(td, th)):contains("` + label + `") + td`
}

// marked matches elements that carry the field in a data attribute, id or
// class, as found on mirror sites and our demo court.
func marked(field Field, id string) string {
	return `[data-field="` + string(field) + `"], #` + id + `, .` + id
}

// DefaultRules returns the rule set for court case status pages.
func DefaultRules() Rules {
	return Rules{
		Fields: []FieldRule{
			{Field: FieldPetitioner, Primary: labelled("Petitioner"), Fallback: marked(FieldPetitioner, "petitioner")},
			{Field: FieldRespondent, Primary: labelled("Respondent"), Fallback: marked(FieldRespondent, "respondent")},
			{Field: FieldFilingDate, Primary: labelled("Filing Date"), Fallback: marked(FieldFilingDate, "filing-date")},
			{Field: FieldNextHearing, Primary: labelled("Next Date"), Fallback: marked(FieldNextHearing, "next-hearing")},
		},
		Orders: LinkRule{
			Primary:  `a[href$=".pdf"], a[href$=".PDF"], a[href*=".pdf?"]`,
			Fallback: `.orders a[href], #orders a[href]`,
		},
	}
}

package demoserver

import (
	"fmt"
	"strings"
)

// Layout is one way of rendering a case status page.
type Layout string

const (
	// LayoutTable mirrors the court's label/value result table.
	LayoutTable Layout = "table"
	// LayoutMarked tags values with data-field attributes, ids and classes.
	LayoutMarked Layout = "marked"
	// LayoutScript builds the result table in the browser with JavaScript.
	// Only a rendering backend sees the values.
	LayoutScript Layout = "script"
)

// Layouts lists every supported layout.
var Layouts = []Layout{LayoutTable, LayoutMarked, LayoutScript}

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool {
	for _, v := range Layouts {
		if v == l {
			return true
		}
	}
	return false
}

// OrderDef is one downloadable order of a demo case.
type OrderDef struct {
	Name string
	File string
}

// CaseDefinition is a demo case served by the court site.
type CaseDefinition struct {
	Type        string
	Number      string
	Year        string
	Petitioner  string
	Respondent  string
	FilingDate  string
	NextHearing string
	Orders      []OrderDef
}

// Key identifies a case the way the status page query does.
func (c CaseDefinition) Key() string {
	return caseKey(c.Type, c.Number, c.Year)
}

func caseKey(typ, number, year string) string {
	return strings.ToUpper(strings.TrimSpace(typ)) + "|" + strings.TrimSpace(number) + "|" + strings.TrimSpace(year)
}

// GetAllCases returns all demo case definitions.
func GetAllCases() []CaseDefinition {
	return []CaseDefinition{
		{
			Type: "W.P.(C)", Number: "1234", Year: "2023",
			Petitioner:  "ACME Infrastructure Pvt. Ltd.",
			Respondent:  "Union of India & Ors.",
			FilingDate:  "15/02/2023",
			NextHearing: "04/11/2024",
			Orders: []OrderDef{
				{Name: "Order dated 20/02/2023", File: "wpc-1234-2023-1.pdf"},
				{Name: "Order dated 11/07/2023", File: "wpc-1234-2023-2.pdf"},
				{Name: "Judgment dated 02/09/2024", File: "wpc-1234-2023-3.pdf"},
			},
		},
		{
			Type: "FAO", Number: "12", Year: "2021",
			Petitioner: "Ramesh Kumar",
			Respondent: "New India Assurance Co. Ltd.",
			FilingDate: "03/03/2021",
			// Disposed: no next date.
			Orders: []OrderDef{{Name: "Final order", File: "fao-12-2021.pdf"}},
		},
		{
			Type: "CRL.A.", Number: "77", Year: "2019",
			Petitioner:  "State (NCT of Delhi)",
			Respondent:  "Mohd. Salim",
			FilingDate:  "28/01/2019",
			NextHearing: "19/12/2024",
		},
		{
			Type: "CS(OS)", Number: "501", Year: "2022",
			Petitioner:  "Bharat Textiles",
			Respondent:  "Orient Fabrics LLP",
			FilingDate:  "09/09/2022",
			NextHearing: "14/01/2025",
			Orders:      manyOrders("cs-501-2022", 7),
		},
	}
}

func manyOrders(prefix string, n int) []OrderDef {
	out := make([]OrderDef, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, OrderDef{
			Name: fmt.Sprintf("Order #%d", i),
			File: fmt.Sprintf("%s-%d.pdf", prefix, i),
		})
	}
	return out
}

package extractor

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/raysh454/caselookup/internal/model"
)

// Extractor turns a parsed case status page into a CaseRecord. It holds no
// mutable state and is safe for concurrent use.
type Extractor struct {
	rules Rules
}

// New returns an Extractor for rules.
func New(rules Rules) *Extractor {
	return &Extractor{rules: rules}
}

// Default returns an Extractor for DefaultRules.
func Default() *Extractor {
	return New(DefaultRules())
}

// Extract applies every rule to doc. Fields with no match stay nil and the
// order list is never nil. A nil document yields an empty record.
//
// Order hrefs are copied verbatim; relative links stay relative.
func (e *Extractor) Extract(doc *goquery.Document) *model.CaseRecord {
	rec := model.NewCaseRecord()
	if doc == nil || doc.Selection == nil {
		return rec
	}

	for _, rule := range e.rules.Fields {
		v, ok := firstText(doc.Selection, rule.Primary)
		if !ok {
			v, ok = firstText(doc.Selection, rule.Fallback)
		}
		if !ok {
			continue
		}
		setField(rec, rule.Field, v)
	}

	rec.Orders = links(doc.Selection, e.rules.Orders.Primary)
	if len(rec.Orders) == 0 {
		rec.Orders = links(doc.Selection, e.rules.Orders.Fallback)
	}
	return rec
}

// ExtractHTML parses body and extracts from it.
func (e *Extractor) ExtractHTML(body []byte, contentType string) (*model.CaseRecord, error) {
	doc, err := Parse(body, contentType)
	if err != nil {
		return nil, err
	}
	return e.Extract(doc), nil
}

func firstText(root *goquery.Selection, selector string) (string, bool) {
	if strings.TrimSpace(selector) == "" {
		return "", false
	}
	var out string
	root.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		out = selectionText(s)
		return out == ""
	})
	return out, out != ""
}

func links(root *goquery.Selection, selector string) []model.OrderLink {
	out := []model.OrderLink{}
	if strings.TrimSpace(selector) == "" {
		return out
	}
	seen := make(map[string]struct{})
	root.Find(selector).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}

		name := selectionText(s)
		if name == "" {
			name = collapse(s.AttrOr("title", ""))
		}
		if name == "" {
			name = href
		}
		out = append(out, model.OrderLink{Name: name, URL: href})
	})
	return out
}

func setField(rec *model.CaseRecord, f Field, v string) {
	switch f {
	case FieldPetitioner:
		rec.Petitioner = model.Ptr(v)
	case FieldRespondent:
		rec.Respondent = model.Ptr(v)
	case FieldFilingDate:
		rec.FilingDate = model.Ptr(v)
	case FieldNextHearing:
		rec.NextHearing = model.Ptr(v)
	}
}

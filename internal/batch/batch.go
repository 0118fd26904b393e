// Package batch looks up many cases from a text file and writes the results
// as JSON and CSV.
//
// Input lines have the form
//
//	<CaseType>,<CaseNumber>,<FilingYear>
//
// Blank lines and lines starting with '#' are ignored.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"github.com/raysh454/caselookup/internal/fetcher"
	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/model"
	"github.com/raysh454/caselookup/internal/utils"
)

const (
	StatusSuccess       = "success"
	StatusInvalidFormat = "invalid_format"
	statusErrorPrefix   = "error: "
)

// Case is one input line.
type Case struct {
	Line  int
	Raw   string
	Query model.CaseQuery
	Err   error
}

// ReadCases parses r line by line. Lines that do not have three fields or
// fail validation are returned with Err set so they are reported, not
// dropped.
func ReadCases(r io.Reader) ([]Case, error) {
	var out []Case
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}

		c := Case{Line: line, Raw: raw}
		parts := strings.Split(raw, ",")
		if len(parts) != 3 {
			c.Err = fmt.Errorf("line %d: expected 3 comma separated fields, got %d", line, len(parts))
			out = append(out, c)
			continue
		}
		c.Query = model.CaseQuery{CaseType: parts[0], CaseNumber: parts[1], FilingYear: parts[2]}.Normalized()
		if err := c.Query.Validate(); err != nil {
			c.Err = fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, c)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading cases: %w", err)
	}
	return out, nil
}

// Row is one output record.
type Row struct {
	CaseType   string            `json:"case_type"`
	CaseNumber string            `json:"case_number"`
	FilingYear string            `json:"filing_year"`
	Status     string            `json:"status"`
	Record     *model.CaseRecord `json:"-"`
}

// BatchFetcher is the part of fetcher.Coordinator a Runner needs.
type BatchFetcher interface {
	FetchBatch(ctx context.Context, locators []string, onResult func(fetcher.Result))
}

// Runner turns cases into rows through a BatchFetcher.
type Runner struct {
	fetcher  BatchFetcher
	template string
	logger   logging.Logger
}

func NewRunner(f BatchFetcher, caseURLTemplate string, logger logging.Logger) (*Runner, error) {
	if f == nil {
		return nil, fmt.Errorf("batch: fetcher is nil")
	}
	if caseURLTemplate == "" {
		caseURLTemplate = utils.DefaultCaseURLTemplate
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{
		fetcher:  f,
		template: caseURLTemplate,
		logger:   logger.With(logging.Field{Key: "component", Value: "batch"}),
	}, nil
}

// Run looks up every valid case. The returned rows are in input order and
// there is exactly one per case; a failed lookup never aborts the batch.
func (r *Runner) Run(ctx context.Context, cases []Case) []Row {
	jobID := uuid.NewString()
	rows := make([]Row, len(cases))

	var (
		locators []string
		indexes  []int
	)
	for i, c := range cases {
		rows[i] = Row{
			CaseType:   c.Query.CaseType,
			CaseNumber: c.Query.CaseNumber,
			FilingYear: c.Query.FilingYear,
		}
		if c.Err != nil {
			rows[i].Status = StatusInvalidFormat
			r.logger.Warn("skipping malformed case",
				logging.Field{Key: "job_id", Value: jobID},
				logging.Field{Key: "error", Value: c.Err})
			continue
		}
		loc, err := utils.BuildCaseLocator(r.template, c.Query)
		if err != nil {
			rows[i].Status = statusErrorPrefix + err.Error()
			continue
		}
		locators = append(locators, loc)
		indexes = append(indexes, i)
	}

	r.logger.Info("starting batch",
		logging.Field{Key: "job_id", Value: jobID},
		logging.Field{Key: "cases", Value: len(cases)},
		logging.Field{Key: "lookups", Value: len(locators)})

	succeeded := 0
	r.fetcher.FetchBatch(ctx, locators, func(res fetcher.Result) {
		row := &rows[indexes[res.Index]]
		if res.Err != nil {
			row.Status = statusErrorPrefix + res.Err.Error()
			return
		}
		row.Status = StatusSuccess
		row.Record = res.Record
		succeeded++
	})

	r.logger.Info("finished batch",
		logging.Field{Key: "job_id", Value: jobID},
		logging.Field{Key: "succeeded", Value: succeeded},
		logging.Field{Key: "failed", Value: len(cases) - succeeded})
	return rows
}

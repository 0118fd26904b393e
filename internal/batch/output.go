package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/raysh454/caselookup/internal/model"
)

const (
	JSONFile = "output.json"
	CSVFile  = "output.csv"
)

var csvHeader = []string{
	"case_type", "case_number", "filing_year", "status",
	"petitioner", "respondent", "filing_date", "next_hearing", "orders",
}

// jsonRow flattens a Row for output.json.
type jsonRow struct {
	CaseType    string            `json:"case_type"`
	CaseNumber  string            `json:"case_number"`
	FilingYear  string            `json:"filing_year"`
	Status      string            `json:"status"`
	Petitioner  *string           `json:"petitioner"`
	Respondent  *string           `json:"respondent"`
	FilingDate  *string           `json:"filing_date"`
	NextHearing *string           `json:"next_hearing"`
	Orders      []model.OrderLink `json:"orders"`
}

func toJSONRow(r Row) jsonRow {
	out := jsonRow{
		CaseType:   r.CaseType,
		CaseNumber: r.CaseNumber,
		FilingYear: r.FilingYear,
		Status:     r.Status,
		Orders:     []model.OrderLink{},
	}
	if r.Record != nil {
		out.Petitioner = r.Record.Petitioner
		out.Respondent = r.Record.Respondent
		out.FilingDate = r.Record.FilingDate
		out.NextHearing = r.Record.NextHearing
		if r.Record.Orders != nil {
			out.Orders = r.Record.Orders
		}
	}
	return out
}

// WriteJSON writes rows as an indented JSON array.
func WriteJSON(w io.Writer, rows []Row) error {
	out := make([]jsonRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, toJSONRow(r))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// WriteCSV writes rows with a header line. Orders are joined as
// "name <url>" separated by "; ".
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range rows {
		jr := toJSONRow(r)
		orders := make([]string, 0, len(jr.Orders))
		for _, o := range jr.Orders {
			orders = append(orders, fmt.Sprintf("%s <%s>", o.Name, o.URL))
		}
		rec := []string{
			jr.CaseType, jr.CaseNumber, jr.FilingYear, jr.Status,
			model.StringOrEmpty(jr.Petitioner),
			model.StringOrEmpty(jr.Respondent),
			model.StringOrEmpty(jr.FilingDate),
			model.StringOrEmpty(jr.NextHearing),
			strings.Join(orders, "; "),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFiles writes output.json and output.csv into dir.
func WriteFiles(dir string, rows []Row) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure output dir: %w", err)
	}
	if err := writeFile(filepath.Join(dir, JSONFile), rows, WriteJSON); err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, CSVFile), rows, WriteCSV)
}

func writeFile(path string, rows []Row, write func(io.Writer, []Row) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f, rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

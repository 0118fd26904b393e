package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raysh454/caselookup/internal/app"
	"github.com/raysh454/caselookup/internal/model"
	"github.com/raysh454/caselookup/internal/utils"
)

type lookupFlags struct {
	url      string
	caseType string
	number   string
	year     string
}

// locator picks the url when given, otherwise expands the case fields
// through template.
func (f lookupFlags) locator(template string) (string, error) {
	if f.url != "" {
		u, err := utils.ParseLocator(f.url)
		if err != nil {
			return "", fmt.Errorf("invalid --url: %w", err)
		}
		return u.String(), nil
	}
	q := model.CaseQuery{CaseType: f.caseType, CaseNumber: f.number, FilingYear: f.year}
	if err := q.Validate(); err != nil {
		return "", err
	}
	return utils.BuildCaseLocator(template, q)
}

func newLookupCommand(e *env) *cobra.Command {
	var f lookupFlags

	cmd := &cobra.Command{
		Use:   "lookup",
		Short: "Look up one case and print the JSON response.",
		Example: `  caselookup lookup --url "https://court.example/case?id=1"
  caselookup lookup --type "W.P.(C)" --number 1234 --year 2023`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.url == "" && f.caseType == "" && f.number == "" && f.year == "" {
				return errors.New("either --url or --type, --number and --year are required")
			}
			locator, err := f.locator(e.cfg.ServerCfg.CaseURLTemplate)
			if err != nil {
				return err
			}

			comps, err := app.NewComponents(e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer comps.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)

			rec, err := comps.Coordinator.FetchCase(cmd.Context(), locator)
			if err != nil {
				_ = enc.Encode(model.ErrorResponse{Error: err.Error()})
				return err
			}
			return enc.Encode(rec)
		},
	}

	cmd.Flags().StringVar(&f.url, "url", "", "case status page to fetch")
	cmd.Flags().StringVar(&f.caseType, "type", "", "case type, e.g. W.P.(C)")
	cmd.Flags().StringVar(&f.number, "number", "", "case number")
	cmd.Flags().StringVar(&f.year, "year", "", "filing year")
	return cmd
}

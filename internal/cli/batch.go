package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raysh454/caselookup/internal/app"
	"github.com/raysh454/caselookup/internal/batch"
)

func newBatchCommand(e *env) *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "batch <file>",
		Short: "Look up every CaseType,CaseNumber,FilingYear line of a file.",
		Long: "Look up every CaseType,CaseNumber,FilingYear line of a file and write\n" +
			batch.JSONFile + " and " + batch.CSVFile + " to the output directory.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			cases, err := batch.ReadCases(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			comps, err := app.NewComponents(e.cfg, e.logger)
			if err != nil {
				return err
			}
			defer comps.Close()

			runner, err := batch.NewRunner(comps.Coordinator, e.cfg.ServerCfg.CaseURLTemplate, e.logger)
			if err != nil {
				return err
			}
			rows := runner.Run(cmd.Context(), cases)
			if err := batch.WriteFiles(outDir, rows); err != nil {
				return err
			}

			ok := 0
			for _, r := range rows {
				if r.Status == batch.StatusSuccess {
					ok++
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d of %d cases fetched, results in %s\n", ok, len(rows), outDir)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for the output files")
	return cmd
}

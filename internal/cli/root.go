// Package cli defines the caselookup command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raysh454/caselookup/internal/app"
	"github.com/raysh454/caselookup/internal/logging"
)

// env is what every subcommand needs once flags are parsed.
type env struct {
	configFile string
	cfg        *app.Config
	logger     logging.Logger
}

// NewRootCommand builds the command tree. Logs go to the command's stderr
// so that stdout carries only results.
func NewRootCommand() *cobra.Command {
	e := &env{}

	root := &cobra.Command{
		Use:   "caselookup",
		Short: "caselookup fetches court case status pages and returns structured case details.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadConfig(e.configFile)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = app.NewLogger(cfg, cmd.ErrOrStderr())
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&e.configFile, "config", "", "config file (default ./caselookup.{toml,yaml,json})")

	root.AddCommand(
		newServeCommand(e),
		newLookupCommand(e),
		newBatchCommand(e),
		newTUICommand(e),
	)
	return root
}

// Execute runs the command tree and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

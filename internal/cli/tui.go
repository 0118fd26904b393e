package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/raysh454/caselookup/internal/client"
	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/prefs"
	"github.com/raysh454/caselookup/internal/tui"
	"github.com/raysh454/caselookup/internal/webclient"
)

func newTUICommand(e *env) *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive lookup form.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The alternate screen owns the terminal while the form runs.
			logger := logging.Nop()

			// The form talks to the lookup service over plain HTTP.
			wcCfg := e.cfg.WebClientCfg
			wcCfg.Client = webclient.ClientNetHTTP
			wc, err := webclient.NewWebClient(wcCfg, logger)
			if err != nil {
				return err
			}
			defer wc.Close()

			api, err := client.NewHTTPAPI(e.cfg.ClientEndpoint, wc, logger)
			if err != nil {
				return err
			}
			check, err := client.NewDialCheck(e.cfg.ClientEndpoint, 2*time.Second)
			if err != nil {
				return err
			}
			ctrl := client.NewController(api, check, logger)

			opts := tui.Options{Demo: demo, ConnectivityEvery: 5 * time.Second, Logger: logger}
			store, err := prefs.Open(e.cfg.PrefsPath, logger)
			if err != nil {
				e.logger.Warn("preferences unavailable, dark mode will not be saved",
					logging.Field{Key: "error", Value: err})
			} else {
				defer store.Close()
				opts.Prefs = store
			}

			return tui.Run(cmd.Context(), ctrl, opts)
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "show a demo case before the first lookup")
	return cmd
}

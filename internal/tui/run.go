package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/raysh454/caselookup/internal/client"
	"github.com/raysh454/caselookup/internal/logging"
)

// Options configures Run.
type Options struct {
	// Prefs is read once at startup and written on every theme toggle.
	// Nil starts in light mode and persists nothing.
	Prefs PrefStore
	// Demo shows the demo case before the first lookup.
	Demo bool
	// ConnectivityEvery polls the controller's connectivity check at this
	// interval. Zero checks only on submit.
	ConnectivityEvery time.Duration
	Logger            logging.Logger
}

// Run shows the lookup form until the user quits.
func Run(ctx context.Context, ctrl *client.Controller, opts Options) error {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}

	dark := false
	if opts.Prefs != nil {
		p, err := opts.Prefs.Load(ctx)
		if err != nil {
			logger.Warn("could not load preferences", logging.Field{Key: "error", Value: err})
		}
		dark = p.DarkMode
	}
	if opts.Demo {
		ctrl.ShowDemo()
	}

	m := NewModel(ctx, ctrl, opts.Prefs, dark).WithConnectivityCheck(opts.ConnectivityEvery)
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}

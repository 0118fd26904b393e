package app

import (
	"fmt"

	"github.com/raysh454/caselookup/internal/fetcher"
	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/webclient"
)

// Components are the lookup collaborators shared by the server, the batch
// runner and the single lookup command.
type Components struct {
	WebClient   webclient.WebClient
	Coordinator *fetcher.Coordinator
}

// NewComponents builds the configured webclient backend and a coordinator
// on top of it.
func NewComponents(cfg *Config, logger logging.Logger) (*Components, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	wc, err := webclient.NewWebClient(cfg.WebClientCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("new webclient: %w", err)
	}

	coord, err := fetcher.NewCoordinator(cfg.FetcherCfg, wc, nil, logger)
	if err != nil {
		_ = wc.Close()
		return nil, fmt.Errorf("new coordinator: %w", err)
	}

	return &Components{WebClient: wc, Coordinator: coord}, nil
}

// Close releases the webclient. Lookups still running fail.
func (c *Components) Close() error {
	if err := c.WebClient.Close(); err != nil {
		return fmt.Errorf("close webclient: %w", err)
	}
	return nil
}

package fetcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/raysh454/caselookup/internal/extractor"
	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/model"
	"github.com/raysh454/caselookup/internal/webclient"
)

// Coordinator retrieves a case status page, parses it and hands it to the
// extractor. It keeps no per-request state, so one Coordinator serves every
// request of the process.
type Coordinator struct {
	MaxConcurrency int
	wc             webclient.WebClient
	extractor      *extractor.Extractor
	logger         logging.Logger
}

// NewCoordinator creates a Coordinator. A nil extractor selects
// extractor.Default().
func NewCoordinator(cfg Config, wc webclient.WebClient, ex *extractor.Extractor, logger logging.Logger) (*Coordinator, error) {
	if wc == nil {
		return nil, fmt.Errorf("fetcher: webclient is nil")
	}
	if ex == nil {
		ex = extractor.Default()
	}
	if logger == nil {
		logger = logging.Nop()
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = DefaultConfig().MaxConcurrency
	}
	return &Coordinator{
		MaxConcurrency: cfg.MaxConcurrency,
		wc:             wc,
		extractor:      ex,
		logger:         logger.With(logging.Field{Key: "component", Value: "fetcher"}),
	}, nil
}

// FetchCase performs exactly one GET against locator and extracts a
// CaseRecord from the result. The locator must already be validated. Any
// returned error is a *LookupError.
func (c *Coordinator) FetchCase(ctx context.Context, locator string) (rec *model.CaseRecord, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("lookup panicked",
				logging.Field{Key: "url", Value: locator},
				logging.Field{Key: "panic", Value: fmt.Sprint(r)})
			rec = nil
			err = &LookupError{Kind: KindInternal, Message: "internal error while reading case page"}
		}
	}()

	resp, err := c.wc.Get(ctx, locator)
	if err != nil {
		c.logger.Warn("case page fetch failed",
			logging.Field{Key: "url", Value: locator},
			logging.Field{Key: "error", Value: err})
		return nil, transportError(err)
	}
	if resp == nil {
		return nil, transportError(fmt.Errorf("no response"))
	}
	if !resp.OK() {
		c.logger.Warn("case page returned non-2xx",
			logging.Field{Key: "url", Value: locator},
			logging.Field{Key: "status", Value: resp.StatusCode})
		return nil, statusError(resp.StatusCode)
	}

	rec, err = c.extractor.ExtractHTML(resp.Body, resp.Headers.Get("Content-Type"))
	if err != nil {
		return nil, parseError(err)
	}

	c.logger.Info("case page extracted",
		logging.Field{Key: "url", Value: locator},
		logging.Field{Key: "orders", Value: len(rec.Orders)},
		logging.Field{Key: "found", Value: rec.Present()})
	return rec, nil
}

// Result is one outcome of FetchBatch.
type Result struct {
	Index   int
	Locator string
	Record  *model.CaseRecord
	Err     error
}

// FetchBatch looks up every locator with at most MaxConcurrency lookups in
// flight. onResult is called exactly once per locator, from a single
// goroutine, in completion order. Locators not started before ctx is done
// are reported with a transport LookupError.
func (c *Coordinator) FetchBatch(ctx context.Context, locators []string, onResult func(Result)) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, c.MaxConcurrency)
	resCh := make(chan Result)
	consumerDone := make(chan struct{})

	go func() {
		defer close(consumerDone)
		for r := range resCh {
			if onResult != nil {
				onResult(r)
			}
		}
	}()

	for i, locator := range locators {
		wg.Add(1)

		go func(i int, locator string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				resCh <- Result{Index: i, Locator: locator, Err: transportError(ctx.Err())}
				return
			}
			defer func() { <-sem }()

			rec, err := c.FetchCase(ctx, locator)
			resCh <- Result{Index: i, Locator: locator, Record: rec, Err: err}
		}(i, locator)
	}

	wg.Wait()
	close(resCh)
	<-consumerDone
}

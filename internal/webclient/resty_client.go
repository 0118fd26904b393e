package webclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/raysh454/caselookup/internal/logging"
)

// RestyClient is a WebClient backed by go-resty.
type RestyClient struct {
	client *resty.Client
	logger logging.Logger
}

// NewRestyClient wraps rc, or a fresh resty client when rc is nil. Retries
// stay disabled: a lookup issues exactly one request.
func NewRestyClient(cfg Config, logger logging.Logger, rc *resty.Client) (*RestyClient, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	componentLogger := logger.With(logging.Field{Key: "backend", Value: "resty"})

	if rc == nil {
		rc = resty.New()
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultConfig().Timeout
		}
		rc.SetTimeout(timeout)
	}
	rc.SetRetryCount(0)
	if cfg.UserAgent != "" {
		rc.SetHeader("User-Agent", cfg.UserAgent)
	}

	componentLogger.Debug("created resty webclient")

	return &RestyClient{client: rc, logger: componentLogger}, nil
}

func (rc *RestyClient) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	r := rc.client.R().SetContext(ctx)
	if len(req.Headers) > 0 {
		r.SetHeaderMultiValues(req.Headers)
	}
	if len(req.Body) > 0 {
		r.SetBody(req.Body)
	}

	rc.logger.Debug("sending http request",
		logging.Field{Key: "method", Value: method},
		logging.Field{Key: "url", Value: req.URL})

	resp, err := r.Execute(method, req.URL)
	if err != nil {
		rc.logger.Warn("http request failed",
			logging.Field{Key: "method", Value: method},
			logging.Field{Key: "url", Value: req.URL},
			logging.Field{Key: "error", Value: err.Error()})
		return nil, fmt.Errorf("resty execute: %w", err)
	}

	fetchedAt := resp.ReceivedAt()
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}

	return &Response{
		Request:    req,
		Body:       resp.Body(),
		Headers:    resp.Header(),
		StatusCode: resp.StatusCode(),
		FetchedAt:  fetchedAt,
	}, nil
}

func (rc *RestyClient) Get(ctx context.Context, url string) (*Response, error) {
	return rc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}

func (rc *RestyClient) Close() error {
	rc.logger.Debug("closing resty webclient")
	rc.client.GetClient().CloseIdleConnections()
	return nil
}

package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/model"
	"github.com/raysh454/caselookup/internal/utils"
	"github.com/raysh454/caselookup/internal/webclient"
)

// APIResponse is the raw answer of the lookup endpoint.
type APIResponse struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *APIResponse) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// API submits a lookup to the backend.
type API interface {
	Lookup(ctx context.Context, q model.CaseQuery) (*APIResponse, error)
}

// HTTPAPI posts lookups to a running caselookup server.
type HTTPAPI struct {
	endpoint string
	wc       webclient.WebClient
	logger   logging.Logger
}

// NewHTTPAPI targets the server at endpoint, e.g. "http://localhost:3000".
func NewHTTPAPI(endpoint string, wc webclient.WebClient, logger logging.Logger) (*HTTPAPI, error) {
	u, err := utils.ParseLocator(endpoint)
	if err != nil {
		return nil, fmt.Errorf("client endpoint: %w", err)
	}
	if wc == nil {
		return nil, fmt.Errorf("client: webclient is nil")
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &HTTPAPI{
		endpoint: strings.TrimRight(u.String(), "/"),
		wc:       wc,
		logger:   logger.With(logging.Field{Key: "component", Value: "client_api"}),
	}, nil
}

func (a *HTTPAPI) Lookup(ctx context.Context, q model.CaseQuery) (*APIResponse, error) {
	body, err := json.Marshal(q)
	if err != nil {
		return nil, fmt.Errorf("encode lookup: %w", err)
	}

	resp, err := a.wc.Do(ctx, &webclient.Request{
		Method:  http.MethodPost,
		URL:     a.endpoint + "/fetch-case",
		Headers: http.Header{"Content-Type": []string{"application/json"}},
		Body:    body,
	})
	if err != nil {
		return nil, err
	}

	a.logger.Debug("lookup answered",
		logging.Field{Key: "status", Value: resp.StatusCode},
		logging.Field{Key: "request_id", Value: resp.Headers.Get("X-Request-ID")})
	return &APIResponse{StatusCode: resp.StatusCode, Body: resp.Body}, nil
}

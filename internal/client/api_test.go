package client_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/caselookup/internal/client"
	"github.com/raysh454/caselookup/internal/model"
	"github.com/raysh454/caselookup/internal/testutil"
	"github.com/raysh454/caselookup/internal/webclient"
)

func newWebClient(t *testing.T) webclient.WebClient {
	t.Helper()
	wc, err := webclient.NewWebClient(webclient.Config{Client: webclient.ClientNetHTTP, Timeout: 5 * time.Second}, &testutil.DummyLogger{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = wc.Close() })
	return wc
}

func TestHTTPAPI_PostsCaseQuery(t *testing.T) {
	t.Parallel()

	var got model.CaseQuery
	var contentType, method, path string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, path, contentType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"petitioner":"P","orders":[]}`))
	}))
	defer ts.Close()

	api, err := client.NewHTTPAPI(ts.URL+"/", newWebClient(t), nil)
	require.NoError(t, err)

	resp, err := api.Lookup(context.Background(), model.CaseQuery{CaseType: "FAO", CaseNumber: " 12 ", FilingYear: "2021"})
	require.NoError(t, err)

	assert.True(t, resp.OK())
	assert.JSONEq(t, `{"petitioner":"P","orders":[]}`, string(resp.Body))
	assert.Equal(t, http.MethodPost, method)
	assert.Equal(t, "/fetch-case", path)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, model.CaseQuery{CaseType: "FAO", CaseNumber: " 12 ", FilingYear: "2021"}, got)
}

func TestHTTPAPI_ReturnsErrorStatusAsResponse(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"court site returned status 500"}`))
	}))
	defer ts.Close()

	api, err := client.NewHTTPAPI(ts.URL, newWebClient(t), nil)
	require.NoError(t, err)

	resp, err := api.Lookup(context.Background(), model.CaseQuery{})
	require.NoError(t, err)
	assert.False(t, resp.OK())
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestNewHTTPAPI_RejectsBadEndpoint(t *testing.T) {
	t.Parallel()

	_, err := client.NewHTTPAPI("localhost:3000", &testutil.DummyWebClient{}, nil)
	assert.Error(t, err)

	_, err = client.NewHTTPAPI("http://localhost:3000", nil, nil)
	assert.Error(t, err)
}

func TestController_WithHTTPAPIEndToEnd(t *testing.T) {
	t.Parallel()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"petitioner":"ACME","pdf_url":"/latest.pdf"}`))
	}))
	defer ts.Close()

	api, err := client.NewHTTPAPI(ts.URL, newWebClient(t), nil)
	require.NoError(t, err)
	check, err := client.NewDialCheck(ts.URL, time.Second)
	require.NoError(t, err)

	c := client.NewController(api, check, nil)
	fillValid(c)
	require.NoError(t, c.Submit(context.Background()))

	snap := c.Snapshot()
	require.Equal(t, client.Succeeded, snap.State)
	assert.Equal(t, []model.OrderLink{{Name: client.LatestOrderName, URL: "/latest.pdf"}}, snap.Result.Orders)
}

// ─── Connectivity ──────────────────────────────────────────────────────

func TestDialCheck(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	check, err := client.NewDialCheck("http://"+addr, time.Second)
	require.NoError(t, err)
	assert.Equal(t, addr, check.Addr)
	assert.True(t, check.Online(context.Background()))

	require.NoError(t, ln.Close())
	assert.False(t, check.Online(context.Background()))
}

func TestNewDialCheck_DefaultPorts(t *testing.T) {
	t.Parallel()

	p, err := client.NewDialCheck("https://court.example.test/x", 0)
	require.NoError(t, err)
	assert.Equal(t, "court.example.test:443", p.Addr)

	p, err = client.NewDialCheck("http://court.example.test", 0)
	require.NoError(t, err)
	assert.Equal(t, "court.example.test:80", p.Addr)

	_, err = client.NewDialCheck("not a url", 0)
	assert.Error(t, err)
}

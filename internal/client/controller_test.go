package client_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raysh454/caselookup/internal/client"
	"github.com/raysh454/caselookup/internal/model"
	"github.com/raysh454/caselookup/internal/testutil"
)

// fakeAPI records calls and answers with a fixed response.
type fakeAPI struct {
	resp  *client.APIResponse
	err   error
	block chan struct{}

	mu      sync.Mutex
	queries []model.CaseQuery
}

func (f *fakeAPI) Lookup(ctx context.Context, q model.CaseQuery) (*client.APIResponse, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.resp, f.err
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func ok(body string) *client.APIResponse {
	return &client.APIResponse{StatusCode: 200, Body: []byte(body)}
}

func fillValid(c *client.Controller) {
	c.Edit(client.FieldCaseType, "W.P.(C)")
	c.Edit(client.FieldCaseNumber, "123")
	c.Edit(client.FieldFilingYear, "2023")
}

func newController(api client.API, online bool) *client.Controller {
	check := client.ConnectivityFunc(func(context.Context) bool { return online })
	return client.NewController(api, check, &testutil.DummyLogger{})
}

// ─── Enablement ────────────────────────────────────────────────────────

func TestController_SubmitEnablement(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name              string
		typ, number, year string
		want              bool
	}{
		{"complete", "FAO", "1", "2023", true},
		{"lower year bound", "FAO", "1", "1900", true},
		{"upper year bound", "FAO", "1", "2099", true},
		{"no type", "", "1", "2023", false},
		{"zero number", "FAO", "0", "2023", false},
		{"negative number", "FAO", "-3", "2023", false},
		{"non numeric number", "FAO", "abc", "2023", false},
		{"year too low", "FAO", "1", "1899", false},
		{"year too high", "FAO", "1", "2100", false},
		{"empty year", "FAO", "1", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newController(&fakeAPI{}, true)
			c.Edit(client.FieldCaseType, tc.typ)
			c.Edit(client.FieldCaseNumber, tc.number)
			c.Edit(client.FieldFilingYear, tc.year)

			snap := c.Snapshot()
			assert.Equal(t, tc.want, snap.CanSubmit)
			assert.Equal(t, client.Idle, snap.State, "editing must not change state")
		})
	}
}

func TestController_ZeroCaseNumberNeverSubmits(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{resp: ok(`{}`)}
	c := newController(api, true)

	c.Edit(client.FieldCaseType, "FAO")
	c.Edit(client.FieldCaseNumber, "0")
	c.Edit(client.FieldFilingYear, "2023")

	err := c.Submit(context.Background())

	require.ErrorIs(t, err, client.ErrSubmitDisabled)
	assert.False(t, c.Snapshot().CanSubmit)
	assert.Equal(t, client.Idle, c.Snapshot().State)
	assert.Zero(t, api.calls())
}

// ─── Connectivity ──────────────────────────────────────────────────────

func TestController_OfflineAtSubmit(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{resp: ok(`{}`)}
	c := newController(api, false)
	fillValid(c)

	err := c.Submit(context.Background())

	require.ErrorIs(t, err, client.ErrOffline)
	snap := c.Snapshot()
	assert.Equal(t, client.Offline, snap.State)
	assert.Equal(t, client.OfflineMessage, snap.Error)
	assert.True(t, snap.CanSubmit, "submit re-enabled after offline")
	assert.Zero(t, api.calls())
}

func TestController_SetOnline(t *testing.T) {
	t.Parallel()
	c := newController(&fakeAPI{}, true)

	c.SetOnline(false)
	assert.Equal(t, client.Offline, c.Snapshot().State)

	c.SetOnline(true)
	assert.Equal(t, client.Idle, c.Snapshot().State)
	assert.Empty(t, c.Snapshot().Error)
}

func TestController_CheckOnlineFollowsConnectivity(t *testing.T) {
	t.Parallel()
	var online atomic.Bool
	online.Store(true)
	c := client.NewController(&fakeAPI{}, client.ConnectivityFunc(func(context.Context) bool {
		return online.Load()
	}), nil)
	fillValid(c)

	assert.True(t, c.CheckOnline(context.Background()))
	assert.Equal(t, client.Idle, c.Snapshot().State)

	online.Store(false)
	assert.False(t, c.CheckOnline(context.Background()))
	snap := c.Snapshot()
	assert.Equal(t, client.Offline, snap.State)
	assert.Equal(t, client.OfflineMessage, snap.Error)

	online.Store(true)
	assert.True(t, c.CheckOnline(context.Background()))
	snap = c.Snapshot()
	assert.Equal(t, client.Idle, snap.State)
	assert.Equal(t, "123", snap.Form.CaseNumber, "form survives the offline spell")
}

func TestController_CheckOnlineIgnoresCanceledCheck(t *testing.T) {
	t.Parallel()
	c := newController(&fakeAPI{}, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c.CheckOnline(ctx)

	assert.Equal(t, client.Idle, c.Snapshot().State)
}

// ─── Dismiss ───────────────────────────────────────────────────────────

func TestController_DismissFailure(t *testing.T) {
	t.Parallel()
	c := newController(&fakeAPI{resp: ok(`{"error":"case not found"}`)}, true)
	fillValid(c)
	require.NoError(t, c.Submit(context.Background()))
	require.Equal(t, client.Failed, c.Snapshot().State)

	c.Dismiss()

	snap := c.Snapshot()
	assert.Equal(t, client.Idle, snap.State)
	assert.Empty(t, snap.Error)
	assert.Equal(t, "2023", snap.Form.FilingYear, "form is kept")
	assert.True(t, snap.CanSubmit)
}

func TestController_DismissOffline(t *testing.T) {
	t.Parallel()
	c := newController(&fakeAPI{}, true)
	c.SetOnline(false)

	c.Dismiss()

	assert.Equal(t, client.Idle, c.Snapshot().State)
	assert.Empty(t, c.Snapshot().Error)
}

func TestController_DismissKeepsResult(t *testing.T) {
	t.Parallel()
	c := newController(&fakeAPI{}, true)
	c.ShowDemo()

	c.Dismiss()

	snap := c.Snapshot()
	assert.Equal(t, client.Succeeded, snap.State)
	assert.NotNil(t, snap.Result)
}

// ─── Outcomes ──────────────────────────────────────────────────────────

func TestController_Success(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{resp: ok(`{"petitioner":"ACME","respondent":null,"filing_date":"2023-01-02","next_hearing":null,"orders":[{"name":"Order 1","url":"/o1.pdf"}]}`)}
	c := newController(api, true)
	fillValid(c)

	require.NoError(t, c.Submit(context.Background()))

	snap := c.Snapshot()
	assert.Equal(t, client.Succeeded, snap.State)
	assert.False(t, snap.Loading)
	assert.Empty(t, snap.Error)
	require.NotNil(t, snap.Result)
	assert.Equal(t, "ACME", client.Display(snap.Result.Petitioner))
	assert.Equal(t, client.NotFound, client.Display(snap.Result.Respondent))
	assert.Equal(t, []model.OrderLink{{Name: "Order 1", URL: "/o1.pdf"}}, snap.Result.Orders)

	require.Equal(t, 1, api.calls())
	assert.Equal(t, model.CaseQuery{CaseType: "W.P.(C)", CaseNumber: "123", FilingYear: "2023"}, api.queries[0])
}

func TestController_FailureMessages(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		resp *client.APIResponse
		err  error
		want string
	}{
		{"error field", &client.APIResponse{StatusCode: 502, Body: []byte(`{"error":"court site returned status 503"}`)}, nil, "court site returned status 503"},
		{"error field on 200", ok(`{"error":"case not found"}`), nil, "case not found"},
		{"non-2xx without message", &client.APIResponse{StatusCode: 500, Body: []byte(`{}`)}, nil, client.FallbackError},
		{"non-2xx non-json", &client.APIResponse{StatusCode: 500, Body: []byte(`Internal Server Error`)}, nil, client.FallbackError},
		{"empty body", ok(``), nil, client.FallbackError},
		{"null body", ok(`null`), nil, client.FallbackError},
		{"transport error", nil, errors.New("connection refused"), "connection refused"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := newController(&fakeAPI{resp: tc.resp, err: tc.err}, true)
			fillValid(c)

			require.NoError(t, c.Submit(context.Background()))

			snap := c.Snapshot()
			assert.Equal(t, client.Failed, snap.State)
			assert.Equal(t, tc.want, snap.Error)
			assert.Nil(t, snap.Result)
			assert.True(t, snap.CanSubmit)
		})
	}
}

// ─── Concurrency ───────────────────────────────────────────────────────

func TestController_SingleOutstandingSubmission(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{resp: ok(`{}`), block: make(chan struct{})}
	c := newController(api, true)
	fillValid(c)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()

	require.Eventually(t, func() bool { return c.Snapshot().State == client.Submitting }, time.Second, 5*time.Millisecond)
	snap := c.Snapshot()
	assert.True(t, snap.Loading)
	assert.False(t, snap.CanSubmit)

	assert.ErrorIs(t, c.Submit(context.Background()), client.ErrSubmitInFlight)

	close(api.block)
	require.NoError(t, <-done)
	assert.Equal(t, 1, api.calls())
	assert.Equal(t, client.Succeeded, c.Snapshot().State)
}

func TestController_ConcurrentSubmitsIssueOneRequest(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{resp: ok(`{}`), block: make(chan struct{})}
	c := newController(api, true)
	fillValid(c)

	var rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if errors.Is(c.Submit(context.Background()), client.ErrSubmitInFlight) {
				rejected.Add(1)
			}
		}()
	}
	require.Eventually(t, func() bool { return rejected.Load() == 7 }, time.Second, 5*time.Millisecond)
	close(api.block)
	wg.Wait()

	assert.Equal(t, 1, api.calls())
}

// ─── Reset & demo ──────────────────────────────────────────────────────

func TestController_ResetFromAnyState(t *testing.T) {
	t.Parallel()

	setups := map[string]func(c *client.Controller){
		"succeeded": func(c *client.Controller) { fillValid(c); _ = c.Submit(context.Background()) },
		"offline":   func(c *client.Controller) { c.SetOnline(false) },
		"demo":      func(c *client.Controller) { c.ShowDemo() },
	}
	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			c := newController(&fakeAPI{resp: ok(`{"petitioner":"P"}`)}, true)
			setup(c)
			require.NotEqual(t, client.Idle, c.Snapshot().State)

			c.Reset()

			snap := c.Snapshot()
			assert.Equal(t, client.Idle, snap.State)
			assert.Equal(t, client.Form{}, snap.Form)
			assert.Nil(t, snap.Result)
			assert.Empty(t, snap.Error)
			assert.False(t, snap.Demo)
			assert.False(t, snap.CanSubmit)
		})
	}
}

func TestController_ResetDiscardsInFlightOutcome(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{resp: ok(`{"petitioner":"late"}`), block: make(chan struct{})}
	c := newController(api, true)
	fillValid(c)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background()) }()
	require.Eventually(t, func() bool { return c.Snapshot().State == client.Submitting }, time.Second, 5*time.Millisecond)

	c.Reset()
	close(api.block)
	require.NoError(t, <-done)

	snap := c.Snapshot()
	assert.Equal(t, client.Idle, snap.State)
	assert.Nil(t, snap.Result)
}

func TestController_ShowDemo(t *testing.T) {
	t.Parallel()
	api := &fakeAPI{}
	c := newController(api, true)

	c.ShowDemo()

	snap := c.Snapshot()
	assert.Equal(t, client.Succeeded, snap.State)
	assert.True(t, snap.Demo)
	assert.Equal(t, client.DemoCase(), snap.Result)
	assert.Zero(t, api.calls())
}

// ─── Pagination ────────────────────────────────────────────────────────

func TestSnapshot_OrdersPaging(t *testing.T) {
	t.Parallel()

	orders := make([]model.OrderLink, 12)
	for i := range orders {
		orders[i] = model.OrderLink{Name: string(rune('a' + i)), URL: "/x.pdf"}
	}
	snap := client.Snapshot{Result: &model.CaseRecord{Orders: orders}}

	assert.Equal(t, 3, snap.Pages())
	assert.Len(t, snap.OrdersPage(0), 5)
	assert.Len(t, snap.OrdersPage(2), 2)
	assert.Nil(t, snap.OrdersPage(3))
	assert.Nil(t, snap.OrdersPage(-1))
	assert.Zero(t, client.Snapshot{}.Pages())
}

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/raysh454/caselookup/internal/logging"
	"github.com/raysh454/caselookup/internal/model"
)

// FallbackError is shown when a failed response carries no message.
const FallbackError = "No data found for this case."

// OfflineMessage is shown while the backend is unreachable.
const OfflineMessage = "You appear to be offline. Check your connection and try again."

var (
	ErrSubmitDisabled = errors.New("submit disabled: form is incomplete or invalid")
	ErrSubmitInFlight = errors.New("submit disabled: a lookup is already running")
	ErrOffline        = errors.New("backend unreachable")
)

// PageSize is the number of orders shown per page.
const PageSize = 5

// Snapshot is an immutable view of the controller for rendering.
type Snapshot struct {
	State     State
	Form      Form
	CanSubmit bool
	Loading   bool
	Result    *model.CaseRecord
	Error     string
	Demo      bool
}

// Pages returns the number of order pages of the current result.
func (s Snapshot) Pages() int {
	if s.Result == nil || len(s.Result.Orders) == 0 {
		return 0
	}
	return (len(s.Result.Orders) + PageSize - 1) / PageSize
}

// OrdersPage returns the orders on page p, counting from zero.
func (s Snapshot) OrdersPage(p int) []model.OrderLink {
	if s.Result == nil || p < 0 {
		return nil
	}
	start := p * PageSize
	if start >= len(s.Result.Orders) {
		return nil
	}
	end := min(start+PageSize, len(s.Result.Orders))
	return s.Result.Orders[start:end]
}

// Controller drives the lookup form. All methods are safe for concurrent
// use; at most one submission is outstanding at a time.
type Controller struct {
	api    API
	reach  Connectivity
	logger logging.Logger

	mu       sync.Mutex
	state    State
	form     Form
	result   *model.CaseRecord
	errMsg   string
	inFlight bool
	demo     bool
	gen      uint64
}

// NewController creates a controller in the Idle state. A nil Connectivity
// treats the backend as always reachable.
func NewController(api API, reach Connectivity, logger logging.Logger) *Controller {
	if reach == nil {
		reach = ConnectivityFunc(func(context.Context) bool { return true })
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Controller{
		api:    api,
		reach:  reach,
		logger: logger.With(logging.Field{Key: "component", Value: "client"}),
		state:  Idle,
	}
}

// Snapshot returns the current state for rendering.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:     c.state,
		Form:      c.form,
		CanSubmit: c.canSubmitLocked(),
		Loading:   c.state == Submitting,
		Result:    c.result,
		Error:     c.errMsg,
		Demo:      c.demo,
	}
}

// Edit updates one form field. Only submit enablement changes; panels and
// state stay as they are.
func (c *Controller) Edit(field Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.form.set(field, value)
}

func (c *Controller) canSubmitLocked() bool {
	return !c.inFlight && c.form.Valid()
}

// Submit runs one lookup for the current form. It returns
// ErrSubmitDisabled or ErrSubmitInFlight without touching state or issuing
// a request, and ErrOffline after moving to Offline when the backend is
// unreachable.
// Lookup failures are not returned; they end in the Failed state.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	if !c.form.Valid() {
		c.mu.Unlock()
		return ErrSubmitDisabled
	}
	c.inFlight = true
	c.state = Validating
	c.gen++
	gen := c.gen
	q := c.form.Query()
	c.mu.Unlock()

	if !c.reach.Online(ctx) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.inFlight = false
		if gen == c.gen {
			c.enterOfflineLocked()
		}
		c.logger.Warn("backend unreachable, lookup not sent")
		return ErrOffline
	}

	c.mu.Lock()
	if gen != c.gen {
		// Reset while probing.
		c.inFlight = false
		c.mu.Unlock()
		return nil
	}
	c.state = Submitting
	c.result = nil
	c.errMsg = ""
	c.demo = false
	c.mu.Unlock()

	c.logger.Info("submitting lookup",
		logging.Field{Key: "case_type", Value: q.CaseType},
		logging.Field{Key: "case_number", Value: q.CaseNumber},
		logging.Field{Key: "filing_year", Value: q.FilingYear})

	resp, err := c.api.Lookup(ctx, q)
	rec, msg := interpret(resp, err)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if gen != c.gen {
		return nil
	}
	if msg != "" {
		c.state = Failed
		c.errMsg = msg
		c.logger.Warn("lookup failed", logging.Field{Key: "message", Value: msg})
		return nil
	}
	c.state = Succeeded
	c.result = rec
	c.logger.Info("lookup succeeded", logging.Field{Key: "orders", Value: len(rec.Orders)})
	return nil
}

// interpret maps an API outcome to either a normalized record or a failure
// message.
func interpret(resp *APIResponse, err error) (*model.CaseRecord, string) {
	if err != nil {
		return nil, err.Error()
	}
	if resp == nil || len(bytes.TrimSpace(resp.Body)) == 0 {
		return nil, FallbackError
	}

	var p Payload
	if jerr := json.Unmarshal(resp.Body, &p); jerr != nil {
		if !resp.OK() {
			return nil, FallbackError
		}
		return nil, "invalid response from server"
	}
	if !resp.OK() || strings.TrimSpace(p.Error) != "" {
		if msg := strings.TrimSpace(p.Error); msg != "" {
			return nil, msg
		}
		return nil, FallbackError
	}
	if bytes.Equal(bytes.TrimSpace(resp.Body), []byte("null")) {
		return nil, FallbackError
	}
	return Normalize(p), nil
}

// CheckOnline asks the connectivity check whether the backend is reachable
// and applies the answer through SetOnline.
func (c *Controller) CheckOnline(ctx context.Context) bool {
	online := c.reach.Online(ctx)
	if ctx.Err() != nil {
		return online
	}
	c.SetOnline(online)
	return online
}

// SetOnline feeds connectivity changes. Going offline shows the offline
// panel unless a lookup is running; coming back clears it.
func (c *Controller) SetOnline(online bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if online {
		if c.state == Offline {
			c.state = Idle
			c.errMsg = ""
		}
		return
	}
	if c.state != Submitting && c.state != Validating {
		c.enterOfflineLocked()
	}
}

func (c *Controller) enterOfflineLocked() {
	c.state = Offline
	c.result = nil
	c.errMsg = OfflineMessage
	c.demo = false
}

// Dismiss closes the error or offline panel and returns to Idle, keeping
// the form so the user can correct it and submit again.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Failed && c.state != Offline {
		return
	}
	c.state = Idle
	c.errMsg = ""
}

// ShowDemo displays DemoCase as a successful result without a request.
func (c *Controller) ShowDemo() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return
	}
	c.state = Succeeded
	c.result = DemoCase()
	c.errMsg = ""
	c.demo = true
}

// Reset clears the form and every panel and returns to Idle. A running
// lookup is abandoned: its outcome is discarded when it arrives.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state = Idle
	c.form = Form{}
	c.result = nil
	c.errMsg = ""
	c.demo = false
}

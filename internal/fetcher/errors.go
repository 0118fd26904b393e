package fetcher

import "fmt"

// Kind classifies why a lookup failed.
type Kind string

const (
	// KindTransport: the page could not be retrieved at all.
	KindTransport Kind = "transport"
	// KindStatus: the court site answered with a non-2xx status.
	KindStatus Kind = "status"
	// KindParse: the body could not be decoded or parsed.
	KindParse Kind = "parse"
	// KindInternal: the pipeline panicked.
	KindInternal Kind = "internal"
)

// LookupError is the only error type returned by Coordinator.FetchCase.
// Message is safe to show to end users.
type LookupError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *LookupError) Error() string {
	return e.Message
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

func transportError(err error) *LookupError {
	return &LookupError{Kind: KindTransport, Message: fmt.Sprintf("failed to fetch case page: %v", err), Err: err}
}

func statusError(code int) *LookupError {
	return &LookupError{Kind: KindStatus, Message: fmt.Sprintf("court site returned status %d", code)}
}

func parseError(err error) *LookupError {
	return &LookupError{Kind: KindParse, Message: fmt.Sprintf("failed to parse case page: %v", err), Err: err}
}

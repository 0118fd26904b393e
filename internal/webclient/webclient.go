package webclient

import "context"

// WebClient retrieves a remote document. Implementations return the raw body
// together with the status code and report network failures as errors; a
// non-2xx status is not an error at this layer.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	// Get is a convenience method for simple GET requests
	Get(ctx context.Context, url string) (*Response, error)

	Close() error
}

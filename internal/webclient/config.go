package webclient

import "time"

type Client string

const (
	ClientNetHTTP  Client = "nethttp"
	ClientResty    Client = "resty"
	ClientChromedp Client = "chromedp"
)

type Config struct {
	Client Client

	// Timeout bounds a single retrieval. It is the only timeout applied to a
	// lookup; callers do not override it.
	Timeout time.Duration

	// UserAgent is sent when the request does not set one.
	UserAgent string

	// Headless and IdleAfter only apply to the chromedp backend.
	Headless  bool
	IdleAfter time.Duration
}

func DefaultConfig() Config {
	return Config{
		Client:    ClientNetHTTP,
		Timeout:   30 * time.Second,
		UserAgent: "caselookup/0.1",
		Headless:  true,
		IdleAfter: 2 * time.Second,
	}
}

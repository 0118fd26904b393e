package demoserver

import "time"

// Config holds configuration for the demo court server.
type Config struct {
	// Port is the port on which the demo server listens.
	Port int

	// Layout selects how case pages are rendered at startup. It can be
	// switched at runtime from the control panel.
	Layout Layout

	// Latency delays every case page response, to make loading states
	// visible in the client.
	Latency time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Port:   9999,
		Layout: LayoutTable,
	}
}

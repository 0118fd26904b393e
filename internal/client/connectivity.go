package client

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/raysh454/caselookup/internal/utils"
)

// Connectivity reports whether the backend is reachable right now.
type Connectivity interface {
	Online(ctx context.Context) bool
}

// ConnectivityFunc adapts a function to Connectivity.
type ConnectivityFunc func(ctx context.Context) bool

func (f ConnectivityFunc) Online(ctx context.Context) bool { return f(ctx) }

// DialCheck considers the backend online when a TCP connection to its
// address can be opened.
type DialCheck struct {
	Addr    string
	Timeout time.Duration
}

// NewDialCheck derives the dialed address from the client endpoint.
func NewDialCheck(endpoint string, timeout time.Duration) (*DialCheck, error) {
	u, err := utils.ParseLocator(endpoint)
	if err != nil {
		return nil, fmt.Errorf("connectivity endpoint: %w", err)
	}
	port := u.URL.Port()
	if port == "" {
		port = "80"
		if u.URL.Scheme == "https" {
			port = "443"
		}
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &DialCheck{Addr: net.JoinHostPort(u.URL.Hostname(), port), Timeout: timeout}, nil
}

func (p *DialCheck) Online(ctx context.Context) bool {
	d := net.Dialer{Timeout: p.Timeout}
	conn, err := d.DialContext(ctx, "tcp", p.Addr)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

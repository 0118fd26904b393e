package utils

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

var (
	ErrEmptyURL          = errors.New("empty url")
	ErrMissingHost       = errors.New("missing host")
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	ErrInvalidHost       = errors.New("invalid host")
)

type URLTools struct {
	URL *url.URL
}

// NewURLTools parses raw and normalizes scheme and host case. It does not
// enforce any locator rules; use ParseLocator for that.
func NewURLTools(raw string) (*URLTools, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("couldn't parse url %s: %w", raw, err)
	}

	urlTools := &URLTools{
		URL: u,
	}
	urlTools.normalize()

	return urlTools, nil
}

func (u *URLTools) normalize() {
	u.URL.Fragment = ""
	u.URL.Scheme = strings.ToLower(u.URL.Scheme)
	u.URL.Host = strings.ToLower(u.URL.Host)

	if (u.URL.Scheme == "http" && strings.HasSuffix(u.URL.Host, ":80")) ||
		(u.URL.Scheme == "https" && strings.HasSuffix(u.URL.Host, ":443")) {
		u.URL.Host, _, _ = strings.Cut(u.URL.Host, ":")
	}
}

// ParseLocator validates raw as a fetchable locator: an absolute http or
// https URL with a host that survives IDNA conversion.
//
// Examples:
//
//	"https://example.test/case"   → ok
//	"HTTP://Example.test:80/x#a"  → ok, "http://example.test/x"
//	"example.test/case"           → ErrUnsupportedScheme
//	"https:///case"               → ErrMissingHost
//	"ftp://example.test/file"     → ErrUnsupportedScheme
func ParseLocator(raw string) (*URLTools, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyURL
	}

	u, err := NewURLTools(raw)
	if err != nil {
		return nil, err
	}

	if u.URL.Scheme != "http" && u.URL.Scheme != "https" {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedScheme, u.URL.Scheme)
	}

	host := u.URL.Hostname()
	if host == "" {
		return nil, ErrMissingHost
	}

	if net.ParseIP(host) == nil {
		if _, err := idna.Lookup.ToASCII(host); err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidHost, host, err)
		}
	}

	return u, nil
}

// String returns the normalized URL.
func (u *URLTools) String() string {
	return u.URL.String()
}

package httpx

import (
	"net"
	"net/http"
	"time"
)

// One pooled transport for every outbound dependency; clients differ only
// in their request deadline.
var transport = &http.Transport{
	DialContext: (&net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	MaxIdleConns:        100,
	MaxConnsPerHost:     100,
	MaxIdleConnsPerHost: 10,
	IdleConnTimeout:     90 * time.Second,
}

const defaultTimeout = 10 * time.Second

var defaultClient = &http.Client{Timeout: defaultTimeout, Transport: transport}

func Client() *http.Client { return defaultClient }

// WithTimeout returns a client on the shared transport with its own
// request deadline.
func WithTimeout(d time.Duration) *http.Client {
	if d <= 0 {
		d = defaultTimeout
	}
	return &http.Client{Timeout: d, Transport: transport}
}

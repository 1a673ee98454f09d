package network

import (
	"context"
	"net"
	"net/http"
	"runtime"
	"time"

	"golang.org/x/net/proxy"
)

// NewProxyClient builds the HTTP client used by the bot API. Long polling keeps
// requests open for the poller timeout, so the client timeout must exceed it.
func NewProxyClient(dialer proxy.Dialer, config *ProxyConfig) *http.Client {
	dc := func(ctx context.Context, network, address string) (net.Conn, error) {
		if cd, ok := dialer.(proxy.ContextDialer); ok {
			return cd.DialContext(ctx, network, address)
		}
		return dialer.Dial(network, address)
	}

	return &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			DialContext:           dc,
			MaxIdleConns:          20,
			IdleConnTimeout:       10 * time.Minute,
			TLSHandshakeTimeout:   10 * time.Second,
			ExpectContinueTimeout: 5 * time.Second,
			MaxIdleConnsPerHost:   runtime.GOMAXPROCS(0) + 1,
		},
	}
}

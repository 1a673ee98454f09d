package network

import (
	"time"

	"pgbot/sources/platform"
)

// ProxyConfig describes the optional SOCKS5 proxy for outgoing bot API traffic.
// An empty address means direct connections.
type ProxyConfig struct {
	ProxyAddress string
	ProxyUser    string
	ProxyPass    string
	Timeout      time.Duration
}

func NewProxyConfig() *ProxyConfig {
	return &ProxyConfig{
		ProxyAddress: platform.Get("PROXY_ADDRESS", ""),
		ProxyUser:    platform.Get("PROXY_USER", ""),
		ProxyPass:    platform.Get("PROXY_PASS", ""),
		Timeout:      platform.GetAsDuration("PROXY_TIMEOUT", "90s"),
	}
}

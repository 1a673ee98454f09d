package network

import (
	"fmt"

	"pgbot/sources/tracing"

	"golang.org/x/net/proxy"
)

func NewProxyDialer(config *ProxyConfig, log *tracing.Logger) (proxy.Dialer, error) {
	if config.ProxyAddress == "" {
		log.I("No proxy configured, dialing directly")
		return proxy.Direct, nil
	}

	var auth *proxy.Auth
	if config.ProxyUser != "" {
		auth = &proxy.Auth{User: config.ProxyUser, Password: config.ProxyPass}
	}

	dialer, err := proxy.SOCKS5("tcp", config.ProxyAddress, auth, proxy.Direct)
	if err != nil {
		log.E("Failed to create proxy dialer", tracing.InnerError, err)
		return nil, fmt.Errorf("create socks5 dialer for %s: %w", config.ProxyAddress, err)
	}

	log.I("Proxy dialer created", "proxy_address", config.ProxyAddress, "auth", auth != nil)
	return dialer, nil
}

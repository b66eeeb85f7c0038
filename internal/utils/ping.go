package utils

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"time"
)

// pingTimeout bounds each reachability check so health reports stay fast.
const pingTimeout = 1500 * time.Millisecond

// PingService checks TCP reachability of the host behind a service URL.
func PingService(serviceURL string, timeout time.Duration) error {
	parsedURL, err := url.Parse(serviceURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	port := parsedURL.Port()
	if port == "" {
		port = schemePort(parsedURL.Scheme)
	}
	address := net.JoinHostPort(parsedURL.Hostname(), port)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return conn.Close()
}

func schemePort(scheme string) string {
	if scheme == "https" {
		return "443"
	}
	return "80"
}

// PingAuthorizer checks if the Authorizer service is reachable
func PingAuthorizer(authzURL string) error {
	return PingService(authzURL, pingTimeout)
}

// PingClassifier checks if the classifier API endpoint is reachable
func PingClassifier(baseURL string) error {
	return PingService(baseURL, pingTimeout)
}

// Copyright (c) 2025 Gabi CLI contributors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package httperrors provides user-friendly handling of transport failures.
// It classifies common network error types (timeout, DNS, connection refused,
// TLS) and prints a short troubleshooting hint so a failed invocation is
// actionable without reading Go error chains.
package httperrors

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/pterm/pterm"
)

// Explain prints a troubleshooting hint for transport-level failures and
// returns the error unchanged. Errors that are not transport failures (for
// example HTTP status errors from the service) pass through silently.
func Explain(err error, doing string) error {
	if err == nil {
		return nil
	}

	switch {
	case isTimeoutError(err):
		pterm.Warning.Printfln("Timed out while %s.", doing)
		pterm.Println("The service took too long to respond. Long-running queries may need a larger --timeout.")
	case isDNSError(err):
		pterm.Warning.Printfln("Cannot resolve the service host while %s.", doing)
		pterm.Println("Check the --url value (or GABI_URL) and your network's DNS settings.")
	case isConnectionRefusedError(err):
		pterm.Warning.Printfln("Connection refused while %s.", doing)
		pterm.Println("The service is not accepting connections. Verify the URL, port, and that the service is running.")
	case isTLSError(err):
		pterm.Warning.Printfln("Secure connection failed while %s.", doing)
		pterm.Println("Check for proxies interfering with HTTPS and that your system clock is correct.")
	}
	return err
}

// isTimeoutError checks if the error is a timeout error.
func isTimeoutError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// isDNSError checks if the error is a DNS resolution error.
func isDNSError(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}

// isConnectionRefusedError checks if the error is a connection refused error.
func isConnectionRefusedError(err error) bool {
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return errors.Is(opErr.Err, syscall.ECONNREFUSED)
	}
	return strings.Contains(strings.ToLower(err.Error()), "connection refused")
}

// isTLSError checks if the error is a TLS/certificate error.
func isTLSError(err error) bool {
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "handshake")
}

// ExtractHostFromURL extracts the hostname from a URL for error messages.
func ExtractHostFromURL(urlStr string) string {
	u, err := url.Parse(urlStr)
	if err != nil || u.Host == "" {
		return "service"
	}
	return u.Host
}

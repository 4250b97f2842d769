package http

import (
	"net"
	"net/http"
	"strings"
)

// ExtractClientIP extracts the client IP for audit records. X-Forwarded-For
// and X-Real-IP are only honored when the request came through a trusted
// proxy; otherwise RemoteAddr wins, so a client cannot spoof its audit IP
// with a header.
func ExtractClientIP(r *http.Request, trustedProxies []string) string {
	remoteIP := remoteAddr(r)

	if isTrustedProxy(remoteIP, trustedProxies) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			for _, ip := range strings.Split(xff, ",") {
				ip = strings.TrimSpace(ip)
				if net.ParseIP(ip) != nil {
					return ip
				}
			}
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			if net.ParseIP(xri) != nil {
				return xri
			}
		}
	}

	return remoteIP
}

func remoteAddr(r *http.Request) string {
	if r.RemoteAddr == "" {
		return "unknown"
	}
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}
	return r.RemoteAddr
}

func isTrustedProxy(ip string, trustedProxies []string) bool {
	if len(trustedProxies) == 0 {
		return false
	}

	clientIP := net.ParseIP(ip)
	if clientIP == nil {
		return false
	}

	for _, entry := range trustedProxies {
		if _, ipNet, err := net.ParseCIDR(entry); err == nil {
			if ipNet.Contains(clientIP) {
				return true
			}
			continue
		}
		// Bare IPs are accepted alongside CIDR ranges
		if proxyIP := net.ParseIP(entry); proxyIP != nil && proxyIP.Equal(clientIP) {
			return true
		}
	}

	return false
}

package httpapi

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// clientIPHeaders are checked in order before falling back to RemoteAddr.
var clientIPHeaders = []string{"Fly-Client-IP", "X-Forwarded-For", "X-Real-IP"}

// clientIP returns the caller address for access logs. Forwarded headers are
// trusted as-is; the value is only logged, never used for access control.
func clientIP(r *http.Request) string {
	for _, header := range clientIPHeaders {
		if ip, ok := parseIP(r.Header.Get(header)); ok {
			return ip
		}
	}
	if ip, ok := parseIP(r.RemoteAddr); ok {
		return ip
	}
	return ""
}

// parseIP takes the first entry of a forwarded list and strips any port.
func parseIP(raw string) (string, bool) {
	value, _, _ := strings.Cut(raw, ",")
	value = strings.TrimSpace(value)
	if value == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(value); err == nil {
		value = host
	}

	addr, err := netip.ParseAddr(value)
	if err != nil {
		return "", false
	}
	return addr.Unmap().String(), true
}

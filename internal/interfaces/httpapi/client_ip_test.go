package httpapi

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "fly header wins", headers: map[string]string{"Fly-Client-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, remote: "10.0.0.1:1234", want: "203.0.113.7"},
		{name: "first forwarded hop", headers: map[string]string{"X-Forwarded-For": "198.51.100.1, 10.0.0.2"}, remote: "10.0.0.1:1234", want: "198.51.100.1"},
		{name: "invalid header falls through", headers: map[string]string{"X-Real-IP": "not-an-ip"}, remote: "192.0.2.10:5555", want: "192.0.2.10"},
		{name: "ipv6 remote with port", remote: "[2001:db8::1]:443", want: "2001:db8::1"},
		{name: "mapped ipv4", headers: map[string]string{"X-Real-IP": "::ffff:192.0.2.44"}, want: "192.0.2.44"},
		{name: "nothing usable", remote: "pipe", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/v1/standings", nil)
			r.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				r.Header.Set(k, v)
			}
			if got := clientIP(r); got != tc.want {
				t.Fatalf("clientIP()=%q want %q", got, tc.want)
			}
		})
	}
}

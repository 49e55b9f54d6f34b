package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remote     string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{name: "remote addr", remote: "10.0.0.5:5555", want: "10.0.0.5"},
		{name: "headers ignored without trust", remote: "10.0.0.5:5555",
			headers: map[string]string{"X-Forwarded-For": "1.2.3.4"}, want: "10.0.0.5"},
		{name: "cloudflare first", remote: "127.0.0.1:1", trustProxy: true,
			headers: map[string]string{"CF-Connecting-IP": "9.9.9.9", "X-Forwarded-For": "1.2.3.4"}, want: "9.9.9.9"},
		{name: "left-most forwarded", remote: "127.0.0.1:1", trustProxy: true,
			headers: map[string]string{"X-Forwarded-For": " 1.2.3.4 , 5.6.7.8"}, want: "1.2.3.4"},
		{name: "real ip", remote: "127.0.0.1:1", trustProxy: true,
			headers: map[string]string{"X-Real-IP": "[2001:db8::1]:443"}, want: "2001:db8::1"},
		{name: "fallback to remote", remote: "127.0.0.1:1", trustProxy: true, want: "127.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIP(r, tt.trustProxy))
		})
	}
}

func TestIPMatcher(t *testing.T) {
	m := NewIPMatcher([]string{"192.168.1.0/24", " 10.0.0.1 ", "2001:db8::/32", "garbage", ""})
	assert.False(t, m.IsEmpty())

	assert.True(t, m.Allow("192.168.1.77"))
	assert.True(t, m.Allow("10.0.0.1"))
	assert.True(t, m.Allow("::ffff:10.0.0.1"))
	assert.True(t, m.Allow("2001:db8:1::5"))
	assert.False(t, m.Allow("10.0.0.2"))
	assert.False(t, m.Allow("not-an-ip"))

	assert.True(t, NewIPMatcher([]string{"bogus"}).IsEmpty())
}

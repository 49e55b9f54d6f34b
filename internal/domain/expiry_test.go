package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPresentExpiry(t *testing.T) {
	tests := []struct {
		name    string
		action  ExpiryAction
		message string
		url     string
		want    ExpiryView
	}{
		{
			name:   "hide renders nothing",
			action: ActionHide,
			want:   ExpiryView{Kind: ExpiryHide},
		},
		{
			name:    "message is verbatim",
			action:  ActionMessage,
			message: "  Sale over <b>{{name}}</b>  ",
			want:    ExpiryView{Kind: ExpiryMessage, Message: "  Sale over <b>{{name}}</b>  "},
		},
		{
			name:   "redirect to absolute url",
			action: ActionRedirect,
			url:    "https://example.com",
			want:   ExpiryView{Kind: ExpiryRedirect, RedirectURL: "https://example.com", Navigate: true},
		},
		{
			name:   "redirect to site path",
			action: ActionRedirect,
			url:    "/thanks",
			want:   ExpiryView{Kind: ExpiryRedirect, RedirectURL: "/thanks", Navigate: true},
		},
		{
			name:   "redirect with empty url is a no-op",
			action: ActionRedirect,
			want:   ExpiryView{Kind: ExpiryRedirect},
		},
		{
			name:   "redirect with malformed url is a no-op",
			action: ActionRedirect,
			url:    "http://[::1",
			want:   ExpiryView{Kind: ExpiryRedirect, RedirectURL: "http://[::1"},
		},
		{
			name:   "redirect to script url is a no-op",
			action: ActionRedirect,
			url:    "javascript:alert(1)",
			want:   ExpiryView{Kind: ExpiryRedirect, RedirectURL: "javascript:alert(1)"},
		},
		{
			name:    "restart falls back to empty message",
			action:  ActionRestart,
			message: "ignored",
			want:    ExpiryView{Kind: ExpiryMessage, Fallback: true},
		},
		{
			name:   "unknown action falls back to empty message",
			action: ExpiryAction("explode"),
			want:   ExpiryView{Kind: ExpiryMessage, Fallback: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PresentExpiry(tt.action, tt.message, tt.url))
		})
	}
}

func TestIsNavigable(t *testing.T) {
	assert.True(t, IsNavigable("http://example.com/a?b=c"))
	assert.True(t, IsNavigable("/relative/path"))
	assert.False(t, IsNavigable(""))
	assert.False(t, IsNavigable("example.com"))
	assert.False(t, IsNavigable("//example.com"))
	assert.False(t, IsNavigable("https://"))
	assert.False(t, IsNavigable("ftp://example.com"))
}

package domain

import (
	"net/url"
	"strings"
)

// ExpiryKind is how an expired widget presents itself.
type ExpiryKind string

const (
	ExpiryHide     ExpiryKind = "hide"
	ExpiryMessage  ExpiryKind = "message"
	ExpiryRedirect ExpiryKind = "redirect"
)

// ExpiryView is the presentation of an expired widget.
type ExpiryView struct {
	Kind ExpiryKind `json:"kind"`
	// Message is rendered verbatim in place of the timer (message kind only).
	Message string `json:"message,omitempty"`
	// RedirectURL is the navigation target (redirect kind only).
	RedirectURL string `json:"redirectUrl,omitempty"`
	// Navigate is false when a redirect has no usable URL: navigation simply
	// does not happen.
	Navigate bool `json:"navigate"`
	// Fallback marks actions that have no mapping of their own (restart and
	// unknown values). They render as an empty message.
	Fallback bool `json:"fallback,omitempty"`
}

// PresentExpiry maps an expiry action and its payloads to a view.
// It never fails: unmapped actions fall back to an empty message.
func PresentExpiry(action ExpiryAction, message, redirectURL string) ExpiryView {
	switch action {
	case ActionHide:
		return ExpiryView{Kind: ExpiryHide}
	case ActionMessage:
		return ExpiryView{Kind: ExpiryMessage, Message: message}
	case ActionRedirect:
		target := strings.TrimSpace(redirectURL)
		if !IsNavigable(target) {
			return ExpiryView{Kind: ExpiryRedirect, RedirectURL: target}
		}
		return ExpiryView{Kind: ExpiryRedirect, RedirectURL: target, Navigate: true}
	default:
		return ExpiryView{Kind: ExpiryMessage, Fallback: true}
	}
}

// PresentConfig is PresentExpiry over a configuration's expiry settings.
func PresentConfig(cfg Configuration) ExpiryView {
	return PresentExpiry(cfg.Expiry.Action, cfg.Expiry.Message, cfg.Expiry.RedirectURL)
}

// IsNavigable reports whether raw is a URL a page can be sent to:
// an absolute http(s) URL with a host, or an absolute path on the same site.
func IsNavigable(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return u.Host != ""
	case "":
		return u.Host == "" && strings.HasPrefix(u.Path, "/") && !strings.HasPrefix(raw, "//")
	default:
		return false
	}
}

package domain

import "time"

// Session is one editing session: the configuration being designed and its
// edit history counter. It lives until it is exported, deleted or idle for
// longer than the session TTL.
type Session struct {
	ID       string        `json:"id"`
	Config   Configuration `json:"config"`
	Revision int           `json:"revision"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// IsExpired reports whether the session outlived its TTL at now.
func (s *Session) IsExpired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// internal/models/session.go
package models

import "time"

// Session is an admin login persisted in the sessions collection.
type Session struct {
	SessionID string    `json:"sessionId"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// SessionInfo is what GET /auth/session reports.
type SessionInfo struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	Username        string `json:"username,omitempty"`
}

package models

import "time"

// Session is the console-side authentication state of one browser. An empty
// Token means signed out.
type Session struct {
	ID        string
	Token     string
	User      *User
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsAuthenticated reports whether the session holds a backend token.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != ""
}

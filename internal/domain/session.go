package domain

import "time"

// Session is the client-held proof of authentication.
type Session struct {
	SubjectID string
	Role      Role
	Token     string
	ExpiresAt time.Time
}

// Valid reports whether all three session attributes are present.
// Token signature and expiry are checked separately by the token manager.
func (s *Session) Valid() bool {
	return s != nil && s.Token != "" && s.SubjectID != "" && s.Role != ""
}

package domain

import "time"

// SessionClaims represents the claims carried by a session token.
type SessionClaims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	JTI      string `json:"jti"`
	Exp      int64  `json:"exp"`
	Iat      int64  `json:"iat"`
}

// IsExpired checks if the session is expired.
func (sc SessionClaims) IsExpired() bool {
	return time.Now().Unix() > sc.Exp
}

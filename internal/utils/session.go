package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/avetkin/scooter-rental/internal/domain"
)

// SessionManager signs and validates the session tokens carried in the
// session cookie. Tokens are HS256 JWTs with a unique jti so individual
// sessions can be revoked at logout.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
}

// NewSessionManager creates a new session manager
func NewSessionManager(secret string, ttl time.Duration) *SessionManager {
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// Issue generates a signed session token for the user
func (m *SessionManager) Issue(userID int64, username string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"jti":      uuid.New().String(),
		"exp":      now.Add(m.ttl).Unix(),
		"iat":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, nil
}

// Validate parses a session token and returns its claims
func (m *SessionManager) Validate(tokenString string) (*domain.SessionClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse session token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid claims in session token")
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid user_id in session token")
	}

	username, ok := claims["username"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid username in session token")
	}

	jti, ok := claims["jti"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid jti in session token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp in session token")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat in session token")
	}

	sessionClaims := &domain.SessionClaims{
		UserID:   int64(userID),
		Username: username,
		JTI:      jti,
		Exp:      int64(exp),
		Iat:      int64(iat),
	}

	if sessionClaims.IsExpired() {
		return nil, fmt.Errorf("session token is expired")
	}

	return sessionClaims, nil
}

// TTLSeconds returns the session lifetime in seconds, for cookie max-age
func (m *SessionManager) TTLSeconds() int {
	return int(m.ttl.Seconds())
}

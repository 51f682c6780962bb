package service

import (
	"context"
	"fmt"
	"time"

	"github.com/avetkin/scooter-rental/pkg/database"
)

// SessionBlacklistService records logged-out session ids in Redis until the
// underlying token would have expired anyway.
type SessionBlacklistService struct {
	redis *database.Redis
}

// NewSessionBlacklistService creates a new session blacklist service
func NewSessionBlacklistService(redis *database.Redis) *SessionBlacklistService {
	return &SessionBlacklistService{redis: redis}
}

func sessionKey(jti string) string {
	return fmt.Sprintf("blacklist:session:%s", jti)
}

// Add marks a session id as revoked for the given remaining lifetime
func (s *SessionBlacklistService) Add(ctx context.Context, jti string, expiry time.Duration) error {
	if err := s.redis.Client.Set(ctx, sessionKey(jti), "1", expiry).Err(); err != nil {
		return fmt.Errorf("failed to add session to blacklist: %w", err)
	}
	return nil
}

// Contains checks if a session id has been revoked
func (s *SessionBlacklistService) Contains(ctx context.Context, jti string) (bool, error) {
	exists, err := s.redis.Client.Exists(ctx, sessionKey(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check session blacklist: %w", err)
	}
	return exists > 0, nil
}

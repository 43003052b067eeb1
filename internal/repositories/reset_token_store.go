package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"isafari/internal/models"
)

const resetKeyPrefix = "reset:"

var ErrRedisDisabled = errors.New("redis is not configured")

// ResetTokenStore keeps password reset tokens in Redis until they expire or
// are used.
type ResetTokenStore struct {
	Client *redis.Client
}

func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{Client: client}
}

func (s *ResetTokenStore) Save(ctx context.Context, token string, userID int, ttl time.Duration) error {
	if s.Client == nil {
		return ErrRedisDisabled
	}
	return s.Client.Set(ctx, resetKeyPrefix+token, userID, ttl).Err()
}

// Consume returns the user the token was issued for and deletes it, so a
// token works only once.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (int, error) {
	if s.Client == nil {
		return 0, ErrRedisDisabled
	}
	val, err := s.Client.GetDel(ctx, resetKeyPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return 0, models.ErrInvalidResetToken
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.Atoi(val)
	if err != nil {
		return 0, models.ErrInvalidResetToken
	}
	return id, nil
}

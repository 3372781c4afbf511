package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix  = "sessions:"
	tokenKeyPrefix = "session:"

	errAddTokenFmt    = "failed to register session: %w"
	errRemoveTokenFmt = "failed to remove session: %w"
	errFindOwnerFmt   = "failed to look up session: %w"
	errOwnerCheckFmt  = "failed to check session membership: %w"
	errBadOwnerFmt    = "corrupt session owner entry: %w"
)

// RedisStore keeps each user's token set in a Redis set (key: sessions:{userID})
// plus a reverse index session:{token} -> userID for owner lookup. SADD and
// SREM are single atomic commands, so concurrent logins and logouts for the
// same user never lose updates, even across server instances.
type RedisStore struct {
	client   *redis.Client
	tokenTTL time.Duration
}

// NewRedisStore creates a Redis-backed session store. tokenTTL bounds the
// reverse-index entries so they expire together with the tokens they index;
// it should match the token codec's expiry.
func NewRedisStore(client *redis.Client, tokenTTL time.Duration) *RedisStore {
	return &RedisStore{client: client, tokenTTL: tokenTTL}
}

func userKey(userID uuid.UUID) string {
	return userKeyPrefix + userID.String()
}

func tokenKey(token string) string {
	return tokenKeyPrefix + token
}

func (s *RedisStore) AddToken(ctx context.Context, userID uuid.UUID, token string) error {
	pipe := s.client.TxPipeline()
	pipe.SAdd(ctx, userKey(userID), token)
	pipe.Set(ctx, tokenKey(token), userID.String(), s.tokenTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf(errAddTokenFmt, err)
	}
	return nil
}

func (s *RedisStore) RemoveToken(ctx context.Context, userID uuid.UUID, token string) error {
	pipe := s.client.TxPipeline()
	pipe.SRem(ctx, userKey(userID), token)
	pipe.Del(ctx, tokenKey(token))

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf(errRemoveTokenFmt, err)
	}
	return nil
}

func (s *RedisStore) FindOwner(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := s.client.Get(ctx, tokenKey(token)).Result()
	if err == redis.Nil {
		return uuid.Nil, ErrSessionNotFound
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf(errFindOwnerFmt, err)
	}

	ownerID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf(errBadOwnerFmt, err)
	}

	// The set is authoritative: a reverse-index entry whose token was
	// already removed from the owner's set does not denote a live session.
	member, err := s.client.SIsMember(ctx, userKey(ownerID), token).Result()
	if err != nil {
		return uuid.Nil, fmt.Errorf(errOwnerCheckFmt, err)
	}
	if !member {
		return uuid.Nil, ErrSessionNotFound
	}

	return ownerID, nil
}

package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/storage"
)

const (
	sessionKeyPrefix  = "session:"
	refreshLockSuffix = ":refresh-lock"
	maxWatchRetries   = 5
)

// releaseLockScript deletes the lock only while it still holds the caller's
// owner token; an expired lock may already belong to another process.
var releaseLockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var (
	_ storage.SessionRepository = (*SessionStorage)(nil)
	_ storage.RefreshLocker     = (*SessionStorage)(nil)
)

type SessionStorage struct {
	client *redis.Client
}

func NewSessionStorage(client *redis.Client) *SessionStorage {
	return &SessionStorage{client: client}
}

func (s *SessionStorage) CreateSession(ctx context.Context, session models.Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *SessionStorage) GetSession(ctx context.Context, id string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrSessionNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return decodeSession(raw)
}

// UpdateSession performs an optimistic compare-and-swap on the generation
// and the refresh token using WATCH/MULTI.
func (s *SessionStorage) UpdateSession(ctx context.Context, session models.Session, fromRefreshToken string, ttl time.Duration) error {
	key := sessionKey(session.ID)
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return storage.ErrSessionNotFound
		} else if err != nil {
			return err
		}
		current, err := decodeSession(raw)
		if err != nil {
			return err
		}
		if current.Generation != session.Generation || current.RefreshToken != fromRefreshToken {
			return storage.ErrStaleSession
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, ttl)
			return nil
		})
		return err
	}

	for i := 0; i < maxWatchRetries; i++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil && !errors.Is(err, storage.ErrSessionNotFound) && !errors.Is(err, storage.ErrStaleSession) {
			return fmt.Errorf("update session: %w", err)
		}
		return err
	}
	return fmt.Errorf("update session %s: too many concurrent writers", session.ID)
}

func (s *SessionStorage) DeleteSession(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id), refreshLockKey(id)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStorage) AcquireRefreshLock(ctx context.Context, id, owner string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, refreshLockKey(id), owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire refresh lock: %w", err)
	}
	return ok, nil
}

func (s *SessionStorage) ReleaseRefreshLock(ctx context.Context, id, owner string) error {
	if err := releaseLockScript.Run(ctx, s.client, []string{refreshLockKey(id)}, owner).Err(); err != nil {
		return fmt.Errorf("release refresh lock: %w", err)
	}
	return nil
}

func decodeSession(raw []byte) (*models.Session, error) {
	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func refreshLockKey(id string) string {
	return sessionKeyPrefix + id + refreshLockSuffix
}

package memory

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/storage"
)

type entry struct {
	session   models.Session
	expiresAt time.Time
}

type InMemorySessionManager struct {
	mu       sync.RWMutex
	sessions map[string]entry
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewSessionRepository(log *zap.SugaredLogger) *InMemorySessionManager {
	return &InMemorySessionManager{
		sessions: make(map[string]entry),
		log:      log,
		now:      time.Now,
	}
}

func (m *InMemorySessionManager) CreateSession(_ context.Context, session models.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sessions[session.ID] = m.newEntry(session, ttl)
	m.log.Debugw("Session created", "sessionID", session.ID, "userID", session.UserID, "generation", session.Generation, "ttl", ttl)

	return nil
}

func (m *InMemorySessionManager) GetSession(_ context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.lookup(id)
	if !ok {
		m.log.Debugw("Session not found", "sessionID", id)
		return nil, storage.ErrSessionNotFound
	}

	session := e.session
	return &session, nil
}

func (m *InMemorySessionManager) UpdateSession(_ context.Context, session models.Session, fromRefreshToken string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.lookup(session.ID)
	if !ok {
		return storage.ErrSessionNotFound
	}
	if current.session.Generation != session.Generation {
		m.log.Debugw("Rejecting stale session update", "sessionID", session.ID,
			"stored", current.session.Generation, "update", session.Generation)
		return storage.ErrStaleSession
	}
	if current.session.RefreshToken != fromRefreshToken {
		m.log.Debugw("Rejecting update of a rotated session", "sessionID", session.ID)
		return storage.ErrStaleSession
	}

	m.sessions[session.ID] = m.newEntry(session, ttl)
	return nil
}

func (m *InMemorySessionManager) DeleteSession(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.sessions, id)

	return nil
}

func (m *InMemorySessionManager) lookup(id string) (entry, bool) {
	e, ok := m.sessions[id]
	if !ok {
		return entry{}, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		return entry{}, false
	}
	return e, true
}

func (m *InMemorySessionManager) newEntry(session models.Session, ttl time.Duration) entry {
	e := entry{session: session}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	return e
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/storage"
)

const (
	refreshLockTTL  = 15 * time.Second
	refreshLockWait = 5 * time.Second
	refreshLockPoll = 100 * time.Millisecond
)

type LoginResult struct {
	Session *models.Session
	Failure FailureKind
}

func (r LoginResult) OK() bool {
	return r.Failure == FailureNone && r.Session != nil
}

func (r LoginResult) Message() string {
	return r.Failure.Message()
}

// SessionManager owns session records. Login, Get and Logout are the only
// ways a record changes.
type SessionManager struct {
	store     storage.SessionRepository
	auth      *Authenticator
	refresher *Refresher
	notifier  EventNotifier
	log       *zap.SugaredLogger
	maxAge    time.Duration

	// flights collapses concurrent refreshes of one session into a single
	// backend call.
	flights singleflight.Group
}

func NewSessionManager(
	store storage.SessionRepository,
	auth *Authenticator,
	refresher *Refresher,
	notifier EventNotifier,
	maxAge time.Duration,
	log *zap.SugaredLogger,
) *SessionManager {
	return &SessionManager{
		store:     store,
		auth:      auth,
		refresher: refresher,
		notifier:  notifier,
		log:       log,
		maxAge:    maxAge,
	}
}

// Login authenticates against the backend and stores a fresh record. When
// existingID names a stored session, the record is re-initialized under the
// same ID with the next generation so in-flight refreshes of the previous
// login are discarded.
func (m *SessionManager) Login(ctx context.Context, existingID, username, password string) LoginResult {
	grant, failure := m.auth.Authenticate(ctx, username, password)
	if failure != FailureNone {
		return LoginResult{Failure: failure}
	}

	now := NowTimeFunc()
	session := models.Session{
		ID:                   uuid.NewString(),
		Generation:           1,
		UserID:               grant.UserID,
		DisplayName:          grant.DisplayName,
		Role:                 grant.Role,
		AccessToken:          grant.AccessToken,
		RefreshToken:         grant.RefreshToken,
		AccessTokenExpiresAt: now.Add(grant.ExpiresIn).UnixMilli(),
		CreatedAt:            now,
		ExpiresAt:            now.Add(m.maxAge),
	}

	if existingID != "" {
		prev, err := m.store.GetSession(ctx, existingID)
		switch {
		case err == nil:
			session.ID = prev.ID
			session.Generation = prev.Generation + 1
		case !errors.Is(err, storage.ErrSessionNotFound):
			m.log.Errorw("failed to load previous session", "sessionID", existingID, "error", err)
			return LoginResult{Failure: FailureAuthentication}
		}
	}

	if err := m.store.CreateSession(ctx, session, m.maxAge); err != nil {
		m.log.Errorw("failed to store session", "sessionID", session.ID, "error", err)
		return LoginResult{Failure: FailureAuthentication}
	}

	m.notify(ctx, EventLogin, &session, FailureNone)
	return LoginResult{Session: &session}
}

// Get returns the session, refreshing its access token first when it has
// expired. A session in the terminal error state is returned as is.
func (m *SessionManager) Get(ctx context.Context, id string) (*models.Session, error) {
	session, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	switch session.State(NowTimeFunc()) {
	case models.StateExpiredRefreshable:
	case models.StateExpiredUnrefreshable:
		if !session.Terminal() {
			return m.markUnrefreshable(ctx, *session)
		}
		return session, nil
	default:
		return session, nil
	}

	v, err, shared := m.flights.Do(id, func() (interface{}, error) {
		return m.refresh(context.WithoutCancel(ctx), id)
	})
	if err != nil {
		return nil, err
	}
	if shared {
		m.log.Debugw("joined in-flight refresh", "sessionID", id)
	}
	refreshed := *v.(*models.Session)
	return &refreshed, nil
}

func (m *SessionManager) Logout(ctx context.Context, id string) error {
	session, err := m.store.GetSession(ctx, id)
	if err != nil && !errors.Is(err, storage.ErrSessionNotFound) {
		return fmt.Errorf("load session: %w", err)
	}
	if err := m.store.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if session != nil {
		m.notify(ctx, EventLogout, session, FailureNone)
	}
	return nil
}

func (m *SessionManager) refresh(ctx context.Context, id string) (*models.Session, error) {
	if locker, ok := m.store.(storage.RefreshLocker); ok {
		owner := uuid.NewString()
		acquired, err := locker.AcquireRefreshLock(ctx, id, owner, refreshLockTTL)
		if err != nil {
			return nil, err
		}
		if !acquired {
			return m.awaitPeerRefresh(ctx, id)
		}
		defer func() {
			if err := locker.ReleaseRefreshLock(ctx, id, owner); err != nil {
				m.log.Warnw("failed to release refresh lock", "sessionID", id, "error", err)
			}
		}()
	}

	// Re-read under the flight: an earlier flight may already have
	// refreshed the record.
	session, err := m.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	switch session.State(NowTimeFunc()) {
	case models.StateExpiredRefreshable:
	case models.StateExpiredUnrefreshable:
		if !session.Terminal() {
			return m.markUnrefreshable(ctx, *session)
		}
		return session, nil
	default:
		return session, nil
	}

	m.log.Infow("access token expired, attempting refresh", "sessionID", id)
	refreshed := m.refresher.Refresh(ctx, *session)

	// The write only lands if nobody replaced the login or rotated the
	// refresh token since it was read. A lock that expired mid-refresh, or a
	// store without one, can let another instance win that race.
	if err := m.store.UpdateSession(ctx, refreshed, session.RefreshToken, refreshed.TTL(NowTimeFunc())); err != nil {
		if errors.Is(err, storage.ErrStaleSession) {
			m.log.Infow("discarding refresh result of a replaced session", "sessionID", id, "generation", refreshed.Generation)
			return m.store.GetSession(ctx, id)
		}
		return nil, fmt.Errorf("store refreshed session: %w", err)
	}

	if refreshed.Terminal() {
		m.notify(ctx, EventRefreshFailed, &refreshed, FailureRefreshFailed)
	}
	return &refreshed, nil
}

func (m *SessionManager) markUnrefreshable(ctx context.Context, session models.Session) (*models.Session, error) {
	m.log.Warnw("access token expired but no refresh token available", "sessionID", session.ID)
	session.Error = models.SessionErrorRefreshAccessToken

	if err := m.store.UpdateSession(ctx, session, session.RefreshToken, session.TTL(NowTimeFunc())); err != nil {
		if errors.Is(err, storage.ErrStaleSession) {
			return m.store.GetSession(ctx, session.ID)
		}
		return nil, fmt.Errorf("store session error: %w", err)
	}

	m.notify(ctx, EventRefreshFailed, &session, FailureRefreshUnavailable)
	return &session, nil
}

// awaitPeerRefresh waits for another process holding the refresh lock to
// publish its result.
func (m *SessionManager) awaitPeerRefresh(ctx context.Context, id string) (*models.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, refreshLockWait)
	defer cancel()

	ticker := time.NewTicker(refreshLockPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Warnw("timed out waiting for peer refresh", "sessionID", id)
			return m.store.GetSession(context.WithoutCancel(ctx), id)
		case <-ticker.C:
			session, err := m.store.GetSession(ctx, id)
			if err != nil {
				return nil, err
			}
			if session.State(NowTimeFunc()) != models.StateExpiredRefreshable {
				return session, nil
			}
		}
	}
}

func (m *SessionManager) notify(ctx context.Context, t EventType, session *models.Session, kind FailureKind) {
	if m.notifier == nil {
		return
	}
	m.notifier.Notify(ctx, SessionEvent{
		Type:       t,
		SessionID:  session.ID,
		UserID:     session.UserID,
		Generation: session.Generation,
		Failure:    kind.String(),
		At:         NowTimeFunc().UTC(),
	})
}

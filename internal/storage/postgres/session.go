package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/storage"
)

const sessionColumns = `id, generation, user_id, display_name, role, access_token, refresh_token, access_token_expires_at, error, created_at, expires_at`

type SessionRepository struct {
	db storage.DBTX
}

func NewSessionRepository(db storage.DBTX) *SessionRepository {
	return &SessionRepository{db: db}
}

// CreateSession inserts the session or replaces the row with the same id.
func (r *SessionRepository) CreateSession(ctx context.Context, session models.Session, _ time.Duration) error {
	query := `INSERT INTO sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			generation = EXCLUDED.generation,
			user_id = EXCLUDED.user_id,
			display_name = EXCLUDED.display_name,
			role = EXCLUDED.role,
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			access_token_expires_at = EXCLUDED.access_token_expires_at,
			error = EXCLUDED.error,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at`
	_, err := r.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.Generation,
		session.UserID,
		session.DisplayName,
		session.Role,
		session.AccessToken,
		session.RefreshToken,
		session.AccessTokenExpiresAt,
		session.Error,
		session.CreatedAt,
		session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (r *SessionRepository) GetSession(ctx context.Context, id string) (*models.Session, error) {
	var session models.Session
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 AND expires_at > NOW()`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID,
		&session.Generation,
		&session.UserID,
		&session.DisplayName,
		&session.Role,
		&session.AccessToken,
		&session.RefreshToken,
		&session.AccessTokenExpiresAt,
		&session.Error,
		&session.CreatedAt,
		&session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// lockRevision reads the stored generation and refresh token and locks the
// row until the surrounding transaction ends.
func (r *SessionRepository) lockRevision(ctx context.Context, id string) (int64, string, error) {
	var (
		generation   int64
		refreshToken string
	)
	query := `SELECT generation, refresh_token FROM sessions WHERE id = $1 AND expires_at > NOW() FOR UPDATE`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&generation, &refreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, "", storage.ErrSessionNotFound
		}
		return 0, "", fmt.Errorf("failed to lock session: %w", err)
	}
	return generation, refreshToken, nil
}

func (r *SessionRepository) writeTokens(ctx context.Context, session models.Session) error {
	query := `UPDATE sessions SET access_token = $2, refresh_token = $3, access_token_expires_at = $4, error = $5 WHERE id = $1`
	_, err := r.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.AccessToken,
		session.RefreshToken,
		session.AccessTokenExpiresAt,
		session.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	query := `DELETE FROM sessions WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// AcquireRefreshLock marks the row as being refreshed by owner until ttl
// elapses. It reports false while another owner holds an unexpired lock.
func (r *SessionRepository) AcquireRefreshLock(ctx context.Context, id, owner string, ttl time.Duration) (bool, error) {
	query := `UPDATE sessions
		SET refresh_lock_owner = $2, refresh_locked_until = NOW() + $3::bigint * INTERVAL '1 millisecond'
		WHERE id = $1 AND (refresh_locked_until IS NULL OR refresh_locked_until <= NOW())`
	res, err := r.db.ExecContext(ctx, query, id, owner, ttl.Milliseconds())
	if err != nil {
		return false, fmt.Errorf("acquire refresh lock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("acquire refresh lock: %w", err)
	}
	return n == 1, nil
}

func (r *SessionRepository) ReleaseRefreshLock(ctx context.Context, id, owner string) error {
	query := `UPDATE sessions SET refresh_lock_owner = NULL, refresh_locked_until = NULL
		WHERE id = $1 AND refresh_lock_owner = $2`
	if _, err := r.db.ExecContext(ctx, query, id, owner); err != nil {
		return fmt.Errorf("release refresh lock: %w", err)
	}
	return nil
}

// DeleteExpiredSessions removes rows past their max lifetime.
func (r *SessionRepository) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

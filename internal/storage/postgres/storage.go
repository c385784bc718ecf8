package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/storage"
)

var (
	_ storage.SessionRepository = (*Storage)(nil)
	_ storage.RefreshLocker     = (*Storage)(nil)
)

type Storage struct {
	db *sql.DB
	*SessionRepository
}

func NewStorage(db *sql.DB) *Storage {
	return &Storage{
		db:                db,
		SessionRepository: NewSessionRepository(db),
	}
}

// UpdateSession writes refreshed tokens in a transaction that holds the row
// lock, so neither a login nor a rotation by another instance racing with
// the refresh can be overwritten by it.
func (s *Storage) UpdateSession(ctx context.Context, session models.Session, fromRefreshToken string, _ time.Duration) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	sessionRepoTx := NewSessionRepository(tx)

	generation, refreshToken, err := sessionRepoTx.lockRevision(ctx, session.ID)
	if err != nil {
		return err
	}
	if generation != session.Generation || refreshToken != fromRefreshToken {
		return storage.ErrStaleSession
	}

	if err := sessionRepoTx.writeTokens(ctx, session); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

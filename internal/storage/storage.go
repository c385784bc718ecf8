package storage

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rryowa/sagra_admin/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	// ErrStaleSession is returned when an update was computed from a record
	// that has since been replaced, either by a newer login or by a refresh
	// that rotated the refresh token first.
	ErrStaleSession = errors.New("session record is stale")
)

type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// SessionRepository persists session records.
//
// CreateSession replaces whatever is stored under the same ID. UpdateSession
// only applies when the stored generation equals session.Generation and the
// stored refresh token still equals fromRefreshToken.
type SessionRepository interface {
	CreateSession(ctx context.Context, session models.Session, ttl time.Duration) error
	GetSession(ctx context.Context, id string) (*models.Session, error)
	UpdateSession(ctx context.Context, session models.Session, fromRefreshToken string, ttl time.Duration) error
	DeleteSession(ctx context.Context, id string) error
}

// RefreshLocker is implemented by stores shared between several processes,
// so that only one of them refreshes a given session at a time. The lock
// expires after ttl and can only be released by the owner that took it.
type RefreshLocker interface {
	AcquireRefreshLock(ctx context.Context, id, owner string, ttl time.Duration) (bool, error)
	ReleaseRefreshLock(ctx context.Context, id, owner string) error
}

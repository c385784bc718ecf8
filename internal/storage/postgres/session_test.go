package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/storage"
)

var columns = []string{
	"id", "generation", "user_id", "display_name", "role", "access_token",
	"refresh_token", "access_token_expires_at", "error", "created_at", "expires_at",
}

func newMockStorage(t *testing.T) (*Storage, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStorage(db), mock
}

func testSession() models.Session {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return models.Session{
		ID:                   "sid",
		Generation:           2,
		UserID:               "1",
		DisplayName:          "mario",
		Role:                 "admin",
		AccessToken:          "a1",
		RefreshToken:         "r1",
		AccessTokenExpiresAt: now.Add(time.Hour).UnixMilli(),
		CreatedAt:            now,
		ExpiresAt:            now.Add(30 * 24 * time.Hour),
	}
}

func TestCreateSession(t *testing.T) {
	s, mock := newMockStorage(t)
	session := testSession()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO sessions (`)).
		WithArgs(session.ID, session.Generation, session.UserID, session.DisplayName, session.Role,
			session.AccessToken, session.RefreshToken, session.AccessTokenExpiresAt, session.Error,
			session.CreatedAt, session.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.CreateSession(context.Background(), session, time.Hour))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSession(t *testing.T) {
	s, mock := newMockStorage(t)
	session := testSession()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM sessions WHERE id = $1 AND expires_at > NOW()`)).
		WithArgs("sid").
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			session.ID, session.Generation, session.UserID, session.DisplayName, session.Role,
			session.AccessToken, session.RefreshToken, session.AccessTokenExpiresAt, session.Error,
			session.CreatedAt, session.ExpiresAt,
		))

	got, err := s.GetSession(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, session, *got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSession_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM sessions WHERE id = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(columns))

	_, err := s.GetSession(context.Background(), "missing")
	require.ErrorIs(t, err, storage.ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSession(t *testing.T) {
	s, mock := newMockStorage(t)
	session := testSession()
	session.AccessToken = "a2"
	session.RefreshToken = "r2"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT generation, refresh_token FROM sessions WHERE id = $1 AND expires_at > NOW() FOR UPDATE`)).
		WithArgs("sid").
		WillReturnRows(sqlmock.NewRows([]string{"generation", "refresh_token"}).AddRow(int64(2), "r1"))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE sessions SET access_token = $2`)).
		WithArgs(session.ID, "a2", "r2", session.AccessTokenExpiresAt, session.Error).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.UpdateSession(context.Background(), session, "r1", time.Hour))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSession_StaleGeneration(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT generation, refresh_token FROM sessions`)).
		WithArgs("sid").
		WillReturnRows(sqlmock.NewRows([]string{"generation", "refresh_token"}).AddRow(int64(3), "r1"))
	mock.ExpectRollback()

	err := s.UpdateSession(context.Background(), testSession(), "r1", time.Hour)
	require.ErrorIs(t, err, storage.ErrStaleSession)
	require.NoError(t, mock.ExpectationsWereMet())
}

// Two instances refresh the same row: the first rotated r1 into r2, so the
// late failure computed from r1 is rejected instead of overwriting it.
func TestUpdateSession_RotatedByAnotherInstance(t *testing.T) {
	s, mock := newMockStorage(t)
	late := testSession()
	late.Error = models.SessionErrorRefreshAccessToken

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT generation, refresh_token FROM sessions`)).
		WithArgs("sid").
		WillReturnRows(sqlmock.NewRows([]string{"generation", "refresh_token"}).AddRow(int64(2), "r2"))
	mock.ExpectRollback()

	err := s.UpdateSession(context.Background(), late, "r1", time.Hour)
	require.ErrorIs(t, err, storage.ErrStaleSession)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSession_NotFound(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT generation, refresh_token FROM sessions`)).
		WithArgs("sid").
		WillReturnRows(sqlmock.NewRows([]string{"generation", "refresh_token"}))
	mock.ExpectRollback()

	err := s.UpdateSession(context.Background(), testSession(), "r1", time.Hour)
	require.ErrorIs(t, err, storage.ErrSessionNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshLock(t *testing.T) {
	s, mock := newMockStorage(t)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`SET refresh_lock_owner = $2, refresh_locked_until = NOW()`)).
		WithArgs("sid", "owner-a", int64(15000)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`SET refresh_lock_owner = $2`)).
		WithArgs("sid", "owner-b", int64(15000)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(`SET refresh_lock_owner = NULL, refresh_locked_until = NULL`)).
		WithArgs("sid", "owner-a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	ok, err := s.AcquireRefreshLock(ctx, "sid", "owner-a", 15*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AcquireRefreshLock(ctx, "sid", "owner-b", 15*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.ReleaseRefreshLock(ctx, "sid", "owner-a"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSession(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE id = $1`)).
		WithArgs("sid").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.DeleteSession(context.Background(), "sid"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredSessions(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions WHERE expires_at <= NOW()`)).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := s.DeleteExpiredSessions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredSessions_Error(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM sessions`)).WillReturnError(errors.New("connection reset"))

	_, err := s.DeleteExpiredSessions(context.Background())
	require.Error(t, err)
}

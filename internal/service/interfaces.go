package service

import (
	"context"
	"time"

	"github.com/rryowa/sagra_admin/internal/models"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

// SessionResolver hands out the current session record, refreshing it when
// needed.
type SessionResolver interface {
	Get(ctx context.Context, id string) (*models.Session, error)
}

type SessionLifecycle interface {
	SessionResolver
	Logout(ctx context.Context, id string) error
}

// Requester performs one call against the business API.
type Requester interface {
	Do(ctx context.Context, endpoint string, opts RequestOptions, out interface{}) error
}

type EventNotifier interface {
	Notify(ctx context.Context, event SessionEvent)
}

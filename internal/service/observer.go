package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/storage"
)

// Observer signs a session out as soon as it reaches the terminal error
// state.
type Observer struct {
	sessions SessionLifecycle
	interval time.Duration
	log      *zap.SugaredLogger
}

func NewObserver(sessions SessionLifecycle, interval time.Duration, log *zap.SugaredLogger) *Observer {
	return &Observer{
		sessions: sessions,
		interval: interval,
		log:      log,
	}
}

// Inspect reads the session once. The boolean reports a forced sign-out;
// the caller is expected to send the user back to the login page.
func (o *Observer) Inspect(ctx context.Context, id string) (*models.Session, bool, error) {
	session, err := o.sessions.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if !session.Terminal() {
		return session, false, nil
	}

	o.log.Infow("session in error state, forcing sign-out", "sessionID", id, "error", session.Error)
	if err := o.sessions.Logout(ctx, id); err != nil {
		return session, true, fmt.Errorf("sign out: %w", err)
	}
	return session, true, nil
}

// Watch inspects the session on every tick and every refocus signal until
// it is signed out, disappears or ctx ends. onSignOut runs once, after a
// forced sign-out. It backs the session event stream, which passes a nil
// refocus channel.
func (o *Observer) Watch(ctx context.Context, id string, refocus <-chan struct{}, onSignOut func()) error {
	ticker := time.NewTicker(o.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case <-refocus:
		}

		_, signedOut, err := o.Inspect(ctx, id)
		switch {
		case errors.Is(err, storage.ErrSessionNotFound):
			return nil
		case signedOut:
			if err != nil {
				o.log.Warnw("forced sign-out incomplete", "sessionID", id, "error", err)
			}
			if onSignOut != nil {
				onSignOut()
			}
			return nil
		case err != nil:
			o.log.Warnw("session inspection failed", "sessionID", id, "error", err)
		}
	}
}

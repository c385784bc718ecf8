package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type EventType string

const (
	EventLogin         EventType = "login"
	EventRefreshFailed EventType = "refresh_failed"
	EventLogout        EventType = "logout"
)

// SessionEvent never carries tokens.
type SessionEvent struct {
	Type       EventType `json:"type"`
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id"`
	Generation int64     `json:"generation"`
	Failure    string    `json:"failure,omitempty"`
	At         time.Time `json:"at"`
}

type WebhookService struct {
	client     *http.Client
	log        *zap.SugaredLogger
	webhookURL string
}

func NewWebhookService(log *zap.SugaredLogger, webhookURL string) *WebhookService {
	return &WebhookService{
		client:     &http.Client{Timeout: 5 * time.Second},
		log:        log,
		webhookURL: webhookURL,
	}
}

// Notify posts the event in the background; delivery failures are only
// logged.
func (s *WebhookService) Notify(ctx context.Context, event SessionEvent) {
	if s.webhookURL == "" {
		return
	}

	go func() {
		payload, err := json.Marshal(event)
		if err != nil {
			s.log.Errorw("failed to marshal webhook payload", "error", err)
			return
		}

		req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodPost, s.webhookURL, bytes.NewBuffer(payload))
		if err != nil {
			s.log.Errorw("failed to create webhook request", "error", err)
			return
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			s.log.Errorw("failed to send webhook", "event", event.Type, "error", err)
			return
		}
		defer resp.Body.Close()

		if !isSuccess(resp.StatusCode) {
			s.log.Warnw("webhook returned non-2xx status", "event", event.Type, "status", resp.StatusCode)
		}
	}()
}

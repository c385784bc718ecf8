package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/models"
	"github.com/rryowa/sagra_admin/internal/storage"
	"github.com/rryowa/sagra_admin/internal/storage/memory"
)

// freezeTime pins NowTimeFunc to now for the duration of the test.
func freezeTime(t *testing.T, now time.Time) {
	t.Helper()
	prev := NowTimeFunc
	NowTimeFunc = func() time.Time { return now }
	t.Cleanup(func() { NowTimeFunc = prev })
}

// fakeBackend stands in for the remote REST API's auth endpoints.
type fakeBackend struct {
	server *httptest.Server

	loginCalls   atomic.Int32
	refreshCalls atomic.Int32

	mu      sync.Mutex
	login   http.HandlerFunc
	refresh http.HandlerFunc
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()
	b := &fakeBackend{
		login: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, models.LoginResponse{
				AccessToken:  "access-1",
				RefreshToken: "refresh-1",
				ExpiresIn:    3600,
			})
		},
		refresh: func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, models.RefreshResponse{AccessToken: "access-2", ExpiresIn: 3600})
		},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(models.EndpointLogin, func(w http.ResponseWriter, r *http.Request) {
		b.loginCalls.Add(1)
		b.mu.Lock()
		h := b.login
		b.mu.Unlock()
		h(w, r)
	})
	mux.HandleFunc(models.EndpointRefresh, func(w http.ResponseWriter, r *http.Request) {
		b.refreshCalls.Add(1)
		b.mu.Lock()
		h := b.refresh
		b.mu.Unlock()
		h(w, r)
	})

	b.server = httptest.NewServer(mux)
	t.Cleanup(b.server.Close)
	return b
}

func (b *fakeBackend) onLogin(h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.login = h
}

func (b *fakeBackend) onRefresh(h http.HandlerFunc) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refresh = h
}

func (b *fakeBackend) URL() string {
	return b.server.URL
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []SessionEvent
}

func (n *recordingNotifier) Notify(_ context.Context, event SessionEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) types() []EventType {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]EventType, 0, len(n.events))
	for _, e := range n.events {
		out = append(out, e.Type)
	}
	return out
}

type managerFixture struct {
	manager  *SessionManager
	store    storage.SessionRepository
	backend  *fakeBackend
	notifier *recordingNotifier
}

func newManagerFixture(t *testing.T, store storage.SessionRepository) *managerFixture {
	t.Helper()
	log := zap.NewNop().Sugar()
	if store == nil {
		store = memory.NewSessionRepository(log)
	}

	backend := newFakeBackend(t)
	transport, err := NewRefreshTransport("body")
	require.NoError(t, err)

	client := NewHTTPClient(5 * time.Second)
	notifier := &recordingNotifier{}
	manager := NewSessionManager(
		store,
		NewAuthenticator(client, backend.URL(), log),
		NewRefresher(client, backend.URL(), transport, log),
		notifier,
		30*24*time.Hour,
		log,
	)

	return &managerFixture{
		manager:  manager,
		store:    store,
		backend:  backend,
		notifier: notifier,
	}
}

func (f *managerFixture) login(t *testing.T, existingID string) *models.Session {
	t.Helper()
	result := f.manager.Login(context.Background(), existingID, "mario", "secret")
	require.True(t, result.OK(), "login failed: %s", result.Failure)
	return result.Session
}

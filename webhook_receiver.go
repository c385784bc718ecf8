package main

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/rryowa/sagra_admin/internal/service"
	"github.com/rryowa/sagra_admin/internal/util"
)

// Development sink for SESSION_WEBHOOK_URL: logs every session event it receives.
func main() {
	logger := util.NewZapLogger()
	defer func() { _ = logger.Sync() }()

	addr := os.Getenv("WEBHOOK_RECEIVER_ADDR")
	if addr == "" {
		addr = ":9090"
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Only POST method is accepted", http.StatusMethodNotAllowed)
			return
		}
		defer r.Body.Close()

		var event service.SessionEvent
		if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
			http.Error(w, "Error parsing JSON", http.StatusBadRequest)
			return
		}

		logger.Infow("Received session event",
			"type", event.Type,
			"sessionID", event.SessionID,
			"userID", event.UserID,
			"generation", event.Generation,
			"failure", event.Failure,
			"at", event.At,
		)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("Webhook received!"))
	})

	logger.Infof("Webhook receiver listening on %s", addr)
	if err := http.ListenAndServe(addr, nil); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}

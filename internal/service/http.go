package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rryowa/sagra_admin/internal/models"
)

const (
	maxErrorBodySize = 64 << 10
)

func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// errorMessage extracts the best human-readable message from an error body:
// "message", then "error", then the HTTP status.
func errorMessage(status int, body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, maxErrorBodySize))
	if err != nil {
		return MsgUnknownAPIError
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return MsgUnknownAPIError
	}
	for _, key := range []string{"message", "error"} {
		if s, ok := payload[key].(string); ok && s != "" {
			return s
		}
	}
	return fmt.Sprintf("HTTP %d", status)
}

func expiresIn(seconds int64) time.Duration {
	if seconds <= 0 {
		seconds = models.DefaultExpiresInSeconds
	}
	return time.Duration(seconds) * time.Second
}

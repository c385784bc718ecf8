package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"github.com/rryowa/sagra_admin/internal/storage"
)

type RequestOptions struct {
	Method string
	Query  url.Values
	// Body is sent as is when it is an io.Reader or []byte and JSON-encoded
	// otherwise.
	Body    interface{}
	Headers http.Header
}

// Gateway is the only way business calls reach the backend. It attaches the
// access token of the session found in the request context.
type Gateway struct {
	client   *http.Client
	apiURL   string
	sessions SessionResolver
	log      *zap.SugaredLogger
}

func NewGateway(client *http.Client, apiURL string, sessions SessionResolver, log *zap.SugaredLogger) *Gateway {
	return &Gateway{
		client:   client,
		apiURL:   apiURL,
		sessions: sessions,
		log:      log,
	}
}

// Do calls endpoint and decodes a JSON answer into out. A 204 leaves out
// untouched. Non-2xx answers come back as *APIError; nothing is retried.
func (g *Gateway) Do(ctx context.Context, endpoint string, opts RequestOptions, out interface{}) error {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	token, err := g.accessToken(ctx)
	if err != nil {
		return err
	}

	body, err := requestBody(opts.Body)
	if err != nil {
		return err
	}

	target := g.apiURL + endpoint
	if len(opts.Query) > 0 {
		target += "?" + opts.Query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("create request %s %s: %w", method, endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, vs := range opts.Headers {
		if http.CanonicalHeaderKey(k) == "Authorization" {
			continue
		}
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("call %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		apiErr := &APIError{
			Method:   method,
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Message:  errorMessage(resp.StatusCode, resp.Body),
		}
		g.log.Warnw("API call failed", "method", method, "endpoint", endpoint, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode response of %s %s: %w", method, endpoint, err)
	}
	return nil
}

// accessToken resolves the session in ctx. Whatever token the record holds
// is used, even on a record in the error state: the backend decides.
func (g *Gateway) accessToken(ctx context.Context) (string, error) {
	id, ok := SessionIDFromContext(ctx)
	if !ok {
		return "", nil
	}
	session, err := g.sessions.Get(ctx, id)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("resolve session: %w", err)
	}
	return session.AccessToken, nil
}

func requestBody(body interface{}) (io.Reader, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case io.Reader:
		return b, nil
	case []byte:
		return bytes.NewReader(b), nil
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		return bytes.NewReader(payload), nil
	}
}

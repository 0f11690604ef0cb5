// Package api contains the REST clients for the backend services the
// storefront composes: users, products, inventory and orders. Each client
// owns the full base URL of its service (path prefix included) and issues
// requests with relative paths only.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/errs"
)

// TokenSource yields the current bearer token, if any. A client attaches it
// to every outgoing request once a credential exists.
type TokenSource interface {
	Token() (string, bool)
}

// Error is a non-2xx response from a backend service. The message is the
// server's own, surfaced verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http %d", e.Status)
	}
	return e.Message
}

// Unwrap maps well-known statuses onto sentinels so callers can errors.Is
// without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return errs.ErrUnauthorized
	case http.StatusNotFound:
		return errs.ErrNotFound
	case http.StatusConflict:
		return errs.ErrAlreadyExists
	}
	return nil
}

// Client is a thin JSON-over-HTTP client bound to one service base URL.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource
	log    *zap.Logger
}

// NewClient builds a client for the given base URL. tokens may be nil for
// services that never see authenticated traffic.
func NewClient(base string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:   base,
		http:   &http.Client{Timeout: timeout},
		tokens: tokens,
		log:    log,
	}
}

// do issues one request. path must be "" or start with "/"; body and out may
// each be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, rd)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if id, err := uuid.NewV4(); err == nil {
		req.Header.Set("X-Request-Id", id.String())
	}
	if c.tokens != nil {
		if tok, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("url", c.base+path),
			zap.Int("status", resp.StatusCode),
		)
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// readErrorMessage extracts the server-provided message from an error body.
// The services disagree on the field name (error / message / detail), so try
// each before falling back to the raw body.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(raw, &body) == nil {
		for _, m := range []string{body.Error, body.Message, body.Detail} {
			if m != "" {
				return m
			}
		}
	}
	return string(bytes.TrimSpace(raw))
}

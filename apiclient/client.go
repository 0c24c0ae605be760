package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const defaultErrorMessage = "request failed"

// Error is returned for every non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
	// Detail keeps the raw structured "detail" field when the backend sent one.
	Detail json.RawMessage
}

func (e *Error) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Auth supplies the bearer token for a request. A nil Auth sends no header.
type Auth interface {
	BearerToken() string
}

// Client calls the tournament REST API relative to a base URL.
// It never retries and never deduplicates requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Do sends method+path with an optional JSON body and decodes the JSON response into dst.
// dst may be nil when the response body is irrelevant.
func (c *Client) Do(ctx context.Context, auth Auth, method, path string, body, dst interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body for %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != nil {
		if token := auth.BearerToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(start)),
	)

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}

	if dst == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode response of %s %s: %w", method, path, err)
	}
	return nil
}

// Get is Do with GET and no body.
func (c *Client) Get(ctx context.Context, auth Auth, path string, dst interface{}) error {
	return c.Do(ctx, auth, http.MethodGet, path, nil, dst)
}

// GetMaybe treats a 404 as "resource not created yet": it returns found=false and no error.
func (c *Client) GetMaybe(ctx context.Context, auth Auth, path string, dst interface{}) (bool, error) {
	err := c.Get(ctx, auth, path, dst)
	if IsStatus(err, http.StatusNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) Post(ctx context.Context, auth Auth, path string, body, dst interface{}) error {
	return c.Do(ctx, auth, http.MethodPost, path, body, dst)
}

func (c *Client) Patch(ctx context.Context, auth Auth, path string, body, dst interface{}) error {
	return c.Do(ctx, auth, http.MethodPatch, path, body, dst)
}

func (c *Client) Delete(ctx context.Context, auth Auth, path string) error {
	return c.Do(ctx, auth, http.MethodDelete, path, nil, nil)
}

func decodeError(status int, raw []byte) error {
	apiErr := &Error{Status: status, Message: defaultErrorMessage}

	var body struct {
		Message string          `json:"message"`
		Detail  json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	if len(body.Detail) > 0 && string(body.Detail) != "null" {
		apiErr.Detail = body.Detail
	}

	switch {
	case strings.TrimSpace(body.Message) != "":
		apiErr.Message = body.Message
	case apiErr.Detail != nil:
		if msg := detailMessage(apiErr.Detail); msg != "" {
			apiErr.Message = msg
		}
	}
	return apiErr
}

// detailMessage extracts readable text from a "detail" field. It accepts a plain
// string, an object with "msg"/"message", or a list of such objects.
func detailMessage(detail json.RawMessage) string {
	var text string
	if err := json.Unmarshal(detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	type item struct {
		Msg     string `json:"msg"`
		Message string `json:"message"`
	}
	pick := func(it item) string {
		if it.Msg != "" {
			return it.Msg
		}
		return it.Message
	}

	var single item
	if err := json.Unmarshal(detail, &single); err == nil {
		return pick(single)
	}

	var list []item
	if err := json.Unmarshal(detail, &list); err == nil {
		msgs := make([]string, 0, len(list))
		for _, it := range list {
			if m := pick(it); m != "" {
				msgs = append(msgs, m)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return ""
}

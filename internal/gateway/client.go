package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client talks to the REST backend that owns all domain records. It is the
// single place where gateway JSON is decoded: handlers and stores only ever
// see typed records or a *Error.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

func New(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (c *Client) url(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/") + "/"
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		ge := errorFromResponse(resp)
		c.logger.Warn("gateway request failed",
			zap.String("method", method),
			zap.String("url", url),
			zap.Int("status", ge.Status),
			zap.String("message", ge.Message))
		return ge
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &Error{Status: resp.StatusCode, Message: fmt.Sprintf("malformed response: %v", err)}
	}
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
		contentType = "application/json"
	}
	return c.do(ctx, method, url, body, contentType, out)
}

// List fetches a collection. The backend returns either a bare JSON array or
// an object wrapping it in a results field; both shapes are accepted.
func List[T any](ctx context.Context, c *Client, collection string) ([]T, error) {
	var raw json.RawMessage
	if err := c.do(ctx, http.MethodGet, c.url(collection), nil, "", &raw); err != nil {
		return nil, err
	}
	return unwrapList[T](raw)
}

func unwrapList[T any](raw json.RawMessage) ([]T, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, &Error{Status: http.StatusOK, Message: fmt.Sprintf("malformed collection: %v", err)}
		}
		raw = envelope.Results
	}
	var records []T
	if len(raw) == 0 {
		return records, nil
	}
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, &Error{Status: http.StatusOK, Message: fmt.Sprintf("malformed collection: %v", err)}
	}
	return records, nil
}

// Create posts a new record to a collection and returns the stored record.
func Create[T any](ctx context.Context, c *Client, collection string, in any) (T, error) {
	var out T
	err := c.doJSON(ctx, http.MethodPost, c.url(collection), in, &out)
	return out, err
}

// Update patches the record at {collection}/{id}/ and returns the new value.
func Update[T any](ctx context.Context, c *Client, collection, id string, in any) (T, error) {
	var out T
	err := c.doJSON(ctx, http.MethodPatch, c.url(collection, id), in, &out)
	return out, err
}

// Delete removes the record at {collection}/{id}/.
func Delete(ctx context.Context, c *Client, collection, id string) error {
	return c.do(ctx, http.MethodDelete, c.url(collection, id), nil, "", nil)
}

// Action posts to an action-style endpoint {collection}/{id}/{verb}/
// (approve, reject, register, process) and returns the updated record.
func Action[T any](ctx context.Context, c *Client, collection, id, verb string, in any) (T, error) {
	var out T
	err := c.doJSON(ctx, http.MethodPost, c.url(collection, id, verb), in, &out)
	return out, err
}

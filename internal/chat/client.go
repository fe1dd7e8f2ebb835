// Package chat talks to the remote /chat endpoint and keeps the widget's
// transcript.
package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxReplyBytes = 1 << 20

// Request is the /chat request body.
type Request struct {
	Message string `json:"message"`
}

// Response is the /chat response body.
type Response struct {
	Reply *string `json:"reply"`
}

// Sender is anything that can exchange one message for a reply.
type Sender interface {
	Send(ctx context.Context, message string) (string, error)
}

type Client struct {
	endpoint string
	http     *http.Client
	log      *zap.Logger
}

type ClientOption func(*Client)

func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log *zap.Logger) ClientOption {
	return func(c *Client) { c.log = log }
}

func NewClient(endpoint string, timeout time.Duration, opts ...ClientOption) *Client {
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: timeout},
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

// Send posts one message and returns the raw reply. It does not retry.
func (c *Client) Send(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(Request{Message: message})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)

	log := c.log.With(zap.String("request_id", reqID))
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn("chat request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		log.Warn("chat request rejected", zap.Int("status", resp.StatusCode))
		return "", fmt.Errorf("%w: status %d", ErrUnreachable, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxReplyBytes)).Decode(&out); err != nil {
		log.Warn("chat reply undecodable", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrMalformedReply, err)
	}
	if out.Reply == nil {
		return "", fmt.Errorf("%w: missing reply field", ErrMalformedReply)
	}
	log.Debug("chat reply received",
		zap.Duration("elapsed", time.Since(start)), zap.Int("bytes", len(*out.Reply)))
	return *out.Reply, nil
}

// Package client talks to the record store REST service on behalf of the
// counter dashboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/mobilehub-pos/internal/domain/entity"
	"github.com/sangkips/mobilehub-pos/pkg/apperror"
)

// DefaultBaseURL is where the record store listens out of the box
const DefaultBaseURL = "http://localhost:5000/api"

// IdempotencyKeyHeader must match the server middleware
const IdempotencyKeyHeader = "Idempotency-Key"

var errUnexpectedStatus = errors.New("unexpected status")

// Client is a thin wrapper over the /customers and /auth endpoints. It keeps
// no cache and never retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// Option customises a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New creates a client for baseURL. A nil session is replaced by a
// signed-out one.
func New(baseURL string, session *Session, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if session == nil {
		session = NewSession()
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		session:    session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the authentication context the client sends with requests
func (c *Client) Session() *Session {
	return c.session
}

// LoginResult is what a successful login hands back
type LoginResult struct {
	Token      string       `json:"access_token"`
	ShortToken string       `json:"token"`
	TokenType  string       `json:"token_type"`
	ExpiresAt  time.Time    `json:"expires_at"`
	User       *entity.User `json:"user"`
}

type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// Login exchanges credentials for a token and begins the session. Any
// failure, including an unreachable server, is an auth failure.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil, &out)
	if err != nil {
		return nil, apperror.NewAuthError(err)
	}
	if out.Token == "" {
		out.Token = out.ShortToken
	}
	// a store that issues no token still signs the operator in on 2xx
	c.session.Begin(out.Token, email, out.ExpiresAt)
	return &out, nil
}

// Logout ends the session. The server keeps no session state, so this is
// local only.
func (c *Client) Logout() {
	c.session.End()
}

// List fetches every record
func (c *Client) List(ctx context.Context) ([]entity.Record, error) {
	var records []entity.Record
	if err := c.do(ctx, http.MethodGet, "/customers", nil, nil, &records); err != nil {
		return nil, apperror.NewNetworkError(err)
	}
	if records == nil {
		records = []entity.Record{}
	}
	return records, nil
}

// Create stores a new record. A non-empty idempotencyKey lets the server
// collapse a repeated submit into one record.
func (c *Client) Create(ctx context.Context, rec *entity.Record, idempotencyKey string) (*entity.Record, error) {
	headers := map[string]string{}
	if idempotencyKey != "" {
		headers[IdempotencyKeyHeader] = idempotencyKey
	}
	var out entity.Record
	if err := c.do(ctx, http.MethodPost, "/customers", rec, headers, &out); err != nil {
		return nil, apperror.NewNetworkError(err)
	}
	return &out, nil
}

// Update replaces the record stored under id
func (c *Client) Update(ctx context.Context, id uuid.UUID, rec *entity.Record) (*entity.Record, error) {
	var out entity.Record
	if err := c.do(ctx, http.MethodPut, "/customers/"+id.String(), rec, nil, &out); err != nil {
		return nil, apperror.NewNetworkError(err)
	}
	return &out, nil
}

// Delete removes the record stored under id
func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	if err := c.do(ctx, http.MethodDelete, "/customers/"+id.String(), nil, nil, nil); err != nil {
		return apperror.NewNetworkError(err)
	}
	return nil
}

// do sends one request. Any 2xx is success.
func (c *Client) do(ctx context.Context, method, path string, body interface{}, headers map[string]string, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s %s: %d: %s", errUnexpectedStatus, method, path, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}
	data := payload(raw)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// payload returns the part of a response body holding the result. The
// service wraps it as {"success":..,"data":..}; a plain store answers with
// the bare array or object.
func payload(body []byte) json.RawMessage {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return body
	}
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil || env.Success == nil {
		return body
	}
	return env.Data
}

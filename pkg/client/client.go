// Package client is a Go client for the notes REST API.
//
// Arguments are checked locally with the same policy the server applies, so
// malformed calls fail before any request is sent.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a failure reported by the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Session is the authenticated state returned by Login.
type Session struct {
	UserID string
	Token  string
}

// Profile is the public part of an account.
type Profile struct {
	Name    string `json:"name"`
	Surname string `json:"surname"`
	Email   string `json:"email"`
}

type NoteView struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a client for the API served under baseURL, e.g.
// "http://localhost:5000/api".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

// do sends the request and decodes the data of a successful response into out.
func (c *Client) do(ctx context.Context, method, path string, session *Session, payload any, want int, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if session != nil {
		req.Header.Set("Authorization", "Bearer "+session.Token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach server: %w", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err = json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("unexpected response status %d", resp.StatusCode)}
	}

	if env.Error != "" {
		return &APIError{Status: resp.StatusCode, Message: env.Error}
	}
	if resp.StatusCode != want || env.Status != "OK" {
		return &APIError{
			Status:  resp.StatusCode,
			Message: fmt.Sprintf("unexpected response status %d (%s)", resp.StatusCode, env.Status),
		}
	}

	if out != nil && len(env.Data) > 0 {
		if err = json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func userPath(userID string, parts ...string) string {
	path := "/users/" + url.PathEscape(userID)
	for _, part := range parts {
		path += "/" + url.PathEscape(part)
	}
	return path
}

func active(session *Session) error {
	if session == nil || session.Token == "" {
		return ErrNotLoggedIn
	}
	return nil
}

// Package garmin implements the remote-service collaborator: session token
// persistence, credential login, and activity upload. The codec core only
// sees the Uploader interface; everything else here is transport plumbing.
package garmin

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/arloliu/fitsync/errs"
)

const (
	defaultBaseURL = "https://connectapi.garmin.com"
	loginPath      = "/auth/login"
	uploadPath     = "/upload-service/upload/.fit"
)

// Uploader hands cleaned activity bytes to the remote service. This is the
// boundary the sync flow depends on; tests substitute their own.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) error
}

// Client talks to the remote activity service. It is not safe for concurrent
// use; the sync flow is fully sequential.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      Token
}

var _ Uploader = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient substitutes the HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL overrides the service base URL, mainly for tests.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// NewClient creates an unauthenticated client. Call Resume or Login before
// Upload.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Token returns the current session token.
func (c *Client) Token() Token {
	return c.token
}

// Resume loads a persisted session token. An unreadable, malformed or
// expired token yields ErrNotAuthenticated so callers fall back to Login.
func (c *Client) Resume(path string) error {
	token, err := LoadToken(path)
	if err != nil {
		return err
	}
	if !token.Valid() {
		return fmt.Errorf("%w: session expired", errs.ErrNotAuthenticated)
	}

	c.token = token
	log.Info().Str("username", token.Username).Msg("resumed session")

	return nil
}

// Login authenticates with credentials and replaces the session token.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return fmt.Errorf("failed to encode credentials: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+loginPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: wrong credentials", errs.ErrNotAuthenticated)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("login failed with status %s", resp.Status)
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return fmt.Errorf("failed to decode login response: %w", err)
	}
	token.Username = username

	c.token = token
	log.Info().Str("username", username).Msg("authenticated")

	return nil
}

// Upload sends cleaned activity bytes as a multipart file upload.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) error {
	if !c.token.Valid() {
		return fmt.Errorf("%w: call Resume or Login first", errs.ErrNotAuthenticated)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return fmt.Errorf("failed to build upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to build upload body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to build upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+uploadPath, &buf)
	if err != nil {
		return fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+c.token.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		log.Info().Str("filename", filename).Int("bytes", len(data)).Msg("uploaded activity")
		return nil
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", errs.ErrDuplicateActivity, filename)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: session rejected", errs.ErrNotAuthenticated)
	default:
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upload failed with status %s: %s", resp.Status, detail)
	}
}

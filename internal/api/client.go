// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package api provides the HTTP client for the tutor backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jeranaias/tutor-tui/internal/model"
)

// tokenHeader is the header the backend reads the bearer credential from.
const tokenHeader = "x-token"

// =============================================================================
// ERROR TYPES
// =============================================================================

// ClientError represents an error from the backend client.
type ClientError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ClientError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ClientError) Unwrap() error {
	return e.Cause
}

// ErrorType categorizes client errors for handling.
type ErrorType int

const (
	ErrTypeUnknown ErrorType = iota
	ErrTypeNotAuthenticated
	ErrTypeInvalidCredentials
	ErrTypeTimeout
	ErrTypeConnection
	ErrTypeInvalidResponse
	ErrTypeServer
)

// Sentinel errors for easy checking.
var (
	ErrNotAuthenticated   = &ClientError{Type: ErrTypeNotAuthenticated, Message: "not authenticated"}
	ErrInvalidCredentials = &ClientError{Type: ErrTypeInvalidCredentials, Message: "invalid credentials"}
	ErrTimeout            = &ClientError{Type: ErrTypeTimeout, Message: "request timed out"}
)

// IsNotAuthenticated checks if an error is the missing-identity short-circuit.
func IsNotAuthenticated(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeNotAuthenticated
	}
	return errors.Is(err, ErrNotAuthenticated)
}

// IsInvalidCredentials checks if an error is a rejected login.
func IsInvalidCredentials(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeInvalidCredentials
	}
	return errors.Is(err, ErrInvalidCredentials)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr.Type == ErrTypeTimeout
	}
	return errors.Is(err, ErrTimeout)
}

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the backend client.
type ClientConfig struct {
	// BaseURL is the tutor backend base URL (default: http://127.0.0.1:8000)
	BaseURL string

	// Timeout for requests other than /chat and /upload_pdf (default: 30s)
	Timeout time.Duration

	// LongTimeout for answer generation and uploads, which the backend may
	// take a while to serve (default: 2m)
	LongTimeout time.Duration
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL:     "http://127.0.0.1:8000",
		Timeout:     30 * time.Second,
		LongTimeout: 2 * time.Minute,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client handles communication with the tutor backend API.
//
// All methods take a context and return typed errors. Methods on
// authenticated endpoints short-circuit with ErrNotAuthenticated when no
// token is set, without issuing a request.
//
// Example:
//
//	client := api.NewClient()
//	id, err := client.Login(ctx, email, password)
//	if err == nil {
//	    client.SetToken(id.Token)
//	}
type Client struct {
	config     *ClientConfig
	httpClient *http.Client
	longClient *http.Client
	token      string
}

// NewClient creates a new backend client with default configuration.
func NewClient() *Client {
	return NewClientWithConfig(DefaultConfig())
}

// NewClientWithConfig creates a new backend client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	// Fill in defaults for any zero values
	if config.BaseURL == "" {
		config.BaseURL = "http://127.0.0.1:8000"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}
	if config.LongTimeout == 0 {
		config.LongTimeout = 2 * time.Minute
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		longClient: &http.Client{
			Timeout: config.LongTimeout,
		},
	}
}

// SetToken sets the bearer credential attached to authenticated requests.
// An empty token returns the client to the unauthenticated state.
func (c *Client) SetToken(token string) {
	c.token = token
}

// HasToken reports whether a bearer credential is currently set.
func (c *Client) HasToken() bool {
	return c.token != ""
}

// GetConfig returns the client configuration.
func (c *Client) GetConfig() *ClientConfig {
	return c.config
}

// =============================================================================
// AUTH OPERATIONS
// =============================================================================

// Register creates an account. The backend replies 200 with no meaningful
// body on success; on failure the response text is surfaced verbatim.
func (c *Client) Register(ctx context.Context, email, username, password string) error {
	body, err := json.Marshal(RegisterRequest{Email: email, Username: username, Password: password})
	if err != nil {
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/register", bytes.NewReader(body))
	if err != nil {
		return &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ClientError{Type: ErrTypeServer, Message: readErrorText(resp.Body, "registration failed: "+resp.Status)}
	}

	return nil
}

// Login exchanges email/password for an identity carrying a bearer token.
// Any non-success status maps to ErrInvalidCredentials; the raw server text
// is deliberately not surfaced for login failures.
func (c *Client) Login(ctx context.Context, email, password string) (model.Identity, error) {
	body, err := json.Marshal(LoginRequest{Email: email, Password: password})
	if err != nil {
		return model.Identity{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/login", bytes.NewReader(body))
	if err != nil {
		return model.Identity{}, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.Identity{}, wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		drain(resp.Body)
		return model.Identity{}, ErrInvalidCredentials
	}

	var result LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Identity{}, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result.Identity(), nil
}

// =============================================================================
// CONVERSATION OPERATIONS
// =============================================================================

// Conversations fetches all conversation summaries for the current identity.
func (c *Client) Conversations(ctx context.Context) ([]model.ConversationSummary, error) {
	resp, err := c.authedRequest(ctx, c.httpClient, http.MethodGet, "/conversations", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{Type: ErrTypeServer, Message: "failed to list conversations: " + resp.Status}
	}

	var result []model.ConversationSummary
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return result, nil
}

// History fetches the ordered transcript of a conversation.
func (c *Client) History(ctx context.Context, id string) ([]model.Message, error) {
	resp, err := c.authedRequest(ctx, c.httpClient, http.MethodGet, "/conversations/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{Type: ErrTypeServer, Message: "failed to load history: " + resp.Status}
	}

	var entries []historyEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	messages := make([]model.Message, 0, len(entries))
	for _, e := range entries {
		messages = append(messages, model.Message{
			Role:    model.Role(e.Role),
			Text:    e.Text,
			Sources: e.Sources,
		})
	}
	return messages, nil
}

// DeleteConversation requests deletion of a conversation. The delete is best
// effort: callers drop the thread from their view regardless of the outcome,
// so a non-success status is not an error here.
func (c *Client) DeleteConversation(ctx context.Context, id string) error {
	resp, err := c.authedRequest(ctx, c.httpClient, http.MethodDelete, "/conversations/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// Chat sends one turn and returns the generated answer with citations.
// Uses the long timeout; answer generation routinely outlasts 30s.
func (c *Client) Chat(ctx context.Context, question string, k int, conversationID string) (*ChatAnswer, error) {
	body, err := json.Marshal(ChatRequest{Question: question, K: k, ConversationID: conversationID})
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to marshal request", Cause: err}
	}

	resp, err := c.authedRequest(ctx, c.longClient, http.MethodPost, "/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var srvErr serverError
		if err := json.NewDecoder(resp.Body).Decode(&srvErr); err == nil && srvErr.text() != "" {
			return nil, &ClientError{Type: ErrTypeServer, Message: srvErr.text()}
		}
		return nil, &ClientError{Type: ErrTypeServer, Message: "chat request failed: " + resp.Status}
	}

	var result ChatAnswer
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// =============================================================================
// KNOWLEDGE DOCUMENT OPERATIONS
// =============================================================================

// ListPDFs fetches the stored filenames of all uploaded knowledge documents.
func (c *Client) ListPDFs(ctx context.Context) ([]model.Document, error) {
	resp, err := c.authedRequest(ctx, c.httpClient, http.MethodGet, "/pdfs", nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{Type: ErrTypeServer, Message: "failed to list documents: " + resp.Status}
	}

	var names []string
	if err := json.NewDecoder(resp.Body).Decode(&names); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	docs := make([]model.Document, 0, len(names))
	for _, name := range names {
		docs = append(docs, model.Document{StoredName: name})
	}
	return docs, nil
}

// UploadPDF sends the file at path as a multipart payload and returns the
// stored filename with page/chunk counts. Uses the long timeout; parsing and
// chunking happen inline on the backend.
func (c *Client) UploadPDF(ctx context.Context, path string) (*UploadResult, error) {
	if c.token == "" {
		return nil, ErrNotAuthenticated
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to open file", Cause: err}
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build upload", Cause: err}
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to read file", Cause: err}
	}
	if err := mw.Close(); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to build upload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL+"/upload_pdf", &buf)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set(tokenHeader, c.token)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.longClient.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &ClientError{Type: ErrTypeServer, Message: readErrorText(resp.Body, "upload failed: "+resp.Status)}
	}

	var result UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}

	return &result, nil
}

// DeletePDF requests deletion of a stored document by its full stored name.
// Best effort, like conversation deletion: the caller refetches the list
// afterwards regardless of the outcome.
func (c *Client) DeletePDF(ctx context.Context, name string) error {
	resp, err := c.authedRequest(ctx, c.httpClient, http.MethodDelete, "/pdfs/"+url.PathEscape(name), nil)
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// =============================================================================
// REQUEST HELPERS
// =============================================================================

// authedRequest issues a request carrying the bearer token, short-circuiting
// with ErrNotAuthenticated when no identity is present.
func (c *Client) authedRequest(ctx context.Context, hc *http.Client, method, path string, body io.Reader) (*http.Response, error) {
	if c.token == "" {
		return nil, ErrNotAuthenticated
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, body)
	if err != nil {
		return nil, &ClientError{Type: ErrTypeConnection, Message: "failed to create request", Cause: err}
	}
	req.Header.Set(tokenHeader, c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := hc.Do(req)
	if err != nil {
		return nil, wrapTransportError(err)
	}
	return resp, nil
}

// wrapTransportError maps transport failures onto the client error taxonomy.
func wrapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	if errors.Is(err, context.Canceled) {
		return &ClientError{Type: ErrTypeConnection, Message: "request canceled", Cause: err}
	}
	return &ClientError{Type: ErrTypeConnection, Message: "backend unreachable", Cause: err}
}

// readErrorText reads a short error body, falling back to the given default.
func readErrorText(r io.Reader, fallback string) string {
	data, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return fallback
	}
	return string(bytes.TrimSpace(data))
}

// drain discards a response body so the connection can be reused.
func drain(r io.Reader) {
	io.Copy(io.Discard, r)
}

// drainAndClose discards and closes a response body.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, r)
	r.Close()
}

// Package arcade provides the Arcade tool-authorization and execution client.
//
// Every external tool call (email, calendar, flight search) goes through the
// two-phase protocol: authorize, wait for the user's consent to resolve, then
// execute. The Gate type wraps the sequence.
package arcade

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/wanderwise-ai/trip-planner/pkg/logger"
)

// AuthStatus is the state of an authorization handle.
type AuthStatus string

const (
	StatusPending   AuthStatus = "pending"
	StatusCompleted AuthStatus = "completed"
)

// ErrAuthTimeout is returned when an authorization does not resolve within
// the configured wait window. It is a distinct, reportable failure kind, not
// an indefinite block.
var ErrAuthTimeout = errors.New("authorization wait timed out")

// Authorization is the transient handle for one tool invocation's consent.
// Created by Authorize, resolved by WaitForCompletion, discarded after the
// paired Execute call.
type Authorization struct {
	ID       string     `json:"id"`
	ToolName string     `json:"tool_name"`
	UserID   string     `json:"user_id"`
	Status   AuthStatus `json:"status"`
	URL      string     `json:"url,omitempty"`
}

// ExecuteResponse is the result of a tool execution.
type ExecuteResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Output struct {
		Value interface{} `json:"value"`
	} `json:"output"`
}

// Config holds Arcade client configuration.
type Config struct {
	APIKey       string
	BaseURL      string
	PollInterval time.Duration
	AuthTimeout  time.Duration
}

// Client talks to the Arcade REST API.
type Client struct {
	apiKey       string
	baseURL      string
	pollInterval time.Duration
	authTimeout  time.Duration
	httpClient   *http.Client
	logger       *logger.Logger
}

// NewClient creates a new Arcade client.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("Arcade API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.arcade.dev"
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.AuthTimeout <= 0 {
		cfg.AuthTimeout = 2 * time.Minute
	}

	return &Client{
		apiKey:       cfg.APIKey,
		baseURL:      cfg.BaseURL,
		pollInterval: cfg.PollInterval,
		authTimeout:  cfg.AuthTimeout,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
		logger:       log,
	}, nil
}

// Authorize requests access to a tool on behalf of a user and returns the
// authorization handle. A handle that is not yet completed carries the
// consent URL the user must visit.
func (c *Client) Authorize(ctx context.Context, toolName, userID string) (*Authorization, error) {
	body := map[string]string{
		"tool_name": toolName,
		"user_id":   userID,
	}

	var auth Authorization
	if err := c.doJSON(ctx, http.MethodPost, "/v1/tools/authorize", body, &auth); err != nil {
		return nil, fmt.Errorf("failed to authorize %s: %w", toolName, err)
	}

	auth.ToolName = toolName
	auth.UserID = userID
	return &auth, nil
}

// WaitForCompletion blocks until the authorization resolves, polling the
// status endpoint. The wait is bounded by the configured auth timeout and by
// ctx; expiry returns ErrAuthTimeout.
func (c *Client) WaitForCompletion(ctx context.Context, auth *Authorization) (*Authorization, error) {
	if auth.Status == StatusCompleted {
		return auth, nil
	}

	waitCtx, cancel := context.WithTimeout(ctx, c.authTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-waitCtx.Done():
			if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
				return nil, fmt.Errorf("%w: %s for %s", ErrAuthTimeout, auth.ToolName, auth.UserID)
			}
			return nil, waitCtx.Err()
		case <-ticker.C:
			status, err := c.authStatus(waitCtx, auth.ID)
			if err != nil {
				// A poll cut off by the wait deadline is a timeout, not a
				// transport failure.
				if errors.Is(waitCtx.Err(), context.DeadlineExceeded) {
					return nil, fmt.Errorf("%w: %s for %s", ErrAuthTimeout, auth.ToolName, auth.UserID)
				}
				return nil, err
			}
			if status.Status == StatusCompleted {
				resolved := *auth
				resolved.Status = StatusCompleted
				return &resolved, nil
			}
		}
	}
}

// Execute runs a tool with the given input on behalf of a user. Callers must
// hold a completed authorization for the tool.
func (c *Client) Execute(ctx context.Context, toolName string, input map[string]interface{}, userID string) (*ExecuteResponse, error) {
	body := map[string]interface{}{
		"tool_name": toolName,
		"input":     input,
		"user_id":   userID,
	}

	var resp ExecuteResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/tools/execute", body, &resp); err != nil {
		return nil, fmt.Errorf("failed to execute %s: %w", toolName, err)
	}

	return &resp, nil
}

func (c *Client) authStatus(ctx context.Context, authID string) (*Authorization, error) {
	path := "/v1/auth/status?" + url.Values{"authorization_id": {authID}}.Encode()

	var auth Authorization
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &auth); err != nil {
		return nil, fmt.Errorf("failed to poll authorization status: %w", err)
	}
	return &auth, nil
}

type apiError struct {
	Message string `json:"message"`
	Error_  string `json:"error"`
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr apiError
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, &apiErr); err == nil && (apiErr.Message != "" || apiErr.Error_ != "") {
			msg := apiErr.Message
			if msg == "" {
				msg = apiErr.Error_
			}
			return fmt.Errorf("arcade API error (%d): %s", resp.StatusCode, msg)
		}
		return fmt.Errorf("arcade API error (%d)", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// Package httpapi implements session.Backend against the marketplace auth
// endpoints. It owns transport concerns only: request shaping, bounded
// timeouts, correlation ids, and mapping HTTP status codes onto the error
// taxonomy the session manager acts on.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/harvestly/go-session-gate/internal/config"
	apperrors "github.com/harvestly/go-session-gate/internal/errors"
	"github.com/harvestly/go-session-gate/session"
	"github.com/harvestly/go-session-gate/users"
)

const (
	routeLogin    = "/auth/login"
	routeRegister = "/auth/register"
	routeValidate = "/auth/validate"
	routeRefresh  = "/auth/refresh"

	headerRequestID = "X-Request-ID"
)

var _ session.Backend = (*Client)(nil)

// Client talks to the marketplace auth backend over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// ClientOption defines a function type to modify the Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client (primarily for testing).
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New builds a Client from backend configuration. Every call is bounded by
// the configured request timeout; a timeout classifies as a network failure,
// never as a rejected token.
func New(cfg config.BackendConfig, options ...ClientOption) *Client {
	c := &Client{
		baseURL:    cfg.GetAPIBaseURL(),
		httpClient: &http.Client{Timeout: cfg.GetRequestTimeout()},
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type credentialsResponse struct {
	Token string   `json:"token"`
	User  wireUser `json:"user"`
}

type validateResponse struct {
	User wireUser `json:"user"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type wireUser struct {
	ID      string        `json:"id"`
	Email   string        `json:"email"`
	Role    string        `json:"role"`
	Profile users.Profile `json:"profile"`
}

func (w wireUser) toUser() (*users.User, error) {
	role, err := users.ParseRole(w.Role)
	if err != nil {
		return nil, errors.Wrap(err, "[wireUser.toUser]")
	}
	return &users.User{ID: w.ID, Email: w.Email, Role: role, Profile: w.Profile}, nil
}

// Login implements session.Backend.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Credentials, error) {
	var resp credentialsResponse
	if err := c.do(ctx, http.MethodPost, routeLogin, loginRequest{Email: email, Password: password}, "", &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Login]")
	}
	return c.toCredentials(resp)
}

// Register implements session.Backend.
func (c *Client) Register(ctx context.Context, req session.RegisterRequest) (*session.Credentials, error) {
	var resp credentialsResponse
	if err := c.do(ctx, http.MethodPost, routeRegister, req, "", &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Register]")
	}
	return c.toCredentials(resp)
}

// Validate implements session.Backend.
func (c *Client) Validate(ctx context.Context, token string) (*users.User, error) {
	var resp validateResponse
	if err := c.do(ctx, http.MethodGet, routeValidate, nil, token, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Validate]")
	}
	user, err := resp.User.toUser()
	if err != nil {
		return nil, errors.Wrap(err, "[Client.Validate]")
	}
	return user, nil
}

// Refresh implements session.Backend.
func (c *Client) Refresh(ctx context.Context, token string) (*session.Credentials, error) {
	var resp credentialsResponse
	if err := c.do(ctx, http.MethodPost, routeRefresh, nil, token, &resp); err != nil {
		return nil, errors.Wrap(err, "[Client.Refresh]")
	}
	return c.toCredentials(resp)
}

func (c *Client) toCredentials(resp credentialsResponse) (*session.Credentials, error) {
	user, err := resp.User.toUser()
	if err != nil {
		return nil, err
	}
	return &session.Credentials{Token: resp.Token, User: *user}, nil
}

func (c *Client) do(ctx context.Context, method, route string, body any, bearer string, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "marshal request")
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, reqBody)
	if err != nil {
		return errors.Wrap(err, "build request")
	}
	requestID := uuid.New().String()
	req.Header.Set(headerRequestID, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("route", route).Str("request_id", requestID).Msg("backend call failed")
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("route", route).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("backend call")

	if resp.StatusCode >= 400 {
		return classifyStatus(resp.StatusCode, resp.Body)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "decode response")
		}
	}
	return nil
}

// classifyTransport maps transport-level failures. Timeouts and cancelled
// contexts are network failures: the token may still be valid once
// connectivity returns, so they must never look like a rejected token.
func classifyTransport(err error) error {
	var urlErr *url.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &urlErr) && urlErr.Timeout()) {
		return apperrors.Wrapf(apperrors.ErrTimeout, "%v", err)
	}
	return apperrors.Wrapf(apperrors.ErrNetwork, "%v", err)
}

func classifyStatus(status int, body io.Reader) error {
	var parsed errorResponse
	_ = json.NewDecoder(body).Decode(&parsed)
	detail := parsed.Error
	if detail == "" {
		detail = http.StatusText(status)
	}

	switch {
	case status == http.StatusUnauthorized:
		return apperrors.Wrapf(apperrors.ErrUnauthorized, "%s", detail)
	case status == http.StatusForbidden:
		return apperrors.Wrapf(apperrors.ErrForbidden, "%s", detail)
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return apperrors.Wrapf(apperrors.ErrValidation, "%s", detail)
	case status >= 500:
		return apperrors.Wrapf(apperrors.ErrInternal, "%s", detail)
	}
	return fmt.Errorf("unexpected status %d: %s", status, detail)
}

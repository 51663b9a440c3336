// Package authapi provides a typed REST client for the remote auth service.
// The service is opaque: the client only knows the /auth/* and /users/profile
// surface and the {success, message, data} envelope its responses share.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// defaultTimeout bounds every request, including the profile fetch the
// session loader issues on startup. A timed-out profile fetch is treated
// the same as any other failure: the caller degrades to logged-out.
const defaultTimeout = 10 * time.Second

// Client talks to the remote auth service.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.Timeout = d
	}
}

// New creates a Client for the service at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NormalizeEmail canonicalizes a user-typed address before it reaches the
// wire: NFKC fold (mobile keyboards produce fullwidth and composed forms),
// trimmed, lowercased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFKC.String(email)))
}

type authEnvelope struct {
	Envelope
	Data AuthData `json:"data"`
}

type profileEnvelope struct {
	Envelope
	Data User `json:"data"`
}

// Login exchanges credentials for a user and token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthData, error) {
	req := LoginRequest{Email: NormalizeEmail(email), Password: password}
	var resp authEnvelope
	if err := c.post(ctx, "/auth/login", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Register creates a new, unverified account. The returned token is valid
// but the user must verify via OTP before the client routes them past the
// verification screen.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthData, error) {
	req.Email = NormalizeEmail(req.Email)
	var resp authEnvelope
	if err := c.post(ctx, "/auth/register", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// VerifyOTP confirms email ownership. On success the returned user has
// IsVerified set and the token is refreshed.
func (c *Client) VerifyOTP(ctx context.Context, email, code string) (*AuthData, error) {
	req := VerifyOTPRequest{Email: NormalizeEmail(email), Code: code}
	var resp authEnvelope
	if err := c.post(ctx, "/auth/verify-otp", "", req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ResendOTP requests a fresh verification code.
func (c *Client) ResendOTP(ctx context.Context, email string) error {
	req := ResendOTPRequest{Email: NormalizeEmail(email)}
	var resp Envelope
	return c.post(ctx, "/auth/resend-otp", "", req, &resp)
}

// ForgotPassword starts a password reset. The server answers 200 whether
// or not the address is known.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	req := ForgotPasswordRequest{Email: NormalizeEmail(email)}
	var resp Envelope
	return c.post(ctx, "/auth/forgot-password", "", req, &resp)
}

// RefreshToken exchanges a still-valid token for a new one.
func (c *Client) RefreshToken(ctx context.Context, token string) (*AuthData, error) {
	var resp authEnvelope
	if err := c.post(ctx, "/auth/refresh-token", "", RefreshTokenRequest{Token: token}, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Logout invalidates the token server-side. Callers clear local state
// regardless of the result.
func (c *Client) Logout(ctx context.Context, token string) error {
	var resp Envelope
	return c.post(ctx, "/auth/logout", token, nil, &resp)
}

// Profile fetches the current user for the given token.
func (c *Client) Profile(ctx context.Context, token string) (*User, error) {
	var resp profileEnvelope
	if err := c.do(ctx, http.MethodGet, "/users/profile", token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

func (c *Client) post(ctx context.Context, path, token string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, token, body, out)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reqBody bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&reqBody).Encode(body); err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env Envelope
		if decodeErr := json.NewDecoder(resp.Body).Decode(&env); decodeErr == nil {
			apiErr.Message = env.Message
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

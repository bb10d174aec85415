package wardensdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"
)

// refreshSkew refreshes a little before the access token really expires.
const refreshSkew = 30 * time.Second

// ErrSessionClosed is returned after Logout.
var ErrSessionClosed = errors.New("wardensdk: session closed")

// Session carries a token pair and refreshes it on demand.
type Session struct {
	client *Client

	mu           sync.Mutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(c *Client, tok *TokenResponse) *Session {
	s := &Session{client: c}
	s.store(tok)
	return s
}

func (s *Session) store(tok *TokenResponse) {
	s.accessToken = tok.AccessToken
	s.refreshToken = tok.RefreshToken
	s.expiresAt = tok.ExpiresAt.Add(-refreshSkew)
}

// AccessToken returns a valid access token, refreshing first when needed.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return "", ErrSessionClosed
	}
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}

	tok, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		return "", fmt.Errorf("refresh: %w", err)
	}
	s.store(tok)
	return s.accessToken, nil
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshToken
}

func (s *Session) do(ctx context.Context, method, path string, body, out any, want int) error {
	tok, err := s.AccessToken(ctx)
	if err != nil {
		return err
	}
	return s.client.do(ctx, method, path, tok, body, out, want)
}

// Logout ends this session server side. Other sessions of the user stay valid.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	refresh, access := s.refreshToken, s.accessToken
	s.mu.Unlock()
	if refresh == "" {
		return ErrSessionClosed
	}

	err := s.client.do(ctx, http.MethodPost, "/auth/logout", access, LogoutRequest{RefreshToken: refresh}, nil, http.StatusNoContent)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.refreshToken, s.accessToken = "", ""
	s.mu.Unlock()
	return nil
}

func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	var out MeResponse
	if err := s.do(ctx, http.MethodGet, "/auth/me", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	req := ChangePasswordRequest{CurrentPassword: current, NewPassword: next}
	return s.do(ctx, http.MethodPost, "/auth/change-password", req, nil, http.StatusNoContent)
}

func (s *Session) ModuleTree(ctx context.Context) ([]ModuleNode, error) {
	var out []ModuleNode
	if err := s.do(ctx, http.MethodGet, "/modules/tree", nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

// ListOptions are the query parameters every listing accepts.
type ListOptions struct {
	Limit           int
	Offset          int
	Search          string
	IncludeInactive bool
}

func (o ListOptions) query() string {
	q := url.Values{}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	if o.IncludeInactive {
		q.Set("include_inactive", "true")
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

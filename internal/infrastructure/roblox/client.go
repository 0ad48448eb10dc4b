// Package roblox is a thin client for the public Roblox Users API, the two
// read-only endpoints the verification flow needs.
package roblox

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/robuddie/robuddie/internal/domain"
)

// Client talks to users.roblox.com. All failures reaching or reading the
// service surface as domain.ErrRobloxUnavailable; a lookup that succeeds but
// matches nothing surfaces as domain.ErrRobloxUserNotFound.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a client against baseURL with a bounded request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type usernameLookupRequest struct {
	Usernames          []string `json:"usernames"`
	ExcludeBannedUsers bool     `json:"excludeBannedUsers"`
}

type usernameLookupResponse struct {
	Data []domain.RobloxAccount `json:"data"`
}

// FindUser resolves an exact username to a Roblox account, excluding banned
// accounts. The batch endpoint is called with a single-element list.
func (c *Client) FindUser(ctx context.Context, username string) (*domain.RobloxAccount, error) {
	body, err := json.Marshal(usernameLookupRequest{
		Usernames:          []string{username},
		ExcludeBannedUsers: true,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal username lookup: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/usernames/users", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("username lookup: %w", domain.ErrRobloxUnavailable)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("username lookup status %d: %w", res.StatusCode, domain.ErrRobloxUnavailable)
	}

	var out usernameLookupResponse
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode username lookup: %w", domain.ErrRobloxUnavailable)
	}
	if len(out.Data) == 0 {
		return nil, fmt.Errorf("roblox user %q: %w", username, domain.ErrRobloxUserNotFound)
	}
	return &out.Data[0], nil
}

// Profile fetches the public profile for a resolved account id. The
// Description field holds the "About" text the challenge phrase must appear in.
func (c *Client) Profile(ctx context.Context, userID int64) (*domain.RobloxProfile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/v1/users/%d", c.baseURL, userID), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("profile fetch: %w", domain.ErrRobloxUnavailable)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("profile fetch status %d: %w", res.StatusCode, domain.ErrRobloxUnavailable)
	}

	var p domain.RobloxProfile
	if err := json.NewDecoder(res.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode profile: %w", domain.ErrRobloxUnavailable)
	}
	return &p, nil
}

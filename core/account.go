package core

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// User is the account record of the authenticated key's owner.
type User struct {
	ID                   uuid.UUID `json:"id"`
	UserID               string    `json:"user_id"`
	PlanName             string    `json:"plan_name"`
	CurrentCredits       float64   `json:"current_credits"`
	CreditsUsedThisMonth float64   `json:"credits_used_this_month"`
	CreditsResetDate     time.Time `json:"credits_reset_date"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
}

// APIKey is a key provisioned on a user account. Key carries the full
// secret only in the creation response; listings return it masked.
type APIKey struct {
	ID          uuid.UUID  `json:"id"`
	Key         string     `json:"key"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Description string     `json:"description,omitempty"`
	LastUsedAt  *time.Time `json:"last_used_at,omitempty"`
}

// APIKeyUpdate names the mutable fields of a key. Nil fields are left
// unchanged.
type APIKeyUpdate struct {
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

// GetUserAccount fetches the account of the authenticated user.
func (c *Client) GetUserAccount(ctx context.Context) (*User, error) {
	var user User
	if err := c.send(ctx, http.MethodGet, "/users/account", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateAPIKey provisions a new API key. expiresInDays of zero means the
// key never expires. The returned key is the only time the full secret is
// available.
func (c *Client) CreateAPIKey(ctx context.Context, description string, expiresInDays int) (*APIKey, error) {
	body := map[string]any{"description": description}
	if expiresInDays > 0 {
		body["expiresInDays"] = expiresInDays
	}

	var key APIKey
	if err := c.send(ctx, http.MethodPost, "/keys", body, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// ListAPIKeys returns all keys on the account, with secrets masked.
func (c *Client) ListAPIKeys(ctx context.Context) ([]APIKey, error) {
	var resp struct {
		APIKeys []APIKey `json:"api_keys"`
	}
	if err := c.send(ctx, http.MethodGet, "/keys", nil, &resp); err != nil {
		return nil, err
	}
	return resp.APIKeys, nil
}

// UpdateAPIKey changes the description or active state of a key.
func (c *Client) UpdateAPIKey(ctx context.Context, keyID string, update APIKeyUpdate) (*APIKey, error) {
	var key APIKey
	if err := c.send(ctx, http.MethodPatch, fmt.Sprintf("/keys/%s", keyID), update, &key); err != nil {
		return nil, err
	}
	return &key, nil
}

// DeleteAPIKey revokes a key permanently.
func (c *Client) DeleteAPIKey(ctx context.Context, keyID string) error {
	return c.send(ctx, http.MethodDelete, fmt.Sprintf("/keys/%s", keyID), nil, nil)
}

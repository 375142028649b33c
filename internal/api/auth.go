package api

import (
	"context"
	"net/http"

	"github.com/anhqhe/orderfood/internal/domain"
)

type credentialsPayload struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Login exchanges credentials for a user record and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	body := map[string]string{"email": email, "password": password}

	var payload credentialsPayload
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &payload); err != nil {
		return nil, "", err
	}
	return payload.User, payload.Token, nil
}

// Register provisions a new identity and returns it with a bearer token.
func (c *Client) Register(ctx context.Context, name, email, phone, password string) (*domain.User, string, error) {
	body := map[string]string{"name": name, "email": email, "phone": phone, "password": password}

	var payload credentialsPayload
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, body, &payload); err != nil {
		return nil, "", err
	}
	return payload.User, payload.Token, nil
}

// Me returns the user record for the current token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/me/civicflow/pkg/model"
)

const loginFailed = "Login failed"

type loginRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

type loginResponse struct {
	Token string            `json:"token"`
	User  model.BackendUser `json:"user"`
}

// Login exchanges credentials for a token. It is the only call sent without
// a bearer token, and a 401 here is a rejected login rather than an expired
// session. The returned session has no tier yet.
func (c *Client) Login(ctx context.Context, phoneNumber, password string) (*model.Session, error) {
	resp, err := c.send(ctx, request{
		op:     "login",
		method: http.MethodPost,
		path:   "/auth/admin-login",
		body:   loginRequest{PhoneNumber: phoneNumber, Password: password},
	})
	if err != nil {
		return nil, &CredentialError{Message: loginFailed, Err: err}
	}
	if resp.status < 200 || resp.status > 299 {
		msg := loginFailed
		if apiErr := model.ParseAPIError(resp.status, resp.body); apiErr != nil {
			msg = apiErr.Message
		}
		return nil, &CredentialError{Status: resp.status, Message: msg}
	}

	var lr loginResponse
	if err := json.Unmarshal(resp.body, &lr); err != nil {
		return nil, &CredentialError{Status: resp.status, Message: loginFailed, Err: err}
	}
	if lr.Token == "" {
		return nil, &CredentialError{Status: resp.status, Message: loginFailed}
	}

	user := model.ProfileFromBackend(lr.User)
	c.logger.Debug("login accepted", "user_id", user.ID, "role", user.Role)
	return &model.Session{Token: lr.Token, User: user}, nil
}

// Logout tells the server to end the session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil)
}

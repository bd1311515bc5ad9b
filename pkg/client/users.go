package client

import (
	"context"
	"net/http"

	"github.com/kotche/notes/internal/validation"
)

func (c *Client) RegisterUser(ctx context.Context, name, surname, email, password string) error {
	v, err := validation.Validate(
		validation.Required(validation.UserName, name),
		validation.Required(validation.UserSurname, surname),
		validation.Required(validation.UserEmail, email),
		validation.Required(validation.UserPassword, password),
	)
	if err != nil {
		return err
	}

	payload := map[string]string{"name": v[0], "surname": v[1], "email": v[2], "password": v[3]}
	return c.do(ctx, http.MethodPost, "/users", nil, payload, http.StatusCreated, nil)
}

// Login authenticates the user and returns a session for the other calls.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	v, err := validation.Validate(
		validation.Required(validation.UserEmail, email),
		validation.Required(validation.UserPassword, password),
	)
	if err != nil {
		return nil, err
	}

	var out struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	payload := map[string]string{"email": v[0], "password": v[1]}
	if err = c.do(ctx, http.MethodPost, "/auth", nil, payload, http.StatusOK, &out); err != nil {
		return nil, err
	}

	return &Session{UserID: out.ID, Token: out.Token}, nil
}

// Logout forgets the session credentials.
func (c *Client) Logout(session *Session) {
	if session != nil {
		*session = Session{}
	}
}

func (c *Client) RetrieveUser(ctx context.Context, session *Session) (*Profile, error) {
	if err := active(session); err != nil {
		return nil, err
	}
	v, err := validation.Validate(validation.Required(validation.UserID, session.UserID))
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err = c.do(ctx, http.MethodGet, userPath(v[0]), session, nil, http.StatusOK, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateUser changes the profile. newEmail and newPassword may be empty to keep
// the current values.
func (c *Client) UpdateUser(ctx context.Context, session *Session, name, surname, email, password, newEmail, newPassword string) error {
	if err := active(session); err != nil {
		return err
	}
	v, err := validation.Validate(
		validation.Required(validation.UserID, session.UserID),
		validation.Required(validation.UserName, name),
		validation.Required(validation.UserSurname, surname),
		validation.Required(validation.UserEmail, email),
		validation.Required(validation.UserPassword, password),
	)
	if err != nil {
		return err
	}

	payload := map[string]string{
		"name":        v[1],
		"surname":     v[2],
		"email":       v[3],
		"password":    v[4],
		"newEmail":    newEmail,
		"newPassword": newPassword,
	}
	return c.do(ctx, http.MethodPatch, userPath(v[0]), session, payload, http.StatusOK, nil)
}

// UnregisterUser deletes the account and ends the session.
func (c *Client) UnregisterUser(ctx context.Context, session *Session, email, password string) error {
	if err := active(session); err != nil {
		return err
	}
	v, err := validation.Validate(
		validation.Required(validation.UserID, session.UserID),
		validation.Required(validation.UserEmail, email),
		validation.Required(validation.UserPassword, password),
	)
	if err != nil {
		return err
	}

	payload := map[string]string{"email": v[1], "password": v[2]}
	if err = c.do(ctx, http.MethodDelete, userPath(v[0]), session, payload, http.StatusOK, nil); err != nil {
		return err
	}

	c.Logout(session)
	return nil
}

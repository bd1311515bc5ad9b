package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/kotche/notes/internal/validation"
)

func (c *Client) AddNote(ctx context.Context, session *Session, text string) (string, error) {
	if err := active(session); err != nil {
		return "", err
	}
	v, err := validation.Validate(
		validation.Required(validation.UserID, session.UserID),
		validation.Required(validation.Text, text),
	)
	if err != nil {
		return "", err
	}

	var out struct {
		ID string `json:"id"`
	}
	payload := map[string]string{"text": v[1]}
	if err = c.do(ctx, http.MethodPost, userPath(v[0], "notes"), session, payload, http.StatusCreated, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (c *Client) RetrieveNote(ctx context.Context, session *Session, noteID string) (*NoteView, error) {
	if err := active(session); err != nil {
		return nil, err
	}
	v, err := validation.Validate(
		validation.Required(validation.UserID, session.UserID),
		validation.Required(validation.NoteID, noteID),
	)
	if err != nil {
		return nil, err
	}

	var view NoteView
	if err = c.do(ctx, http.MethodGet, userPath(v[0], "notes", v[1]), session, nil, http.StatusOK, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Client) ListNotes(ctx context.Context, session *Session) ([]NoteView, error) {
	if err := active(session); err != nil {
		return nil, err
	}
	v, err := validation.Validate(validation.Required(validation.UserID, session.UserID))
	if err != nil {
		return nil, err
	}

	views := []NoteView{}
	if err = c.do(ctx, http.MethodGet, userPath(v[0], "notes"), session, nil, http.StatusOK, &views); err != nil {
		return nil, err
	}
	return views, nil
}

func (c *Client) UpdateNote(ctx context.Context, session *Session, noteID, text string) error {
	if err := active(session); err != nil {
		return err
	}
	v, err := validation.Validate(
		validation.Required(validation.UserID, session.UserID),
		validation.Required(validation.NoteID, noteID),
		validation.Required(validation.Text, text),
	)
	if err != nil {
		return err
	}

	payload := map[string]string{"text": v[2]}
	return c.do(ctx, http.MethodPatch, userPath(v[0], "notes", v[1]), session, payload, http.StatusOK, nil)
}

func (c *Client) RemoveNote(ctx context.Context, session *Session, noteID string) error {
	if err := active(session); err != nil {
		return err
	}
	v, err := validation.Validate(
		validation.Required(validation.UserID, session.UserID),
		validation.Required(validation.NoteID, noteID),
	)
	if err != nil {
		return err
	}

	return c.do(ctx, http.MethodDelete, userPath(v[0], "notes", v[1]), session, nil, http.StatusOK, nil)
}

// FindNotes returns the notes containing text. The query is sent untrimmed.
func (c *Client) FindNotes(ctx context.Context, session *Session, text string) ([]NoteView, error) {
	if err := active(session); err != nil {
		return nil, err
	}
	v, err := validation.Validate(
		validation.Required(validation.UserID, session.UserID),
		validation.Query(validation.Text, text),
	)
	if err != nil {
		return nil, err
	}

	path := userPath(v[0], "notes") + "?" + url.Values{"q": {v[1]}}.Encode()

	views := []NoteView{}
	if err = c.do(ctx, http.MethodGet, path, session, nil, http.StatusOK, &views); err != nil {
		return nil, err
	}
	return views, nil
}

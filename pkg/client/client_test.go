package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kotche/notes/internal/app/api"
	"github.com/kotche/notes/internal/auth"
	"github.com/kotche/notes/internal/repository/migrations"
	repo "github.com/kotche/notes/internal/repository/notes"
	"github.com/kotche/notes/internal/service/notes"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	db, err := repo.OpenDB(context.Background(), migrations.DialectSQLite, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := notes.NewDefaultService(
		repo.NewDefaultRepository(db, migrations.DialectSQLite),
		auth.NewBcryptHasher(bcrypt.MinCost),
		nil,
		logger,
	)
	srv := httptest.NewServer(api.New(svc, auth.NewTokenManager("test-secret", time.Hour), logger).Router())
	t.Cleanup(srv.Close)

	return New(srv.URL+"/api/", WithHTTPClient(srv.Client()))
}

func TestClientUserFlow(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	require.NoError(t, c.RegisterUser(ctx, " John ", "Doe", "jd@mail.com", "123"))

	err := c.RegisterUser(ctx, "Jane", "Roe", "jd@mail.com", "456")
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusConflict, apiErr.Status)
	assert.Equal(t, "user with email jd@mail.com already exists", apiErr.Message)

	_, err = c.Login(ctx, "jd@mail.com", "bad")
	assert.EqualError(t, err, "wrong credentials")

	session, err := c.Login(ctx, "jd@mail.com", "123")
	require.NoError(t, err)
	require.NotEmpty(t, session.UserID)

	profile, err := c.RetrieveUser(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, &Profile{Name: "John", Surname: "Doe", Email: "jd@mail.com"}, profile)

	require.NoError(t, c.UpdateUser(ctx, session, "John", "Smith", "jd@mail.com", "123", "", ""))
	profile, err = c.RetrieveUser(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, "Smith", profile.Surname)

	require.NoError(t, c.UnregisterUser(ctx, session, "jd@mail.com", "123"))
	assert.Empty(t, session.Token)

	_, err = c.RetrieveUser(ctx, session)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestClientNotes(t *testing.T) {
	ctx := context.Background()
	c := newTestClient(t)

	require.NoError(t, c.RegisterUser(ctx, "John", "Doe", "jd@mail.com", "123"))
	session, err := c.Login(ctx, "jd@mail.com", "123")
	require.NoError(t, err)

	list, err := c.ListNotes(ctx, session)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	first, err := c.AddNote(ctx, session, "buy milk")
	require.NoError(t, err)
	second, err := c.AddNote(ctx, session, "call mom & dad")
	require.NoError(t, err)

	view, err := c.RetrieveNote(ctx, session, first)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", view.Text)

	found, err := c.FindNotes(ctx, session, "mom & dad")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, second, found[0].ID)

	require.NoError(t, c.UpdateNote(ctx, session, first, "buy oat milk"))
	require.NoError(t, c.RemoveNote(ctx, session, second))

	list, err = c.ListNotes(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, []NoteView{{ID: first, Text: "buy oat milk"}}, list)

	err = c.RemoveNote(ctx, session, second)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestClientValidatesLocally(t *testing.T) {
	ctx := context.Background()
	c := New("http://127.0.0.1:0/api")
	session := &Session{UserID: "u1", Token: "t"}

	assert.EqualError(t, c.RegisterUser(ctx, "John", "  ", "jd@mail.com", "123"), "user surname is empty or blank")

	_, err := c.Login(ctx, "", "123")
	assert.EqualError(t, err, "user email is empty or blank")

	_, err = c.AddNote(ctx, session, "\t")
	assert.EqualError(t, err, "text is empty or blank")

	_, err = c.FindNotes(ctx, session, "")
	assert.EqualError(t, err, "text is empty")

	_, err = c.RetrieveNote(ctx, &Session{Token: "t"}, "n1")
	assert.EqualError(t, err, "user id is empty or blank")

	_, err = c.ListNotes(ctx, nil)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	c.Logout(session)
	assert.Equal(t, Session{}, *session)
}

package api

import (
	"bytes"
	"context"
	"encoding/json"
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

	"github.com/kotche/notes/internal/auth"
	"github.com/kotche/notes/internal/repository/migrations"
	repo "github.com/kotche/notes/internal/repository/notes"
	"github.com/kotche/notes/internal/service/notes"
)

type response struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  string          `json:"error"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := repo.OpenDB(context.Background(), migrations.DialectSQLite, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := notes.NewDefaultService(
		repo.NewDefaultRepository(db, migrations.DialectSQLite),
		auth.NewBcryptHasher(bcrypt.MinCost),
		nil,
		logger,
	)

	srv := httptest.NewServer(New(svc, auth.NewTokenManager("test-secret", time.Hour), logger).Router())
	t.Cleanup(srv.Close)
	return srv
}

func call(t *testing.T, srv *httptest.Server, method, path, token string, payload any) (int, response) {
	t.Helper()

	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reqBody)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

// login registers John Doe and returns the user id and a bearer token.
func login(t *testing.T, srv *httptest.Server) (string, string) {
	t.Helper()

	status, _ := call(t, srv, http.MethodPost, "/api/users", "", map[string]any{
		"name": "John", "surname": "Doe", "email": "jd@mail.com", "password": "123",
	})
	require.Equal(t, http.StatusCreated, status)

	status, out := call(t, srv, http.MethodPost, "/api/auth", "", map[string]any{
		"email": "jd@mail.com", "password": "123",
	})
	require.Equal(t, http.StatusOK, status)

	var tok tokenResponse
	require.NoError(t, json.Unmarshal(out.Data, &tok))
	require.NotEmpty(t, tok.ID)
	require.NotEmpty(t, tok.Token)
	return tok.ID, tok.Token
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, out := call(t, srv, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "OK", out.Status)
}

func TestUsersAPI(t *testing.T) {
	srv := newTestServer(t)
	id, token := login(t, srv)

	t.Run("register validates in order", func(t *testing.T) {
		status, out := call(t, srv, http.MethodPost, "/api/users", "", map[string]any{
			"name": 42, "surname": " ",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "user name is not a string", out.Error)

		status, out = call(t, srv, http.MethodPost, "/api/users", "", map[string]any{
			"name": "Jane", "surname": " ", "email": "x", "password": "y",
		})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "user surname is empty or blank", out.Error)
	})

	t.Run("duplicate email", func(t *testing.T) {
		status, out := call(t, srv, http.MethodPost, "/api/users", "", map[string]any{
			"name": "Jane", "surname": "Roe", "email": "jd@mail.com", "password": "456",
		})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "user with email jd@mail.com already exists", out.Error)
	})

	t.Run("wrong credentials", func(t *testing.T) {
		status, out := call(t, srv, http.MethodPost, "/api/auth", "", map[string]any{
			"email": "jd@mail.com", "password": "nope",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "wrong credentials", out.Error)
	})

	t.Run("retrieve", func(t *testing.T) {
		status, out := call(t, srv, http.MethodGet, "/api/users/"+id, token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"name":"John","surname":"Doe","email":"jd@mail.com"}`, string(out.Data))
	})

	t.Run("token checks", func(t *testing.T) {
		status, out := call(t, srv, http.MethodGet, "/api/users/"+id, "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, auth.ErrMissingToken.Error(), out.Error)

		status, _ = call(t, srv, http.MethodGet, "/api/users/"+id, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, status)

		status, _ = call(t, srv, http.MethodGet, "/api/users/someone-else", token, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("update", func(t *testing.T) {
		status, _ := call(t, srv, http.MethodPatch, "/api/users/"+id, token, map[string]any{
			"name": "Johnny", "surname": "Doe", "email": "jd@mail.com", "password": "123",
			"newEmail": "johnny@mail.com", "newPassword": "456",
		})
		require.Equal(t, http.StatusOK, status)

		status, out := call(t, srv, http.MethodPost, "/api/auth", "", map[string]any{
			"email": "johnny@mail.com", "password": "456",
		})
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(out.Data), id)
	})

	t.Run("unregister", func(t *testing.T) {
		status, out := call(t, srv, http.MethodDelete, "/api/users/"+id, token, map[string]any{
			"email": "johnny@mail.com", "password": "wrong",
		})
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, "wrong credentials", out.Error)

		status, _ = call(t, srv, http.MethodDelete, "/api/users/"+id, token, map[string]any{
			"email": "johnny@mail.com", "password": "456",
		})
		require.Equal(t, http.StatusOK, status)

		status, out = call(t, srv, http.MethodGet, "/api/users/"+id, token, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "no user found with id "+id, out.Error)
	})
}

func TestNotesAPI(t *testing.T) {
	srv := newTestServer(t)
	id, token := login(t, srv)
	base := "/api/users/" + id + "/notes"

	var ids []string
	for _, text := range []string{"hello world", "Hello there", "bye"} {
		status, out := call(t, srv, http.MethodPost, base, token, map[string]any{"text": text})
		require.Equal(t, http.StatusCreated, status)

		var created idResponse
		require.NoError(t, json.Unmarshal(out.Data, &created))
		ids = append(ids, created.ID)
	}

	t.Run("list", func(t *testing.T) {
		status, out := call(t, srv, http.MethodGet, base, token, nil)
		require.Equal(t, http.StatusOK, status)

		var views []map[string]string
		require.NoError(t, json.Unmarshal(out.Data, &views))
		require.Len(t, views, 3)
		assert.Equal(t, ids[0], views[0]["id"])
		assert.Equal(t, "bye", views[2]["text"])
	})

	t.Run("find", func(t *testing.T) {
		status, out := call(t, srv, http.MethodGet, base+"?q=hello", token, nil)
		require.Equal(t, http.StatusOK, status)

		var views []map[string]string
		require.NoError(t, json.Unmarshal(out.Data, &views))
		require.Len(t, views, 1)
		assert.Equal(t, "hello world", views[0]["text"])

		status, out = call(t, srv, http.MethodGet, base+"?q=", token, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "text is empty", out.Error)

		status, out = call(t, srv, http.MethodGet, base+"?q=zzz", token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `[]`, string(out.Data))
	})

	t.Run("retrieve and update", func(t *testing.T) {
		status, _ := call(t, srv, http.MethodPatch, base+"/"+ids[2], token, map[string]any{"text": "  see you  "})
		require.Equal(t, http.StatusOK, status)

		status, out := call(t, srv, http.MethodGet, base+"/"+ids[2], token, nil)
		require.Equal(t, http.StatusOK, status)
		assert.JSONEq(t, `{"id":"`+ids[2]+`","text":"see you"}`, string(out.Data))

		status, out = call(t, srv, http.MethodPatch, base+"/"+ids[2], token, map[string]any{"text": nil})
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "text is not a string", out.Error)
	})

	t.Run("remove", func(t *testing.T) {
		status, _ := call(t, srv, http.MethodDelete, base+"/"+ids[0], token, nil)
		require.Equal(t, http.StatusOK, status)

		status, out := call(t, srv, http.MethodGet, base+"/"+ids[0], token, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, "no note found with id "+ids[0], out.Error)
	})
}

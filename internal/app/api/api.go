// Package api exposes the notes service over a JSON REST API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kotche/notes/internal/auth"
	"github.com/kotche/notes/internal/service/notes"
)

type Handler struct {
	notes  notes.Service
	tokens *auth.TokenManager
	logger *slog.Logger
}

func New(notes notes.Service, tokens *auth.TokenManager, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		notes:  notes,
		tokens: tokens,
		logger: logger,
	}
}

// Router returns the routes of the API.
func (h *Handler) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(h.observe)

	router.HandleFunc("/healthz", h.handleHealth).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/users", h.handleRegisterUser).Methods(http.MethodPost)
	api.HandleFunc("/auth", h.handleAuthenticateUser).Methods(http.MethodPost)

	owned := func(f http.HandlerFunc) http.Handler { return h.requireOwner(f) }
	api.Handle("/users/{id}", owned(h.handleRetrieveUser)).Methods(http.MethodGet)
	api.Handle("/users/{id}", owned(h.handleUpdateUser)).Methods(http.MethodPatch)
	api.Handle("/users/{id}", owned(h.handleUnregisterUser)).Methods(http.MethodDelete)
	api.Handle("/users/{id}/notes", owned(h.handleAddNote)).Methods(http.MethodPost)
	api.Handle("/users/{id}/notes", owned(h.handleListNotes)).Methods(http.MethodGet)
	api.Handle("/users/{id}/notes/{noteId}", owned(h.handleRetrieveNote)).Methods(http.MethodGet)
	api.Handle("/users/{id}/notes/{noteId}", owned(h.handleUpdateNote)).Methods(http.MethodPatch)
	api.Handle("/users/{id}/notes/{noteId}", owned(h.handleRemoveNote)).Methods(http.MethodDelete)

	return router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondOK(w, http.StatusOK, nil)
}

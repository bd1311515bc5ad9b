package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/kotche/notes/internal/validation"
)

const (
	statusOK          = "OK"
	maxBodyBytes      = 1 << 20
	internalErrorText = "internal server error"
)

type envelope struct {
	Status string `json:"status,omitempty"`
	Data   any    `json:"data,omitempty"`
	Error  string `json:"error,omitempty"`
}

type tokenResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
}

type idResponse struct {
	ID string `json:"id"`
}

func respondJSON(w http.ResponseWriter, status int, payload envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondOK(w http.ResponseWriter, status int, data any) {
	respondJSON(w, status, envelope{Status: statusOK, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, envelope{Error: message})
}

// fail writes the error returned by the service. Unclassified failures are
// logged and hidden behind a generic message.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		respondError(w, status, internalErrorText)
		return
	}
	respondError(w, status, err.Error())
}

// body is a decoded JSON object. Values keep their JSON types so the argument
// policy can report non-string values.
type body map[string]any

func decodeBody(r *http.Request) (body, error) {
	b := body{}
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&b)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, &validation.ArgumentError{Message: "invalid request payload"}
	}
	return b, nil
}

// optional returns a string field, treating anything else as absent.
func (b body) optional(key string) string {
	s, _ := b[key].(string)
	return s
}

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/kotche/notes/infrastructure/metrics"
	"github.com/kotche/notes/internal/auth"
	"github.com/kotche/notes/internal/model"
)

type contextKey string

const userIDKey contextKey = "user_id"

// UserID returns the token subject stored by requireOwner.
func UserID(ctx context.Context) model.UserID {
	userID, _ := ctx.Value(userIDKey).(model.UserID)
	return userID
}

// requireOwner validates the bearer token and requires its subject to be the
// user addressed by the path.
func (h *Handler) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, http.StatusUnauthorized, auth.ErrMissingToken.Error())
			return
		}

		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			respondError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		subject, err := h.tokens.Validate(parts[1])
		if err != nil {
			h.logger.Debug("token rejected", "error", err)
			respondError(w, http.StatusUnauthorized, auth.ErrInvalidToken.Error())
			return
		}

		if id := mux.Vars(r)["id"]; strings.TrimSpace(id) != string(subject) {
			respondError(w, http.StatusForbidden, "token does not belong to user with id "+id)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, subject)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// observe records request metrics by route template and logs the outcome.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.URL.Path
		if current := mux.CurrentRoute(r); current != nil {
			if tpl, err := current.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		elapsed := time.Since(start)
		metrics.RequestsCounter.WithLabelValues(route, r.Method, strconv.Itoa(rec.status)).Inc()
		metrics.ResponseTimeHistogram.WithLabelValues(route).Observe(elapsed.Seconds())

		level := h.logger.Info
		if rec.status >= http.StatusInternalServerError {
			level = h.logger.Error
		} else if rec.status >= http.StatusBadRequest {
			level = h.logger.Warn
		}
		level("request served",
			"method", r.Method,
			"route", route,
			"code", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

// statusFor maps an error kind onto an HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, model.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

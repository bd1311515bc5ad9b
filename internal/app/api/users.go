package api

import (
	"net/http"

	"github.com/kotche/notes/internal/validation"
)

func (h *Handler) handleRegisterUser(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v, err := validation.Validate(
		validation.Required(validation.UserName, b["name"]),
		validation.Required(validation.UserSurname, b["surname"]),
		validation.Required(validation.UserEmail, b["email"]),
		validation.Required(validation.UserPassword, b["password"]),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err = h.notes.RegisterUser(r.Context(), v[0], v[1], v[2], v[3]); err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusCreated, nil)
}

func (h *Handler) handleAuthenticateUser(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v, err := validation.Validate(
		validation.Required(validation.UserEmail, b["email"]),
		validation.Required(validation.UserPassword, b["password"]),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	userID, err := h.notes.AuthenticateUser(r.Context(), v[0], v[1])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	token, err := h.tokens.Generate(userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusOK, tokenResponse{ID: string(userID), Token: token})
}

func (h *Handler) handleRetrieveUser(w http.ResponseWriter, r *http.Request) {
	profile, err := h.notes.RetrieveUser(r.Context(), UserID(r.Context()))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusOK, profile)
}

func (h *Handler) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v, err := validation.Validate(
		validation.Required(validation.UserName, b["name"]),
		validation.Required(validation.UserSurname, b["surname"]),
		validation.Required(validation.UserEmail, b["email"]),
		validation.Required(validation.UserPassword, b["password"]),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	_, err = h.notes.UpdateUser(r.Context(), UserID(r.Context()),
		v[0], v[1], v[2], v[3],
		b.optional("newEmail"), b.optional("newPassword"),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusOK, nil)
}

func (h *Handler) handleUnregisterUser(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v, err := validation.Validate(
		validation.Required(validation.UserEmail, b["email"]),
		validation.Required(validation.UserPassword, b["password"]),
	)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err = h.notes.UnregisterUser(r.Context(), UserID(r.Context()), v[0], v[1]); err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusOK, nil)
}

package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kotche/notes/internal/model"
	"github.com/kotche/notes/internal/validation"
)

func noteID(r *http.Request) model.NoteID {
	return model.NoteID(mux.Vars(r)["noteId"])
}

func (h *Handler) handleAddNote(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v, err := validation.Validate(validation.Required(validation.Text, b["text"]))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	id, err := h.notes.AddNote(r.Context(), UserID(r.Context()), v[0])
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusCreated, idResponse{ID: string(id)})
}

// handleListNotes lists every note of the user, or searches them when the q
// parameter is present.
func (h *Handler) handleListNotes(w http.ResponseWriter, r *http.Request) {
	var (
		views []model.NoteView
		err   error
	)

	query := r.URL.Query()
	if query.Has("q") {
		views, err = h.notes.FindNotes(r.Context(), UserID(r.Context()), query.Get("q"))
	} else {
		views, err = h.notes.ListNotes(r.Context(), UserID(r.Context()))
	}
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusOK, views)
}

func (h *Handler) handleRetrieveNote(w http.ResponseWriter, r *http.Request) {
	view, err := h.notes.RetrieveNote(r.Context(), UserID(r.Context()), noteID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusOK, view)
}

func (h *Handler) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	b, err := decodeBody(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	v, err := validation.Validate(validation.Required(validation.Text, b["text"]))
	if err != nil {
		h.fail(w, r, err)
		return
	}

	if _, err = h.notes.UpdateNote(r.Context(), UserID(r.Context()), noteID(r), v[0]); err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusOK, nil)
}

func (h *Handler) handleRemoveNote(w http.ResponseWriter, r *http.Request) {
	if _, err := h.notes.RemoveNote(r.Context(), UserID(r.Context()), noteID(r)); err != nil {
		h.fail(w, r, err)
		return
	}

	respondOK(w, http.StatusOK, nil)
}

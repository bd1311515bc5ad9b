package notes

import (
	"context"

	"github.com/kotche/notes/internal/model"
)

type (
	// Service is the domain logic consumed by the transports. Every method
	// validates its string arguments in declared order before touching the store.
	Service interface {
		RegisterUser(ctx context.Context, name, surname, email, password string) (bool, error)
		AuthenticateUser(ctx context.Context, email, password string) (model.UserID, error)
		RetrieveUser(ctx context.Context, userID model.UserID) (*model.Profile, error)
		UpdateUser(ctx context.Context, userID model.UserID, name, surname, email, password, newEmail, newPassword string) (bool, error)
		UnregisterUser(ctx context.Context, userID model.UserID, email, password string) (bool, error)

		AddNote(ctx context.Context, userID model.UserID, text string) (model.NoteID, error)
		RetrieveNote(ctx context.Context, userID model.UserID, noteID model.NoteID) (*model.NoteView, error)
		ListNotes(ctx context.Context, userID model.UserID) ([]model.NoteView, error)
		UpdateNote(ctx context.Context, userID model.UserID, noteID model.NoteID, text string) (bool, error)
		RemoveNote(ctx context.Context, userID model.UserID, noteID model.NoteID) (bool, error)
		FindNotes(ctx context.Context, userID model.UserID, text string) ([]model.NoteView, error)
	}
)

package notes

import (
	"context"

	"github.com/kotche/notes/internal/model"
)

type (
	// Repository persists users together with the notes they own. Notes are
	// always addressed through their owner.
	Repository interface {
		FindUserByEmail(ctx context.Context, email string) (*model.User, error)
		FindUserByID(ctx context.Context, userID model.UserID) (*model.User, error)
		CreateUser(ctx context.Context, user model.User) (model.UserID, error)
		SaveUser(ctx context.Context, user model.User) error
		DeleteUser(ctx context.Context, userID model.UserID) error

		AppendNote(ctx context.Context, userID model.UserID, text string) (model.NoteID, error)
		FindNote(ctx context.Context, userID model.UserID, noteID model.NoteID) (*model.Note, error)
		SaveNote(ctx context.Context, note model.Note) error
		RemoveNote(ctx context.Context, userID model.UserID, noteID model.NoteID) error
		ListNotes(ctx context.Context, userID model.UserID) ([]model.Note, error)
	}
)

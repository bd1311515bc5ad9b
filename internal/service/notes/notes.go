package notes

import (
	"context"
	"errors"
	"strings"

	"github.com/kotche/notes/internal/model"
	"github.com/kotche/notes/internal/service/events"
	"github.com/kotche/notes/internal/validation"
)

func (d *DefaultService) AddNote(ctx context.Context, userID model.UserID, text string) (noteID model.NoteID, err error) {
	ctx, done := d.start(ctx, "AddNote")
	defer func() { done(err) }()

	v, err := validation.Validate(
		validation.Required(validation.UserID, userID),
		validation.Required(validation.Text, text),
	)
	if err != nil {
		return "", err
	}
	userID, text = model.UserID(v[0]), v[1]

	if _, err = d.owner(ctx, userID); err != nil {
		return "", err
	}

	noteID, err = d.repo.AppendNote(ctx, userID, text)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", errNoUser(userID)
		}
		return "", err
	}

	d.logger.Info("note added", "user_id", userID, "note_id", noteID)
	d.publish(ctx, events.Event{Type: events.NoteAdded, UserID: userID, NoteID: noteID})

	return noteID, nil
}

func (d *DefaultService) RetrieveNote(ctx context.Context, userID model.UserID, noteID model.NoteID) (view *model.NoteView, err error) {
	ctx, done := d.start(ctx, "RetrieveNote")
	defer func() { done(err) }()

	v, err := validation.Validate(
		validation.Required(validation.UserID, userID),
		validation.Required(validation.NoteID, noteID),
	)
	if err != nil {
		return nil, err
	}
	userID, noteID = model.UserID(v[0]), model.NoteID(v[1])

	note, err := d.note(ctx, userID, noteID)
	if err != nil {
		return nil, err
	}

	nv := note.View()
	return &nv, nil
}

func (d *DefaultService) ListNotes(ctx context.Context, userID model.UserID) (views []model.NoteView, err error) {
	ctx, done := d.start(ctx, "ListNotes")
	defer func() { done(err) }()

	v, err := validation.Validate(validation.Required(validation.UserID, userID))
	if err != nil {
		return nil, err
	}
	userID = model.UserID(v[0])

	notesList, err := d.ownedNotes(ctx, userID)
	if err != nil {
		return nil, err
	}

	return model.Views(notesList), nil
}

func (d *DefaultService) UpdateNote(ctx context.Context, userID model.UserID, noteID model.NoteID, text string) (ok bool, err error) {
	ctx, done := d.start(ctx, "UpdateNote")
	defer func() { done(err) }()

	v, err := validation.Validate(
		validation.Required(validation.UserID, userID),
		validation.Required(validation.NoteID, noteID),
		validation.Required(validation.Text, text),
	)
	if err != nil {
		return false, err
	}
	userID, noteID, text = model.UserID(v[0]), model.NoteID(v[1]), v[2]

	note, err := d.note(ctx, userID, noteID)
	if err != nil {
		return false, err
	}

	note.Text = text
	if err = d.repo.SaveNote(ctx, *note); err != nil {
		if errors.Is(err, model.ErrNoteNotFound) {
			return false, errNoNote(noteID)
		}
		return false, err
	}

	d.logger.Info("note updated", "user_id", userID, "note_id", noteID)
	d.publish(ctx, events.Event{Type: events.NoteUpdated, UserID: userID, NoteID: noteID})

	return true, nil
}

func (d *DefaultService) RemoveNote(ctx context.Context, userID model.UserID, noteID model.NoteID) (ok bool, err error) {
	ctx, done := d.start(ctx, "RemoveNote")
	defer func() { done(err) }()

	v, err := validation.Validate(
		validation.Required(validation.UserID, userID),
		validation.Required(validation.NoteID, noteID),
	)
	if err != nil {
		return false, err
	}
	userID, noteID = model.UserID(v[0]), model.NoteID(v[1])

	if _, err = d.owner(ctx, userID); err != nil {
		return false, err
	}

	if err = d.repo.RemoveNote(ctx, userID, noteID); err != nil {
		if errors.Is(err, model.ErrNoteNotFound) {
			return false, errNoNote(noteID)
		}
		return false, err
	}

	d.logger.Info("note removed", "user_id", userID, "note_id", noteID)
	d.publish(ctx, events.Event{Type: events.NoteRemoved, UserID: userID, NoteID: noteID})

	return true, nil
}

// FindNotes returns the notes whose text contains the query, case-sensitively.
// The query is matched as given, without trimming.
func (d *DefaultService) FindNotes(ctx context.Context, userID model.UserID, text string) (views []model.NoteView, err error) {
	ctx, done := d.start(ctx, "FindNotes")
	defer func() { done(err) }()

	v, err := validation.Validate(
		validation.Required(validation.UserID, userID),
		validation.Query(validation.Text, text),
	)
	if err != nil {
		return nil, err
	}
	userID, text = model.UserID(v[0]), v[1]

	notesList, err := d.ownedNotes(ctx, userID)
	if err != nil {
		return nil, err
	}

	views = make([]model.NoteView, 0)
	for _, note := range notesList {
		if strings.Contains(note.Text, text) {
			views = append(views, note.View())
		}
	}

	return views, nil
}

func (d *DefaultService) note(ctx context.Context, userID model.UserID, noteID model.NoteID) (*model.Note, error) {
	if _, err := d.owner(ctx, userID); err != nil {
		return nil, err
	}

	note, err := d.repo.FindNote(ctx, userID, noteID)
	if err != nil {
		if errors.Is(err, model.ErrNoteNotFound) {
			return nil, errNoNote(noteID)
		}
		return nil, err
	}
	return note, nil
}

func (d *DefaultService) ownedNotes(ctx context.Context, userID model.UserID) ([]model.Note, error) {
	if _, err := d.owner(ctx, userID); err != nil {
		return nil, err
	}
	return d.repo.ListNotes(ctx, userID)
}

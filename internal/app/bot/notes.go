package bot

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/telebot.v3"

	"github.com/kotche/notes/internal/model"
)

func (b *Bot) handleNew(c telebot.Context) error {
	userID, ok := b.session(c)
	if !ok {
		return c.Send(loginFirstMessage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	noteID, err := b.notes.AddNote(ctx, userID, payload(c))
	if err != nil {
		return b.fail(ctx, c, "save note", err)
	}

	return c.Send(fmt.Sprintf("Note saved, id: %s", noteID))
}

func (b *Bot) handleGet(c telebot.Context) error {
	userID, ok := b.session(c)
	if !ok {
		return c.Send(loginFirstMessage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	view, err := b.notes.RetrieveNote(ctx, userID, model.NoteID(payload(c)))
	if err != nil {
		return b.fail(ctx, c, "get note", err)
	}

	return c.Send(fmt.Sprintf("%s (id %s)", view.Text, view.ID))
}

func (b *Bot) handleList(c telebot.Context) error {
	userID, ok := b.session(c)
	if !ok {
		return c.Send(loginFirstMessage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	views, err := b.notes.ListNotes(ctx, userID)
	if err != nil {
		return b.fail(ctx, c, "list notes", err)
	}

	return c.Send(formatNotes("Your notes:", views))
}

func (b *Bot) handleFind(c telebot.Context) error {
	userID, ok := b.session(c)
	if !ok {
		return c.Send(loginFirstMessage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	views, err := b.notes.FindNotes(ctx, userID, payload(c))
	if err != nil {
		return b.fail(ctx, c, "find notes", err)
	}

	return c.Send(formatNotes("Found notes:", views))
}

func (b *Bot) handleEdit(c telebot.Context) error {
	userID, ok := b.session(c)
	if !ok {
		return c.Send(loginFirstMessage)
	}

	noteID, text := splitFirst(payload(c))

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	if _, err := b.notes.UpdateNote(ctx, userID, model.NoteID(noteID), text); err != nil {
		return b.fail(ctx, c, "update note", err)
	}

	return c.Send("Note updated")
}

// handleDelete asks for confirmation before removing the note.
func (b *Bot) handleDelete(c telebot.Context) error {
	if _, ok := b.session(c); !ok {
		return c.Send(loginFirstMessage)
	}

	noteID := payload(c)
	if noteID == "" {
		return c.Send("Usage: /delete {id}")
	}

	yes, no := deleteYes, deleteNo
	yes.Data, no.Data = noteID, noteID

	markup := &telebot.ReplyMarkup{}
	markup.InlineKeyboard = [][]telebot.InlineButton{{yes, no}}
	return c.Send(fmt.Sprintf("Delete note %s?", noteID), markup)
}

func (b *Bot) handleDeleteConfirmed(c telebot.Context) error {
	userID, ok := b.session(c)
	if !ok {
		return c.Send(loginFirstMessage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	if _, err := b.notes.RemoveNote(ctx, userID, model.NoteID(c.Data())); err != nil {
		return b.fail(ctx, c, "delete note", err)
	}

	return c.Send("Note deleted")
}

func (b *Bot) handleDeleteCancelled(c telebot.Context) error {
	return c.Send("Nothing deleted")
}

func formatNotes(title string, views []model.NoteView) string {
	if len(views) == 0 {
		return "No notes"
	}

	var response strings.Builder
	response.WriteString(title + "\n")
	for i, view := range views {
		response.WriteString(fmt.Sprintf("%d. %s (id %s)\n", i+1, view.Text, view.ID))
	}
	return response.String()
}

// Package bot is a Telegram front-end for the notes service.
package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gopkg.in/telebot.v3"

	"github.com/kotche/notes/internal/model"
	"github.com/kotche/notes/internal/service/notes"
)

const (
	longProcessTimeout = 2 * time.Second

	helpMessage = "Available commands:\n" +
		"/register {name} {surname} {email} {password} - create an account\n" +
		"/login {email} {password} - log in from this chat\n" +
		"/logout - log out\n" +
		"/me - show your profile\n" +
		"/unregister {email} {password} - delete your account\n" +
		"/new {text} - add a note\n" +
		"/get {id} - show a note\n" +
		"/list - list your notes\n" +
		"/edit {id} {text} - change a note\n" +
		"/delete {id} - delete a note\n" +
		"/find {text} - search your notes\n" +
		"/help - show this message"

	loginFirstMessage = "Please /login first"
)

var (
	deleteYes = telebot.InlineButton{Unique: "delete_yes", Text: "Yes"}
	deleteNo  = telebot.InlineButton{Unique: "delete_no", Text: "No"}
)

type Bot struct {
	bot      *telebot.Bot
	notes    notes.Service
	sessions *SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

func New(bot *telebot.Bot, notes notes.Service, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		bot:      bot,
		notes:    notes,
		sessions: NewSessionStore(),
		logger:   logger,
		now:      time.Now,
	}
}

// Start registers the handlers and polls for updates until Stop is called.
func (b *Bot) Start() {
	b.bot.Handle("/start", b.handleHelp)
	b.bot.Handle("/help", b.handleHelp)
	b.bot.Handle("/register", b.handleRegister)
	b.bot.Handle("/login", b.handleLogin)
	b.bot.Handle("/logout", b.handleLogout)
	b.bot.Handle("/me", b.handleMe)
	b.bot.Handle("/unregister", b.handleUnregister)
	b.bot.Handle("/new", b.handleNew)
	b.bot.Handle("/get", b.handleGet)
	b.bot.Handle("/list", b.handleList)
	b.bot.Handle("/edit", b.handleEdit)
	b.bot.Handle("/delete", b.handleDelete)
	b.bot.Handle(&deleteYes, b.handleDeleteConfirmed)
	b.bot.Handle(&deleteNo, b.handleDeleteCancelled)
	b.bot.Handle("/find", b.handleFind)

	b.logger.Info("bot started")
	b.bot.Start()
}

func (b *Bot) Stop() {
	b.bot.Stop()
}

func (b *Bot) handleHelp(c telebot.Context) error {
	return c.Send(helpMessage)
}

// session returns the user logged in from the chat.
func (b *Bot) session(c telebot.Context) (model.UserID, bool) {
	session, ok := b.sessions.Get(c.Chat().ID)
	return session.UserID, ok
}

// fail replies with a message for err. Domain failures are shown as they are;
// anything else is logged and reported generically.
func (b *Bot) fail(ctx context.Context, c telebot.Context, action string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		b.logger.Warn("context deadline exceeded", "action", action, "chat_id", c.Chat().ID, "error", err)
		return c.Send(fmt.Sprintf("Operation '%s' took too long. Please try later.", action))
	case isDomainError(err):
		return c.Send(err.Error())
	default:
		b.logger.Error("command failed", "action", action, "chat_id", c.Chat().ID, "error", err)
		return c.Send(fmt.Sprintf("Failed to %s. Please try later.", action))
	}
}

func isDomainError(err error) bool {
	for _, kind := range []error{model.ErrInvalidArgument, model.ErrNotFound, model.ErrConflict, model.ErrUnauthorized} {
		if errors.Is(err, kind) {
			return true
		}
	}
	return false
}

func payload(c telebot.Context) string {
	if msg := c.Message(); msg != nil {
		return strings.TrimSpace(msg.Payload)
	}
	return ""
}

// splitFirst splits "id rest of text" into the id and the remaining text.
func splitFirst(s string) (string, string) {
	s = strings.TrimSpace(s)
	head, tail, _ := strings.Cut(s, " ")
	return head, strings.TrimSpace(tail)
}

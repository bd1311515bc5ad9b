package bot

import (
	"context"
	"fmt"

	"gopkg.in/telebot.v3"
)

func (b *Bot) handleRegister(c telebot.Context) error {
	args := c.Args()
	if len(args) != 4 {
		return c.Send("Usage: /register {name} {surname} {email} {password}")
	}

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	if _, err := b.notes.RegisterUser(ctx, args[0], args[1], args[2], args[3]); err != nil {
		return b.fail(ctx, c, "register", err)
	}

	return c.Send("Account created. Use /login to start writing notes.")
}

func (b *Bot) handleLogin(c telebot.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /login {email} {password}")
	}

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	userID, err := b.notes.AuthenticateUser(ctx, args[0], args[1])
	if err != nil {
		return b.fail(ctx, c, "log in", err)
	}

	b.sessions.Put(c.Chat().ID, Session{UserID: userID, CreatedAt: b.now()})
	b.logger.Info("chat logged in", "chat_id", c.Chat().ID, "user_id", userID)

	return c.Send("Logged in")
}

func (b *Bot) handleLogout(c telebot.Context) error {
	if !b.sessions.Drop(c.Chat().ID) {
		return c.Send("You are not logged in")
	}
	return c.Send("Logged out")
}

func (b *Bot) handleMe(c telebot.Context) error {
	userID, ok := b.session(c)
	if !ok {
		return c.Send(loginFirstMessage)
	}

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	profile, err := b.notes.RetrieveUser(ctx, userID)
	if err != nil {
		return b.fail(ctx, c, "get profile", err)
	}

	return c.Send(fmt.Sprintf("%s %s <%s>", profile.Name, profile.Surname, profile.Email))
}

// handleUnregister deletes the account and logs it out of every chat.
func (b *Bot) handleUnregister(c telebot.Context) error {
	userID, ok := b.session(c)
	if !ok {
		return c.Send(loginFirstMessage)
	}

	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /unregister {email} {password}")
	}

	ctx, cancel := context.WithTimeout(context.Background(), longProcessTimeout)
	defer cancel()

	if _, err := b.notes.UnregisterUser(ctx, userID, args[0], args[1]); err != nil {
		return b.fail(ctx, c, "unregister", err)
	}

	b.sessions.DropUser(userID)
	return c.Send("Account deleted")
}

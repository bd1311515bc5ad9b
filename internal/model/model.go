package model

import "time"

type (
	UserID string
	NoteID string

	User struct {
		ID           UserID
		Name         string
		Surname      string
		Email        string
		PasswordHash string
		CreatedAt    time.Time
		UpdatedAt    time.Time
	}

	Note struct {
		ID        NoteID
		UserID    UserID
		Text      string
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	// Profile is the public projection of a User.
	Profile struct {
		Name    string `json:"name"`
		Surname string `json:"surname"`
		Email   string `json:"email"`
	}

	// NoteView is the public projection of a Note.
	NoteView struct {
		ID   NoteID `json:"id"`
		Text string `json:"text"`
	}
)

func (u User) Profile() Profile {
	return Profile{
		Name:    u.Name,
		Surname: u.Surname,
		Email:   u.Email,
	}
}

func (n Note) View() NoteView {
	return NoteView{ID: n.ID, Text: n.Text}
}

func Views(notes []Note) []NoteView {
	views := make([]NoteView, 0, len(notes))
	for _, note := range notes {
		views = append(views, note.View())
	}
	return views
}

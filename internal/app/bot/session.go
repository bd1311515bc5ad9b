package bot

import (
	"sync"
	"time"

	"github.com/kotche/notes/internal/model"
)

// Session binds a chat to the user that logged in from it.
type Session struct {
	UserID    model.UserID
	CreatedAt time.Time
}

// SessionStore keeps one session per chat.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[int64]Session)}
}

func (s *SessionStore) Get(chatID int64) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[chatID]
	return session, ok
}

func (s *SessionStore) Put(chatID int64, session Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = session
}

// Drop removes the chat session and reports whether one existed.
func (s *SessionStore) Drop(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[chatID]
	delete(s.sessions, chatID)
	return ok
}

// DropUser removes every session of the user, e.g. after unregistering.
func (s *SessionStore) DropUser(userID model.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for chatID, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, chatID)
		}
	}
}

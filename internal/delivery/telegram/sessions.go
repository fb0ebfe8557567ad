package telegram

import (
	"sync"

	"employee-directory/internal/app/service"
	"employee-directory/internal/domain"
)

// Sessions maps a chat to its logged-in user. Handlers run concurrently.
type Sessions struct {
	mu     sync.Mutex
	byChat map[int64]*service.Session
}

func NewSessions() *Sessions {
	return &Sessions{byChat: make(map[int64]*service.Session)}
}

func (s *Sessions) Get(chatID int64) (*service.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byChat[chatID]
	return sess, ok
}

func (s *Sessions) Set(chatID int64, sess *service.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byChat[chatID] = sess
}

// Delete removes and returns the chat's session.
func (s *Sessions) Delete(chatID int64) (*service.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.byChat[chatID]
	delete(s.byChat, chatID)
	return sess, ok
}

// Refresh swaps in a copy carrying e for every chat logged in as e.ID.
func (s *Sessions) Refresh(e domain.Employee) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for chatID, sess := range s.byChat {
		if sess.User.ID == e.ID {
			s.byChat[chatID] = sess.WithUser(e)
			n++
		}
	}
	return n
}

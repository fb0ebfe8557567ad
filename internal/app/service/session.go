package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"employee-directory/internal/domain"

	"github.com/google/uuid"
)

// Session is the authenticated user. User is a snapshot taken at login.
type Session struct {
	ID        string
	User      domain.Employee
	StartedAt time.Time
}

func (s *Session) Role() domain.Role {
	return s.User.Role
}

// WithUser returns a copy of s carrying the refreshed record. Sessions are
// shared across bot goroutines and never changed in place.
func (s *Session) WithUser(e domain.Employee) *Session {
	c := *s
	c.User = e
	return &c
}

type AuthService struct {
	Repo domain.EmployeeRepo
}

func NewAuthService(repo domain.EmployeeRepo) *AuthService {
	return &AuthService{Repo: repo}
}

// Login returns ErrLoginFailed for an unknown id. There is no password.
func (a *AuthService) Login(id int) (*Session, error) {
	e, err := a.Repo.GetEmployeeByID(id)
	if errors.Is(err, domain.ErrNotFound) {
		log.Printf("[auth] login failed id=%d", id)
		return nil, domain.ErrLoginFailed
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user %d: %w", id, err)
	}
	s := &Session{ID: uuid.NewString(), User: e, StartedAt: time.Now()}
	log.Printf("[auth] login ok id=%d role=%s session=%s", e.ID, e.Role, s.ID)
	return s, nil
}

func (a *AuthService) Logout(s *Session) {
	if s == nil {
		return
	}
	log.Printf("[auth] logout id=%d session=%s after=%s", s.User.ID, s.ID, time.Since(s.StartedAt).Round(time.Second))
}

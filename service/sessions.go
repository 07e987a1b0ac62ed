package service

import (
	"sync"

	"go.uber.org/zap"

	"library-client/controller"
)

type session struct {
	users *controller.UserController
	books *controller.BookController
}

// Sessions keeps one pair of view controllers per username, so the view one
// client sees is never overwritten by another client's actions. Requests
// without a username share the anonymous session.
type Sessions struct {
	mu       sync.Mutex
	users    controller.UserBackend
	books    controller.BookBackend
	logger   *zap.Logger
	sessions map[string]*session
}

func NewSessions(users controller.UserBackend, books controller.BookBackend, logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		users:    users,
		books:    books,
		logger:   logger,
		sessions: make(map[string]*session),
	}
}

func (s *Sessions) get(username string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.sessions[username]
	if !ok {
		logger := s.logger.With(zap.String("username", username))
		current = &session{
			users: controller.NewUserController(s.users, logger),
			books: controller.NewBookController(s.books, logger),
		}
		s.sessions[username] = current
	}
	return current
}

func (s *Sessions) Users(username string) *controller.UserController {
	return s.get(username).users
}

func (s *Sessions) Books(username string) *controller.BookController {
	return s.get(username).books
}

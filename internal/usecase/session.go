package usecase

import (
	"sync"

	"github.com/sarensabesk/HireAI/internal/domain"
)

// SessionService holds the single active resume. Uploading replaces the
// previous resume wholesale; deleting clears the slot. Safe for concurrent
// use.
type SessionService struct {
	mu     sync.RWMutex
	resume *domain.Resume
}

func NewSessionService() *SessionService { return &SessionService{} }

// Set stores the resume as the active session, replacing any previous one.
func (s *SessionService) Set(r domain.Resume) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resume = &r
}

// Get returns the active resume, if any.
func (s *SessionService) Get() (domain.Resume, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.resume == nil {
		return domain.Resume{}, false
	}
	return *s.resume, true
}

// Clear removes the active resume and reports whether one was present.
func (s *SessionService) Clear() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.resume != nil
	s.resume = nil
	return had
}

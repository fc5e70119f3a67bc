package bot

import "sync"

// Session is one user's search configuration. In memory only; lost on
// restart.
type Session struct {
	Origin      string
	Destination string
	Date        string
	Window      int
}

// defaultSession seeds /start.
func defaultSession() Session {
	return Session{Origin: "LAX", Destination: "CDG", Date: "2025-10-26", Window: 3}
}

// SessionStore maps Telegram user IDs to their sessions.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[int64]Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[int64]Session{}}
}

func (s *SessionStore) Get(userID int64) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	return sess, ok
}

func (s *SessionStore) Put(userID int64, sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = sess
}

// Delete removes a session and reports whether one existed.
func (s *SessionStore) Delete(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[userID]
	delete(s.sessions, userID)
	return ok
}

// Update applies fn to an existing session. ok is false when the user has
// no session; nothing is created in that case.
func (s *SessionStore) Update(userID int64, fn func(*Session)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[userID]
	if !ok {
		return false
	}
	fn(&sess)
	s.sessions[userID] = sess
	return true
}

package console

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrSessionExpired is returned when a session token is unknown or past
// its TTL.
var ErrSessionExpired = errors.New("console: session expired")

// Session is one authenticated admin session. It owns the per-session
// console state: the article form, the delete flows, and the list
// stores.
type Session struct {
	Token     string
	Username  string
	APIToken  string
	ExpiresAt time.Time

	console *Console
}

// Console returns the session's console state.
func (s *Session) Console() *Console {
	return s.console
}

// SessionManager tracks active admin sessions. Sessions are created by
// Init after a successful upstream login and removed by Clear on
// logout or expiry.
type SessionManager struct {
	mu       sync.Mutex
	ttl      time.Duration
	api      API
	sessions map[string]*Session
}

func NewSessionManager(ttl time.Duration, api API) *SessionManager {
	return &SessionManager{
		ttl:      ttl,
		api:      api,
		sessions: make(map[string]*Session),
	}
}

// Init creates a session for username holding the upstream token.
func (m *SessionManager) Init(username, apiToken string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	session := &Session{
		Token:     uuid.New().String(),
		Username:  username,
		APIToken:  apiToken,
		ExpiresAt: time.Now().Add(m.ttl),
		console:   NewConsole(m.api),
	}
	m.sessions[session.Token] = session
	return session
}

// Get resolves a session token. Expired sessions are removed and their
// console state torn down.
func (m *SessionManager) Get(token string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	session, ok := m.sessions[token]
	if !ok {
		return nil, ErrSessionExpired
	}
	if time.Now().After(session.ExpiresAt) {
		session.console.Close()
		delete(m.sessions, token)
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Clear removes a session and releases its console resources.
func (m *SessionManager) Clear(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if session, ok := m.sessions[token]; ok {
		session.console.Close()
		delete(m.sessions, token)
	}
}

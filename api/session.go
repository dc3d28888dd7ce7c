package api

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/streamvm/streamvm/config"
	"github.com/streamvm/streamvm/service"
)

// Session pairs a service.Service with the bookkeeping the API needs:
// an ID and a creation timestamp.
type Session struct {
	ID        string
	Service   *service.Service
	CreatedAt time.Time
}

// SessionManager owns every live Session, grounded on the teacher's
// api.SessionManager.
type SessionManager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	broadcaster *Broadcaster
	cfg         *config.Config
	maxSessions int
}

func NewSessionManager(broadcaster *Broadcaster, cfg *config.Config) *SessionManager {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &SessionManager{
		sessions:    make(map[string]*Session),
		broadcaster: broadcaster,
		cfg:         cfg,
		maxSessions: cfg.API.MaxSessions,
	}
}

func (m *SessionManager) CreateSession() (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, fmt.Errorf("session limit reached (%d)", m.maxSessions)
	}

	id, err := randomID()
	if err != nil {
		return nil, err
	}

	svc := service.New(m.cfg)
	svc.OnOutputLine(func(line string) {
		m.broadcaster.Publish(OutputEvent{SessionID: id, Line: line})
	})

	sess := &Session{ID: id, Service: svc, CreatedAt: time.Now()}
	m.sessions[id] = sess
	return sess, nil
}

func (m *SessionManager) GetSession(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %q not found", id)
	}
	return sess, nil
}

func (m *SessionManager) DestroySession(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return fmt.Errorf("session %q not found", id)
	}
	delete(m.sessions, id)
	return nil
}

func (m *SessionManager) ListSessions() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.sessions))
	for id := range m.sessions {
		ids = append(ids, id)
	}
	return ids
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func randomID() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

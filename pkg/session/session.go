// Package session provides conversation state for the Coding-Buddy agents.
//
// A session is keyed by (app name, user id, session id) and holds the
// ordered message history of one logical chat. Sessions are created lazily
// on first reference and live for the lifetime of the process; there is no
// eviction today, which is why the store hides behind the Service interface
// so a TTL policy can be added without touching callers.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/RoboJunior/Coding-Buddy/pkg/llm"
)

// ErrSessionNotFound is returned when a session doesn't exist.
var ErrSessionNotFound = errors.New("session not found")

// Key uniquely identifies one conversation.
type Key struct {
	AppName   string
	UserID    string
	SessionID string
}

func (k Key) String() string {
	return k.AppName + ":" + k.UserID + ":" + k.SessionID
}

// Service manages session lifecycle.
type Service interface {
	// GetOrCreate returns the session for key, creating empty state on
	// first reference. Creation is atomic with respect to concurrent
	// callers using the same key.
	GetOrCreate(ctx context.Context, key Key) (*Session, error)

	// Get retrieves an existing session or ErrSessionNotFound.
	Get(ctx context.Context, key Key) (*Session, error)

	// List returns the sessions of one user within an app.
	List(ctx context.Context, appName, userID string) ([]*Session, error)

	// Delete removes a session. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key Key) error
}

// Session is one conversation's state. The message history is mutated only
// by the runner of an in-flight run, under the per-session run lock.
type Session struct {
	key            Key
	createdAt      time.Time
	lastUpdateTime time.Time
	messages       []llm.Message
	mu             sync.RWMutex

	// runMu serializes runs: a session admits at most one in-flight run,
	// concurrent runs on other sessions proceed independently.
	runMu sync.Mutex
}

// Key returns the session's identity.
func (s *Session) Key() Key { return s.key }

// CreatedAt returns when the session was first referenced.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// LastUpdateTime returns when the history last changed.
func (s *Session) LastUpdateTime() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdateTime
}

// Append adds messages to the history in order.
func (s *Session) Append(messages ...llm.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, messages...)
	s.lastUpdateTime = time.Now()
}

// Messages returns a snapshot of the history.
func (s *Session) Messages() []llm.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]llm.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Len returns the number of messages in the history.
func (s *Session) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// BeginRun blocks until no other run is in flight on this session.
// Interleaved runs on one session would corrupt the history.
func (s *Session) BeginRun() { s.runMu.Lock() }

// EndRun releases the run lock.
func (s *Session) EndRun() { s.runMu.Unlock() }

// InMemoryService returns an in-memory session store.
func InMemoryService() Service {
	return &inMemoryService{
		sessions: make(map[Key]*Session),
	}
}

type inMemoryService struct {
	sessions map[Key]*Session
	mu       sync.RWMutex
}

func (s *inMemoryService) GetOrCreate(ctx context.Context, key Key) (*Session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[key]
	s.mu.RUnlock()
	if ok {
		return sess, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Re-check under the write lock: a concurrent first-touch of the
	// same key must not create a second state.
	if sess, ok := s.sessions[key]; ok {
		return sess, nil
	}

	now := time.Now()
	sess = &Session{
		key:            key,
		createdAt:      now,
		lastUpdateTime: now,
	}
	s.sessions[key] = sess
	return sess, nil
}

func (s *inMemoryService) Get(ctx context.Context, key Key) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[key]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func (s *inMemoryService) List(ctx context.Context, appName, userID string) ([]*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sessions []*Session
	for key, sess := range s.sessions {
		if key.AppName == appName && key.UserID == userID {
			sessions = append(sessions, sess)
		}
	}
	return sessions, nil
}

func (s *inMemoryService) Delete(ctx context.Context, key Key) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
	return nil
}

var _ Service = (*inMemoryService)(nil)

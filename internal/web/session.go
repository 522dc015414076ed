package web

import (
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/justestif/go-workout-music-explorer/internal/flow"
	"github.com/justestif/go-workout-music-explorer/internal/zones"
)

const (
	sessionCookieName = "explorer_session"
	sessionTTL        = 24 * time.Hour
	sweepInterval     = time.Minute
)

// ViewState is one visitor's dataset choice, selection path and zoom focus.
type ViewState struct {
	DatasetID string          `json:"dataset_id"`
	Selection flow.Selection  `json:"selection"`
	Navigator zones.Navigator `json:"navigator"`
}

func (v ViewState) clone() ViewState {
	v.Selection.Path = slices.Clone(v.Selection.Path)
	v.Navigator.Path = slices.Clone(v.Navigator.Path)
	return v
}

// Session holds the view state of one visitor.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu    sync.Mutex
	state ViewState
}

// State returns a copy of the session's view state.
func (s *Session) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Update applies fn to the view state and returns the result.
func (s *Session) Update(fn func(*ViewState)) ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	return s.state.clone()
}

// SessionStore manages visitor sessions in memory.
type SessionStore struct {
	mu       sync.RWMutex
	sessions  map[string]*Session
	now       func() time.Time
	lastSweep time.Time
}

// NewSessionStore creates a new in-memory session store.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Create starts a session with the given initial state. Expired sessions
// are swept at most once per sweepInterval.
func (s *SessionStore) Create(initial ViewState) *Session {
	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		state:     initial.clone(),
	}

	s.mu.Lock()
	if now.Sub(s.lastSweep) >= sweepInterval {
		for id, existing := range s.sessions {
			if now.Sub(existing.CreatedAt) > sessionTTL {
				delete(s.sessions, id)
			}
		}
		s.lastSweep = now
	}
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get retrieves a session by ID. Expired sessions are dropped.
func (s *SessionStore) Get(id string) *Session {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}

	if s.now().Sub(session.CreatedAt) > sessionTTL {
		s.Delete(id)
		return nil
	}
	return session
}

// Delete removes a session by ID.
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

// Len returns the number of stored sessions.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// GetFromRequest extracts the session from the request cookie.
func (s *SessionStore) GetFromRequest(r *http.Request) *Session {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}
	return s.Get(cookie.Value)
}

// FromRequest returns the request's session, creating one with initial
// state and setting its cookie when the visitor has none.
func (s *SessionStore) FromRequest(w http.ResponseWriter, r *http.Request, initial ViewState) *Session {
	if session := s.GetFromRequest(r); session != nil {
		return session
	}
	session := s.Create(initial)
	setCookie(w, session)
	return session
}

// setCookie sets the session cookie on the response.
func setCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sessionTTL.Seconds()),
	})
}

package service

import (
	"sync"
	"time"

	"nearzy/internal/features/auth/domain"
)

// Listener is notified with the signed-in user after every auth-state
// change, or nil after sign-out.
type Listener func(user *domain.User)

// Session is the auth state of one client session. Listeners live until
// they unsubscribe or the session is closed.
type Session struct {
	id string

	mu        sync.Mutex
	user      *domain.User
	listeners map[int]Listener
	next      int
	closed    bool
	lastSeen  time.Time
}

func newSession(id string, now time.Time) *Session {
	return &Session{
		id:        id,
		listeners: make(map[int]Listener),
		lastSeen:  now,
	}
}

// ID returns the client session id.
func (s *Session) ID() string {
	return s.id
}

// User returns a copy of the signed-in user, or nil.
func (s *Session) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Subscribe registers fn. The returned func removes it and is safe to call twice.
func (s *Session) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return func() {}
	}

	id := s.next
	s.next++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// SetUser records an auth-state change. The role is derived again from the
// user's email and phone before listeners are notified.
func (s *Session) SetUser(user *domain.User) {
	var next *domain.User
	if user != nil {
		u := *user
		u.Role = domain.DeriveRole(u.Email, u.Phone)
		next = &u
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.user = next
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		if next == nil {
			fn(nil)
			continue
		}
		u := *next
		fn(&u)
	}
}

// Close drops every listener. Later changes are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.user = nil
	s.listeners = make(map[int]Listener)
}

func (s *Session) listenerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen.Before(cutoff)
}

// Sessions holds the live Session of every signed-in client.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*Session
	onCreate func(*Session)
	now      func() time.Time
}

// NewSessions creates a registry. onCreate runs once for every new Session,
// typically to subscribe listeners.
func NewSessions(onCreate func(*Session)) *Sessions {
	return &Sessions{
		sessions: make(map[string]*Session),
		onCreate: onCreate,
		now:      time.Now,
	}
}

// Acquire returns the Session for id, creating it on first use.
func (r *Sessions) Acquire(id string) *Session {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok {
		r.mu.Unlock()
		s.touch(r.now())
		return s
	}
	s = newSession(id, r.now())
	r.sessions[id] = s
	r.mu.Unlock()

	if r.onCreate != nil {
		r.onCreate(s)
	}
	return s
}

// Get returns the Session for id if one is live and marks it as used, so
// sessions seen on requests are not expired.
func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if ok {
		s.touch(r.now())
	}
	return s, ok
}

// Release signs the session out, notifies listeners and closes it.
func (r *Sessions) Release(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if ok {
		s.SetUser(nil)
		s.Close()
	}
}

// Expire closes sessions not used for longer than idle and returns how many it closed.
func (r *Sessions) Expire(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var stale []*Session
	for id, s := range r.sessions {
		if s.idleSince(cutoff) {
			stale = append(stale, s)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, s := range stale {
		s.Close()
	}
	return len(stale)
}

// Len reports the number of live sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

package accountsdk

import "sync"

// SessionStore holds the signed-in user on the client. Login, register and
// profile reads set it; logout, password change and a failed refresh clear
// it. Listeners observe every change, which is how a UI gates its views.
type SessionStore struct {
	mu        sync.RWMutex
	user      *User
	listeners map[int]func(*User)
	nextID    int
}

func NewSessionStore() *SessionStore {
	return &SessionStore{listeners: make(map[int]func(*User))}
}

// User returns the current user and whether one is signed in.
func (s *SessionStore) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *SessionStore) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

// Set replaces the current user.
func (s *SessionStore) Set(u User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.notify(&u)
}

// Clear signs the user out. Listeners receive nil.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	was := s.user != nil
	s.user = nil
	s.mu.Unlock()
	if was {
		s.notify(nil)
	}
}

// Subscribe registers fn for changes and returns a function that removes it.
func (s *SessionStore) Subscribe(fn func(*User)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listeners == nil {
		s.listeners = make(map[int]func(*User))
	}
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *SessionStore) notify(u *User) {
	s.mu.RLock()
	fns := make([]func(*User), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		var cp *User
		if u != nil {
			v := *u
			cp = &v
		}
		fn(cp)
	}
}

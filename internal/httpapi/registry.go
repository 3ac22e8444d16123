package httpapi

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/zkadhem/Quiz-App/internal/quiz"
)

var errSessionNotFound = errors.New("session not found")

// sessionEntry serializes access to one session. The registry lock is only
// held for map lookups, so independent sessions never block each other.
type sessionEntry struct {
	mu sync.Mutex

	session   *quiz.Session
	request   quiz.FetchRequest
	player    string
	attemptID string
	recorded  bool
}

type registry struct {
	mu       sync.RWMutex
	sessions map[string]*sessionEntry
}

func newRegistry() *registry {
	return &registry{sessions: make(map[string]*sessionEntry)}
}

func (r *registry) add(entry *sessionEntry) string {
	id := uuid.NewString()

	r.mu.Lock()
	r.sessions[id] = entry
	r.mu.Unlock()

	return id
}

func (r *registry) get(id string) (*sessionEntry, error) {
	r.mu.RLock()
	entry, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, errSessionNotFound
	}
	return entry, nil
}

func (r *registry) remove(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return errSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

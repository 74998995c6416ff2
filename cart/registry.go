package cart

import (
	"sync"

	"storefront/domain"

	"github.com/google/uuid"
)

type session struct {
	mu   sync.Mutex
	cart *Cart
}

// Registry holds the open carts, one per shopping session.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*session)}
}

// Open starts a session with an empty cart and returns its id.
func (r *Registry) Open() string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &session{cart: New()}
	r.mu.Unlock()
	return id
}

// Close ends the session and drops its cart.
func (r *Registry) Close(id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Do runs fn with the session's cart while holding the session lock.
func (r *Registry) Do(id string, fn func(c *Cart) error) error {
	s, err := r.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.cart)
}

// Lines returns a copy of the session's cart lines.
func (r *Registry) Lines(id string) ([]Line, error) {
	var out []Line
	err := r.Do(id, func(c *Cart) error {
		out = c.Lines()
		return nil
	})
	return out, err
}

// Scrub removes the product from every open cart and returns how many carts held it.
func (r *Registry) Scrub(productID int64) int {
	r.mu.RLock()
	open := make([]*session, 0, len(r.sessions))
	for _, s := range r.sessions {
		open = append(open, s)
	}
	r.mu.RUnlock()

	n := 0
	for _, s := range open {
		s.mu.Lock()
		if s.cart.RemoveProduct(productID) {
			n++
		}
		s.mu.Unlock()
	}
	return n
}

func (r *Registry) get(id string) (*session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.NewCartNotFoundError(id)
	}
	return s, nil
}

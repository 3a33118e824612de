package chat

import (
	"sort"
	"sync"

	"relaychat/internal/app/user"
)

// Registry maps live connections to their registered users.
// It is a plain data store; callers decide when presence changes are announced.
type Registry struct {
	mu    sync.RWMutex
	users map[string]user.User
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		users: make(map[string]user.User),
	}
}

// Register stores (or replaces) the profile of connID and returns it.
func (r *Registry) Register(connID, name string, avatar *string) user.User {
	u := user.New(connID, name, avatar)

	r.mu.Lock()
	r.users[connID] = u
	r.mu.Unlock()

	return u
}

// Unregister removes the profile of connID. Unknown ids are ignored.
func (r *Registry) Unregister(connID string) {
	r.mu.Lock()
	delete(r.users, connID)
	r.mu.Unlock()
}

// Get returns the user registered for connID.
func (r *Registry) Get(connID string) (user.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[connID]
	return u, ok
}

// ListPublic returns the public profiles of all registered users, ordered by connection id.
func (r *Registry) ListPublic() []user.Profile {
	r.mu.RLock()
	profiles := make([]user.Profile, 0, len(r.users))
	for _, u := range r.users {
		profiles = append(profiles, u.Profile())
	}
	r.mu.RUnlock()

	sort.Slice(profiles, func(i, j int) bool {
		return profiles[i].ConnectionID < profiles[j].ConnectionID
	})
	return profiles
}

// Len returns the number of registered users.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.users)
}

package profile

import "sync"

// Registry holds at most one profile per user. A rebuild removes the prior
// entry and appends the fresh one, so All returns profiles in order of their
// most recent rebuild.
type Registry struct {
	mu       sync.RWMutex
	profiles []UserProfile
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Get returns the profile for userID, if one exists.
func (r *Registry) Get(userID string) (UserProfile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.UserID == userID {
			return p, true
		}
	}
	return UserProfile{}, false
}

// Put replaces any existing profile for the same user (remove-then-append),
// keeping the one-profile-per-user invariant.
func (r *Registry) Put(p UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.profiles {
		if r.profiles[i].UserID == p.UserID {
			r.profiles = append(r.profiles[:i], r.profiles[i+1:]...)
			break
		}
	}
	r.profiles = append(r.profiles, p)
}

// All returns a copy of every stored profile.
func (r *Registry) All() []UserProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]UserProfile(nil), r.profiles...)
}

// Restore replaces the registry contents wholesale, preserving order.
func (r *Registry) Restore(profiles []UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles = append([]UserProfile(nil), profiles...)
}

// Package presence tracks which users have a live realtime connection.
package presence

import (
	"context"
	"sort"
	"sync"

	"github.com/s21platform/skills-messenger/internal/model"
)

// Handle is a live connection that can receive events.
type Handle interface {
	ID() string
	// Send queues an event and reports whether it was accepted.
	Send(event model.Event) bool
}

// Registry maps users to their connection. A user has at most one addressable connection.
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]Handle
	byConn map[string]string
}

func New() *Registry {
	return &Registry{
		byUser: make(map[string]Handle),
		byConn: make(map[string]string),
	}
}

// Connect binds userID to h. The latest connection wins: a previous connection of the same
// user is returned and becomes unaddressable. cameOnline is true when the user had no connection.
func (r *Registry) Connect(userID string, h Handle) (previous Handle, cameOnline bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, online := r.byUser[userID]
	if online {
		delete(r.byConn, previous.ID())
	}

	r.byUser[userID] = h
	r.byConn[h.ID()] = userID

	return previous, !online
}

// Disconnect releases connID. wentOffline is true only when connID was the user's current
// connection; a superseded connection leaves presence untouched.
func (r *Registry) Disconnect(connID string) (userID string, wentOffline bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok := r.byConn[connID]
	if !ok {
		return "", false
	}
	delete(r.byConn, connID)

	if current, ok := r.byUser[userID]; ok && current.ID() == connID {
		delete(r.byUser, userID)
		return userID, true
	}

	return userID, false
}

func (r *Registry) Lookup(userID string) (Handle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byUser[userID]
	return h, ok
}

func (r *Registry) IsOnline(userID string) bool {
	_, ok := r.Lookup(userID)
	return ok
}

// ListOnline returns the sorted ids of online users other than excluding.
func (r *Registry) ListOnline(excluding string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.byUser))
	for userID := range r.byUser {
		if userID != excluding {
			users = append(users, userID)
		}
	}
	sort.Strings(users)

	return users
}

// Handles returns the connections of every online user other than excluding.
func (r *Registry) Handles(excluding string) []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handles := make([]Handle, 0, len(r.byUser))
	for userID, h := range r.byUser {
		if userID != excluding {
			handles = append(handles, h)
		}
	}

	return handles
}

// Online reports, for each of userIDs, whether it has a connection on this instance.
func (r *Registry) Online(_ context.Context, userIDs []string) (map[string]bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	online := make(map[string]bool, len(userIDs))
	for _, userID := range userIDs {
		_, online[userID] = r.byUser[userID]
	}

	return online, nil
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byUser)
}

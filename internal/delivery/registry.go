// internal/delivery/registry.go

// Package delivery routes finished assistant responses back to the
// channel that originated the session.
package delivery

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dhirajp15/dhirux-workflows/internal/types"
)

// Handler delivers a guarded response to the session identified by key.
type Handler func(key types.SessionKey, message string) error

// Registry routes responses to the appropriate delivery handler based on
// session key prefix (e.g. "telegram:", "task:").
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty delivery registry.
func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler for session keys starting with prefix.
func (r *Registry) Register(prefix string, handler Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[prefix] = handler
}

// Deliver finds the handler matching the session key prefix and calls it.
// Returns an error if no handler is registered for the prefix.
func (r *Registry) Deliver(key types.SessionKey, message string) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for prefix, handler := range r.handlers {
		if strings.HasPrefix(string(key), prefix) {
			return handler(key, message)
		}
	}
	return fmt.Errorf("no delivery handler for session key: %s", key)
}

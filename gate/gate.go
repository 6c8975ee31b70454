// Package gate is a small Gate/Policy authorization registry. Each Policy
// holds the rules for one resource type; the Gate dispatches to it by name.
// The package knows nothing about domain models.
//
// U is the subject type: Gate[uint] for user-id based checks, Gate[*User]
// when the whole user is at hand.
package gate

import (
	"context"
	"fmt"
	"sync"
)

// Gate is the central authorization checkpoint. Safe for concurrent use.
type Gate[U comparable] struct {
	mu       sync.RWMutex
	policies map[string]Policy[U]
}

// NewGate creates an empty Gate ready to register policies.
func NewGate[U comparable]() *Gate[U] {
	return &Gate[U]{policies: make(map[string]Policy[U])}
}

// Register adds a policy for a resource type (e.g., "project"),
// replacing any previous one.
func (g *Gate[U]) Register(resourceType string, p Policy[U]) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.policies[resourceType] = p
}

// Has reports whether a policy is registered for resourceType.
func (g *Gate[U]) Has(resourceType string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.policies[resourceType]
	return ok
}

// Authorize returns nil when user may perform action on resource.
// A zero-value user is always denied.
func (g *Gate[U]) Authorize(ctx context.Context, user U, action Action, resourceType string, resource any) error {
	var zero U
	if user == zero {
		return fmt.Errorf("%w: anonymous %s on %s", ErrUnauthorized, action, resourceType)
	}
	g.mu.RLock()
	p, ok := g.policies[resourceType]
	g.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoPolicyDefined, resourceType)
	}
	if !p.Can(ctx, user, action, resource) {
		return fmt.Errorf("%w: %s on %s", ErrUnauthorized, action, resourceType)
	}
	return nil
}

// Can is Authorize reduced to a bool.
func (g *Gate[U]) Can(ctx context.Context, user U, action Action, resourceType string, resource any) bool {
	return g.Authorize(ctx, user, action, resourceType, resource) == nil
}

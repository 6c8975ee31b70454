package policy

import (
	"context"

	"github.com/diewo77/go-freelance/gate"
)

// Resource type names registered on the gate.
const (
	ResourceProfile     = "profile"
	ResourceProject     = "project"
	ResourceApplication = "application"
)

// AuthGate holds the marketplace policies. Services pass the acting user
// explicitly.
type AuthGate struct {
	Gate *gate.Gate[uint]
}

// NewAuthGate creates a gate with the marketplace policies registered.
func NewAuthGate() *AuthGate {
	g := gate.NewGate[uint]()
	g.Register(ResourceProfile, NewOwnershipPolicy())
	g.Register(ResourceProject, NewProjectPolicy())
	g.Register(ResourceApplication, NewApplicationPolicy())
	return &AuthGate{Gate: g}
}

// Allows checks an explicit user, for services that already know who acts.
func (ag *AuthGate) Allows(ctx context.Context, userID uint, action gate.Action, resourceType string, resource any) error {
	return ag.Gate.Authorize(ctx, userID, action, resourceType, resource)
}

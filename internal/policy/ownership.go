package policy

import (
	"context"

	"github.com/diewo77/go-freelance/gate"
)

// Ownable is implemented by resources that have a single owning user.
type Ownable interface {
	GetUserID() uint
}

// OwnershipPolicy allows an action only when the user owns the resource.
type OwnershipPolicy struct{}

// NewOwnershipPolicy creates a new ownership policy.
func NewOwnershipPolicy() *OwnershipPolicy {
	return &OwnershipPolicy{}
}

// Can checks if the user owns the resource. Without a resource (list/create)
// any authenticated user is allowed. Resources that are not Ownable are denied.
func (p *OwnershipPolicy) Can(_ context.Context, userID uint, _ gate.Action, resource any) bool {
	if resource == nil {
		return true
	}
	ownable, ok := resource.(Ownable)
	if !ok {
		return false
	}
	return ownable.GetUserID() == userID
}

// ProjectPolicy lets anyone signed in view a project and apply to it unless
// they own it. Every other action requires ownership.
type ProjectPolicy struct {
	owner *OwnershipPolicy
}

// NewProjectPolicy creates a project policy.
func NewProjectPolicy() *ProjectPolicy {
	return &ProjectPolicy{owner: NewOwnershipPolicy()}
}

func (p *ProjectPolicy) Can(ctx context.Context, userID uint, action gate.Action, resource any) bool {
	switch action {
	case gate.ActionView, gate.ActionList:
		return true
	case gate.ActionApply:
		ownable, ok := resource.(Ownable)
		return ok && ownable.GetUserID() != userID
	default:
		return p.owner.Can(ctx, userID, action, resource)
	}
}

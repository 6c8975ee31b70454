package policy

import (
	"context"

	"github.com/diewo77/go-freelance/gate"
)

// ApplicationScoped is implemented by applications, which are jointly held
// by the applicant and the owner of the target project.
type ApplicationScoped interface {
	ApplicantID() uint
	ProjectOwnerID() uint
}

// ApplicationPolicy: both parties may view; only the project owner may review.
type ApplicationPolicy struct{}

func NewApplicationPolicy() *ApplicationPolicy { return &ApplicationPolicy{} }

func (p *ApplicationPolicy) Can(_ context.Context, userID uint, action gate.Action, resource any) bool {
	app, ok := resource.(ApplicationScoped)
	if !ok {
		return false
	}
	switch action {
	case gate.ActionView:
		return app.ApplicantID() == userID || app.ProjectOwnerID() == userID
	case gate.ActionReview, gate.ActionUpdate:
		return app.ProjectOwnerID() == userID
	default:
		return false
	}
}

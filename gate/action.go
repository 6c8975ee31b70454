package gate

// Action describes the kind of operation a user wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
	// ActionApply covers submitting an application to a project.
	ActionApply Action = "apply"
	// ActionReview covers changing the status of an application.
	ActionReview Action = "review"
)

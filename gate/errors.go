package gate

import "errors"

// Sentinel errors returned by Gate.Authorize. Returned errors wrap these
// with the action and resource type; match them with errors.Is.
var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrNoPolicyDefined = errors.New("no policy defined for resource")
)

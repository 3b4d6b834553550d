package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Library operation errors
	ErrUnauthorized     = fmt.Errorf("no authenticated owner")
	ErrNotFound         = fmt.Errorf("not found")
	ErrInvalidReference = fmt.Errorf("invalid remote reference")
	ErrAlreadyExists    = fmt.Errorf("already in library")
	ErrNotRefreshable   = fmt.Errorf("playlist has no remote identifier")

	// Collaborator errors
	ErrProvider = fmt.Errorf("metadata provider request failed")
	ErrStore    = fmt.Errorf("store operation failed")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)

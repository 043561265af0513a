package repositories

import "errors"

// Sentinel errors shared by every repository implementation. Handlers
// match on these with errors.Is to pick response codes.
var (
	ErrNotFound  = errors.New("not found")
	ErrInvalidID = errors.New("malformed id")
	ErrDuplicate = errors.New("duplicate key")
)

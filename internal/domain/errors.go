package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("employee not found")
	ErrDuplicateID      = errors.New("user id already exists")
	ErrPermissionDenied = errors.New("access denied")
	ErrSelfDelete       = errors.New("cannot delete your own account while logged in")
	ErrInvalidSalary    = errors.New("salary must not be negative")
	ErrUnknownField     = errors.New("unknown field")
	ErrLoginFailed      = errors.New("invalid user id")
)

// PermissionError reports an operation the role is not allowed to run.
type PermissionError struct {
	Role Role
	Op   Operation
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("access denied: %s cannot %s", e.Role, e.Op)
}

func (e *PermissionError) Is(target error) bool {
	return target == ErrPermissionDenied
}

package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// MaxNameLength is the longest user name accepted, counted in characters.
const MaxNameLength = 255

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrMalformedRequest = errors.New("malformed request")
	ErrDuplicateName    = errors.New("duplicate user name")
)

// User is a task-board participant.
// ID and CreatedAt stay nil until the user has been persisted.
type User struct {
	ID        *uuid.UUID
	Name      string
	CreatedAt *time.Time
}

// Error carries one of the user error kinds together with the message
// reported back to the caller.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// UserNotFound reports a lookup miss for id.
func UserNotFound(id uuid.UUID) error {
	return &Error{Kind: ErrUserNotFound, Message: fmt.Sprintf("User with ID %s does not exist.", id)}
}

// MalformedRequest reports a request that violates a precondition of the user service.
func MalformedRequest(msg string) error {
	return &Error{Kind: ErrMalformedRequest, Message: msg}
}

// DuplicateName reports that another user already holds name.
func DuplicateName(name string) error {
	return &Error{Kind: ErrDuplicateName, Message: fmt.Sprintf("User with name %q already exists.", name)}
}

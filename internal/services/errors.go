package services

import "fmt"

// Error kinds for directory service operations.
const (
	ErrKindInvalidEmail    = "invalid_email"
	ErrKindInvalidUsername = "invalid_username"
	ErrKindInvalidPhone    = "invalid_phone"
	ErrKindInvalidAge      = "invalid_age"
	ErrKindNotFound        = "not_found"
	ErrKindAlreadyExists   = "already_exists"
	ErrKindRepository      = "repository_error"
)

// UserError represents a failed directory service operation. Kind
// distinguishes validation failures, uniqueness/existence violations, and
// wrapped storage failures; Cause is set only for the latter.
type UserError struct {
	Kind    string
	Email   string
	Message string
	Cause   error
}

func (e *UserError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("user error [%s]: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("user error [%s]: %s", e.Kind, e.Message)
}

func (e *UserError) Unwrap() error {
	return e.Cause
}

// NewInvalidEmailError creates an error for a malformed email address.
func NewInvalidEmailError(email string) *UserError {
	return &UserError{
		Kind:    ErrKindInvalidEmail,
		Email:   email,
		Message: fmt.Sprintf("invalid email format: %s", email),
	}
}

// NewInvalidUsernameError creates an error for a username that is too short.
func NewInvalidUsernameError() *UserError {
	return &UserError{
		Kind:    ErrKindInvalidUsername,
		Message: "username must be at least 3 characters long",
	}
}

// NewInvalidPhoneError creates an error for a malformed phone number.
func NewInvalidPhoneError() *UserError {
	return &UserError{
		Kind:    ErrKindInvalidPhone,
		Message: "phone number must be at least 10 digits",
	}
}

// NewInvalidAgeError creates an error for an out-of-range age.
func NewInvalidAgeError() *UserError {
	return &UserError{
		Kind:    ErrKindInvalidAge,
		Message: "age must be between 0 and 150",
	}
}

// NewUserNotFoundError creates an error for when no record matches an email.
func NewUserNotFoundError(email string) *UserError {
	return &UserError{
		Kind:    ErrKindNotFound,
		Email:   email,
		Message: fmt.Sprintf("user with email %s not found", email),
	}
}

// NewUserAlreadyExistsError creates an error for a create on a taken email.
func NewUserAlreadyExistsError(email string) *UserError {
	return &UserError{
		Kind:    ErrKindAlreadyExists,
		Email:   email,
		Message: fmt.Sprintf("user with email %s already exists", email),
	}
}

// NewRepositoryError wraps an underlying storage failure.
func NewRepositoryError(cause error) *UserError {
	return &UserError{
		Kind:    ErrKindRepository,
		Message: "repository operation failed",
		Cause:   cause,
	}
}

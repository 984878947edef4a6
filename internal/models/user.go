package models

// User represents a single record in the user directory. The email address
// doubles as the storage key and never changes after creation.
//
// Validation tags are evaluated in field declaration order, which fixes the
// order in which the service reports failures: email, username, phone, age.
type User struct {
	Email    string `json:"email" validate:"user_email"`
	Username string `json:"username" validate:"user_username"`
	Phone    string `json:"phone" validate:"user_phone"`
	Age      uint32 `json:"age" validate:"max=150"`
}

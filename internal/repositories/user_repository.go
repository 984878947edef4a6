package repositories

import (
	"fmt"

	"userdir/internal/models"
)

// UserRepository defines the interface for user record persistence, keyed by
// email. FindByEmail returns (nil, nil) when no record matches; the caller
// decides whether absence is an error. Delete reports whether a record
// existed before removal.
type UserRepository interface {
	Save(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindAll() ([]models.User, error)
	Delete(email string) (bool, error)
}

// StorageError wraps an I/O or (de)serialization failure from a repository
// implementation. It always carries the underlying cause; the only storage
// conditions not reported through it are the missing-file and empty-file
// cases, which read as an empty record set.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("storage error during %s on %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

package repositories

import (
	"sync"

	"userdir/internal/models"
)

// MockUserRepository is an in-memory implementation of UserRepository. It is
// the test double for the file-backed store and also serves as the "memory"
// backend for runs that should not touch the disk.
type MockUserRepository struct {
	users map[string]models.User
	mu    sync.RWMutex
}

// NewMockUserRepository creates a new instance of MockUserRepository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[string]models.User),
	}
}

// Save upserts the record under user.Email.
func (r *MockUserRepository) Save(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.users[user.Email] = *user
	return nil
}

// FindByEmail returns the matching record, or nil when absent.
func (r *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[email]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// FindAll returns every record in unspecified order.
func (r *MockUserRepository) FindAll() ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]models.User, 0, len(r.users))
	for _, user := range r.users {
		list = append(list, user)
	}
	return list, nil
}

// Delete removes the record and reports whether it existed.
func (r *MockUserRepository) Delete(email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, existed := r.users[email]
	delete(r.users, email)
	return existed, nil
}

package repositories

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"userdir/internal/models"
)

// JSONUserRepository is a file-backed implementation of UserRepository. All
// records live in a single pretty-printed JSON object mapping email to
// record. Every mutation is a full read-modify-write of that document; a
// missing or zero-byte file reads as an empty set, anything else that fails
// to parse is a hard StorageError.
//
// Writes go to a uniquely named temp file and are renamed over the target,
// so a crash mid-write never leaves a truncated document. There is no
// cross-process locking: two processes mutating the same file can still race
// on the read-modify-write cycle, and callers are expected to run one
// process at a time.
type JSONUserRepository struct {
	filePath string
}

// NewJSONUserRepository creates a repository backed by the JSON document at
// filePath. The file does not need to exist yet.
func NewJSONUserRepository(filePath string) *JSONUserRepository {
	return &JSONUserRepository{
		filePath: filePath,
	}
}

// Save upserts the record under user.Email and rewrites the file.
func (r *JSONUserRepository) Save(user *models.User) error {
	users, err := r.readUsers()
	if err != nil {
		return err
	}
	users[user.Email] = *user
	return r.writeUsers(users)
}

// FindByEmail returns the matching record, or nil when absent.
func (r *JSONUserRepository) FindByEmail(email string) (*models.User, error) {
	users, err := r.readUsers()
	if err != nil {
		return nil, err
	}
	user, ok := users[email]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// FindAll returns every record. Order is unspecified since the backing
// document is a map.
func (r *JSONUserRepository) FindAll() ([]models.User, error) {
	users, err := r.readUsers()
	if err != nil {
		return nil, err
	}
	list := make([]models.User, 0, len(users))
	for _, user := range users {
		list = append(list, user)
	}
	return list, nil
}

// Delete removes the record if present, rewrites the file regardless, and
// reports whether a record existed.
func (r *JSONUserRepository) Delete(email string) (bool, error) {
	users, err := r.readUsers()
	if err != nil {
		return false, err
	}
	_, existed := users[email]
	delete(users, email)
	if err := r.writeUsers(users); err != nil {
		return false, err
	}
	return existed, nil
}

func (r *JSONUserRepository) readUsers() (map[string]models.User, error) {
	content, err := os.ReadFile(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]models.User{}, nil
		}
		return nil, &StorageError{Op: "read", Path: r.filePath, Err: err}
	}
	// A zero-byte file can be left behind by a crashed first run.
	if len(content) == 0 {
		return map[string]models.User{}, nil
	}
	var users map[string]models.User
	if err := json.Unmarshal(content, &users); err != nil {
		return nil, &StorageError{Op: "parse", Path: r.filePath, Err: err}
	}
	if users == nil {
		users = map[string]models.User{}
	}
	return users, nil
}

func (r *JSONUserRepository) writeUsers(users map[string]models.User) error {
	content, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return &StorageError{Op: "serialize", Path: r.filePath, Err: err}
	}
	tmpPath := fmt.Sprintf("%s.tmp-%s", r.filePath, uuid.New().String())
	if err := os.WriteFile(tmpPath, content, 0o644); err != nil {
		return &StorageError{Op: "write", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, r.filePath); err != nil {
		os.Remove(tmpPath)
		return &StorageError{Op: "rename", Path: r.filePath, Err: err}
	}
	return nil
}

package repositories_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/models"
	"userdir/internal/repositories"
)

func testUser() models.User {
	return models.User{
		Email:    "test@example.com",
		Username: "testuser",
		Phone:    "1234567890",
		Age:      25,
	}
}

func newTestRepository(t *testing.T) (*repositories.JSONUserRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "userdata.json")
	return repositories.NewJSONUserRepository(path), path
}

func TestJSONUserRepository_SaveAndFindByEmail(t *testing.T) {
	repo, _ := newTestRepository(t)
	user := testUser()

	require.NoError(t, repo.Save(&user))

	found, err := repo.FindByEmail(user.Email)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user, *found)
}

func TestJSONUserRepository_FindByEmail_Absent(t *testing.T) {
	repo, _ := newTestRepository(t)
	user := testUser()
	require.NoError(t, repo.Save(&user))

	found, err := repo.FindByEmail("missing@example.com")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestJSONUserRepository_SaveOverwritesExisting(t *testing.T) {
	repo, _ := newTestRepository(t)
	user := testUser()
	require.NoError(t, repo.Save(&user))

	user.Username = "renamed"
	user.Age = 26
	require.NoError(t, repo.Save(&user))

	users, err := repo.FindAll()
	assert.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "renamed", users[0].Username)
	assert.Equal(t, uint32(26), users[0].Age)
}

func TestJSONUserRepository_FindAll(t *testing.T) {
	repo, _ := newTestRepository(t)
	user1 := testUser()
	user2 := testUser()
	user2.Email = "test2@example.com"

	require.NoError(t, repo.Save(&user1))
	require.NoError(t, repo.Save(&user2))

	users, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestJSONUserRepository_Delete(t *testing.T) {
	repo, path := newTestRepository(t)
	user := testUser()
	require.NoError(t, repo.Save(&user))

	existed, err := repo.Delete(user.Email)
	assert.NoError(t, err)
	assert.True(t, existed)

	found, err := repo.FindByEmail(user.Email)
	assert.NoError(t, err)
	assert.Nil(t, found)

	// The file is rewritten even when nothing was removed.
	existed, err = repo.Delete(user.Email)
	assert.NoError(t, err)
	assert.False(t, existed)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestJSONUserRepository_MissingFileReadsAsEmpty(t *testing.T) {
	repo, path := newTestRepository(t)

	users, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Empty(t, users)

	// A missing file is first-run state, not an error, and reads do not
	// create it.
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestJSONUserRepository_EmptyFileReadsAsEmpty(t *testing.T) {
	repo, path := newTestRepository(t)
	require.NoError(t, os.WriteFile(path, []byte{}, 0o644))

	users, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Empty(t, users)
}

func TestJSONUserRepository_CorruptFileIsStorageError(t *testing.T) {
	repo, path := newTestRepository(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := repo.FindAll()
	var storageErr *repositories.StorageError
	require.True(t, errors.As(err, &storageErr))
	assert.Equal(t, "parse", storageErr.Op)

	// A corrupt document blocks mutations too; nothing gets clobbered.
	user := testUser()
	err = repo.Save(&user)
	assert.True(t, errors.As(err, &storageErr))
}

func TestJSONUserRepository_FileFormatRoundTrip(t *testing.T) {
	repo, path := newTestRepository(t)
	user1 := testUser()
	user2 := testUser()
	user2.Email = "test2@example.com"
	user2.Username = "otheruser"

	require.NoError(t, repo.Save(&user1))
	require.NoError(t, repo.Save(&user2))

	// The on-disk document is one JSON object keyed by email.
	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var onDisk map[string]models.User
	require.NoError(t, json.Unmarshal(content, &onDisk))
	assert.Equal(t, map[string]models.User{
		user1.Email: user1,
		user2.Email: user2,
	}, onDisk)

	// Reading through a fresh repository yields the same records.
	reopened := repositories.NewJSONUserRepository(path)
	users, err := reopened.FindAll()
	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestJSONUserRepository_NoTempFilesLeftBehind(t *testing.T) {
	repo, path := newTestRepository(t)
	user := testUser()
	require.NoError(t, repo.Save(&user))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.Equal(t, filepath.Base(path), entries[0].Name())
}

package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/repositories"
)

func TestMockUserRepository_MatchesStoreSemantics(t *testing.T) {
	repo := repositories.NewMockUserRepository()
	user := testUser()

	found, err := repo.FindByEmail(user.Email)
	assert.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, repo.Save(&user))

	found, err = repo.FindByEmail(user.Email)
	assert.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, user, *found)

	users, err := repo.FindAll()
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	existed, err := repo.Delete(user.Email)
	assert.NoError(t, err)
	assert.True(t, existed)

	existed, err = repo.Delete(user.Email)
	assert.NoError(t, err)
	assert.False(t, existed)
}

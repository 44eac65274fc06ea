package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/model"
	"github.com/WhiteArt666/RedditEng-Clone-sub000/internal/testutil"
)

func TestUserRepository_GetByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	user := testutil.TestUser(t, db, testutil.WithUsername("findme"))

	found, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "findme", found.Username)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	testutil.TestUser(t, db, testutil.WithEmail("byemail@example.com"))

	found, err := repo.GetByEmail("byemail@example.com")
	require.NoError(t, err)
	require.NotNil(t, found.Email)
	assert.Equal(t, "byemail@example.com", *found.Email)
}

func TestUserRepository_IncrementKarma(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	user := testutil.TestUser(t, db, testutil.WithKarma(5))

	require.NoError(t, repo.IncrementKarma(user.ID, 1))
	require.NoError(t, repo.IncrementKarma(user.ID, 1))
	require.NoError(t, repo.IncrementKarma(user.ID, -1))

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, 6, updated.Karma)
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	testutil.TestUser(t, db, testutil.WithUsername("existing"))

	exists, err := repo.ExistsByUsername("existing")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername("missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepository_UpdateFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewUserRepository(db)
	user := testutil.TestUser(t, db)

	err := repo.UpdateFields(user.ID, map[string]interface{}{
		"avatar_url": "https://cdn.example.com/avatars/1.png",
	})
	require.NoError(t, err)

	var updated model.User
	require.NoError(t, db.First(&updated, user.ID).Error)
	assert.Equal(t, "https://cdn.example.com/avatars/1.png", updated.AvatarURL)
}

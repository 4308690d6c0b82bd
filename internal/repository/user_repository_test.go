package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"xclone/internal/model"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to open test db")
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Follow{}))
	return db
}

func seedUser(t *testing.T, repo UserRepository, username string) *model.User {
	t.Helper()
	user := model.NewUser("Test "+username, username, username+"@example.com", "$2a$10$hashedvalue")
	require.NotNil(t, user)
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	created := seedUser(t, repo, "alice")

	byName, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)
	assert.Equal(t, "$2a$10$hashedvalue", byName.Password)
	assert.Equal(t, "alice@example.com", byName.Email)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)
	assert.Empty(t, byID.Password, "password column must not be selected")
	assert.NotNil(t, byID.Followers)
	assert.NotNil(t, byID.Following)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()

	_, err := repo.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUserRepository_Exists(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "bob")

	ok, err := repo.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ExistsByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsByEmail(ctx, "carol@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserRepository_UniqueIndexes(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	seedUser(t, repo, "dave")

	sameUsername := model.NewUser("Other", "dave", "other@example.com", "hash")
	assert.Error(t, repo.Create(ctx, sameUsername))

	sameEmail := model.NewUser("Other", "other", "dave@example.com", "hash")
	assert.Error(t, repo.Create(ctx, sameEmail))
}

func TestUserRepository_Follows(t *testing.T) {
	repo := NewUserRepository(setupTestDB(t))
	ctx := context.Background()
	alice := seedUser(t, repo, "alice")
	bob := seedUser(t, repo, "bob")
	carol := seedUser(t, repo, "carol")

	require.NoError(t, repo.AddFollow(ctx, bob.ID, alice.ID))
	require.NoError(t, repo.AddFollow(ctx, carol.ID, alice.ID))
	require.NoError(t, repo.AddFollow(ctx, alice.ID, bob.ID))
	// duplicate edge is ignored
	require.NoError(t, repo.AddFollow(ctx, alice.ID, bob.ID))

	got, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{bob.ID, carol.ID}, got.Followers)
	assert.Equal(t, []uuid.UUID{bob.ID}, got.Following)

	got, err = repo.FindByUsername(ctx, "carol")
	require.NoError(t, err)
	assert.Empty(t, got.Followers)
	assert.Equal(t, []uuid.UUID{alice.ID}, got.Following)
}

package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sbilibin2017/blog-store/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db := setupPostgres(t)
	h := testHasher()
	repo := NewUserRepository(db, nil, h)
	ctx := context.Background()

	created, err := repo.Create(ctx, models.UserCreateRequest{
		Username: "alice",
		Email:    "a@x.com",
		Password: "secret",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "alice", created.Username)
	assert.Equal(t, "a@x.com", created.Email)

	t.Run("Stored credential is a verifiable digest", func(t *testing.T) {
		full, err := repo.GetFullByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, full)
		assert.NotEqual(t, "secret", full.HashedPassword)
		assert.True(t, h.Verify("secret", full.HashedPassword))
		assert.False(t, h.Verify("secretx", full.HashedPassword))
	})

	t.Run("GetByID", func(t *testing.T) {
		user, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, &models.User{ID: created.ID, Username: "alice", Email: "a@x.com"}, user)
	})

	t.Run("GetByUsername", func(t *testing.T) {
		user, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, created.ID, user.ID)
	})

	t.Run("Lookups miss without error", func(t *testing.T) {
		user, err := repo.GetByID(ctx, 999999)
		assert.NoError(t, err)
		assert.Nil(t, user)

		user, err = repo.GetByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, user)

		full, err := repo.GetFullByUsername(ctx, "nobody")
		assert.NoError(t, err)
		assert.Nil(t, full)
	})

	t.Run("Duplicate username surfaces the driver error", func(t *testing.T) {
		_, err := repo.Create(ctx, models.UserCreateRequest{Username: "alice", Email: "b@x.com", Password: "x"})
		var pgErr *pgconn.PgError
		require.True(t, errors.As(err, &pgErr))
		assert.Equal(t, "23505", pgErr.Code)
	})

	t.Run("Partial update keeps untouched fields", func(t *testing.T) {
		before, err := repo.GetFullByUsername(ctx, "alice")
		require.NoError(t, err)

		user, err := repo.Update(ctx, created.ID, models.UserUpdateRequest{Email: strPtr("a@b.com")})
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "alice", user.Username)
		assert.Equal(t, "a@b.com", user.Email)

		after, err := repo.GetFullByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, before.HashedPassword, after.HashedPassword)
	})

	t.Run("Password update stores a new digest", func(t *testing.T) {
		_, err := repo.Update(ctx, created.ID, models.UserUpdateRequest{Password: strPtr("changed")})
		require.NoError(t, err)

		full, err := repo.GetFullByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.NotEqual(t, "changed", full.HashedPassword)
		assert.True(t, h.Verify("changed", full.HashedPassword))
		assert.False(t, h.Verify("secret", full.HashedPassword))
	})

	t.Run("Update unknown id", func(t *testing.T) {
		user, err := repo.Update(ctx, 999999, models.UserUpdateRequest{Email: strPtr("x@x.com")})
		assert.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("Delete", func(t *testing.T) {
		other, err := repo.Create(ctx, models.UserCreateRequest{Username: "bob", Email: "b@x.com", Password: "pw"})
		require.NoError(t, err)

		ok, err := repo.Delete(ctx, other.ID)
		assert.NoError(t, err)
		assert.True(t, ok)

		user, err := repo.GetByID(ctx, other.ID)
		assert.NoError(t, err)
		assert.Nil(t, user)

		ok, err = repo.Delete(ctx, other.ID)
		assert.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestUserRepository_DeleteWithCommentsIsRejected(t *testing.T) {
	db := setupPostgres(t)
	ctx := context.Background()

	users := NewUserRepository(db, nil, testHasher())
	posts := NewPostRepository(db, nil)
	comments := NewCommentRepository(db, nil)

	author, err := users.Create(ctx, models.UserCreateRequest{Username: "author", Email: "a@x.com", Password: "pw"})
	require.NoError(t, err)
	commenter, err := users.Create(ctx, models.UserCreateRequest{Username: "commenter", Email: "c@x.com", Password: "pw"})
	require.NoError(t, err)

	post, err := posts.Create(ctx, models.PostCreateRequest{Title: "t", Content: "c", OwnerID: author.ID})
	require.NoError(t, err)
	_, err = comments.Create(ctx, post.ID, commenter.ID, models.CommentCreateRequest{Content: "hi"})
	require.NoError(t, err)

	ok, err := users.Delete(ctx, commenter.ID)
	assert.False(t, ok)
	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr))
	assert.Equal(t, "23503", pgErr.Code)

	// Nothing was removed.
	user, err := users.GetByID(ctx, commenter.ID)
	assert.NoError(t, err)
	assert.NotNil(t, user)
	assert.Equal(t, 1, countRows(t, db, "comments"))
}

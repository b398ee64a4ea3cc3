package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikeRepository_LikeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice")
	post := createTestPost(t, db, user.ID, "first")

	inserted, err := repo.Like(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, inserted)

	// second like hits the unique index and is a no-op
	inserted, err = repo.Like(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, inserted)

	liked, err := repo.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, liked)
}

func TestLikeRepository_Unlike(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "bob")
	post := createTestPost(t, db, user.ID, "first")

	removed, err := repo.Unlike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, removed, "unlike without a like should report nothing removed")

	_, err = repo.Like(ctx, user.ID, post.ID)
	require.NoError(t, err)

	removed, err = repo.Unlike(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	liked, err := repo.IsLiked(ctx, user.ID, post.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeRepository_LikedPostIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	p1 := createTestPost(t, db, bob.ID, "one")
	p2 := createTestPost(t, db, bob.ID, "two")
	p3 := createTestPost(t, db, bob.ID, "three")

	for _, postID := range []uint{p1.ID, p3.ID} {
		_, err := repo.Like(ctx, alice.ID, postID)
		require.NoError(t, err)
	}
	_, err := repo.Like(ctx, bob.ID, p2.ID)
	require.NoError(t, err)

	ids, err := repo.LikedPostIDs(ctx, alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{p1.ID, p3.ID}, ids)

	ids, err = repo.LikedPostIDs(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestLikeRepository_ListForPost(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	post := createTestPost(t, db, alice.ID, "popular")

	_, err := repo.Like(ctx, alice.ID, post.ID)
	require.NoError(t, err)
	_, err = repo.Like(ctx, bob.ID, post.ID)
	require.NoError(t, err)

	likes, err := repo.ListForPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 2)
}

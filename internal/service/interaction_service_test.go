package service

import (
	"context"
	"testing"

	"waypost/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type likeKey struct {
	userID uint
	postID uint
}

type stubLikeRepo struct {
	likes map[likeKey]struct{}
}

func newStubLikeRepo() *stubLikeRepo {
	return &stubLikeRepo{likes: map[likeKey]struct{}{}}
}

func (s *stubLikeRepo) Like(ctx context.Context, userID, postID uint) (bool, error) {
	key := likeKey{userID, postID}
	if _, ok := s.likes[key]; ok {
		return false, nil
	}
	s.likes[key] = struct{}{}
	return true, nil
}

func (s *stubLikeRepo) Unlike(ctx context.Context, userID, postID uint) (bool, error) {
	key := likeKey{userID, postID}
	if _, ok := s.likes[key]; !ok {
		return false, nil
	}
	delete(s.likes, key)
	return true, nil
}

func (s *stubLikeRepo) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	_, ok := s.likes[likeKey{userID, postID}]
	return ok, nil
}

func (s *stubLikeRepo) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	ids := []uint{}
	for key := range s.likes {
		if key.userID == userID {
			ids = append(ids, key.postID)
		}
	}
	return ids, nil
}

func (s *stubLikeRepo) ListForPost(ctx context.Context, postID uint) ([]models.Like, error) {
	likes := []models.Like{}
	for key := range s.likes {
		if key.postID == postID {
			likes = append(likes, models.Like{UserID: key.userID, PostID: key.postID})
		}
	}
	return likes, nil
}

type stubCommentRepo struct {
	comments map[uint]*models.Comment
	nextID   uint
}

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{comments: map[uint]*models.Comment{}, nextID: 1}
}

func (s *stubCommentRepo) Create(ctx context.Context, comment *models.Comment) error {
	comment.ID = s.nextID
	s.nextID++
	copied := *comment
	s.comments[comment.ID] = &copied
	return nil
}

func (s *stubCommentRepo) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	comment, ok := s.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *comment
	return &copied, nil
}

func (s *stubCommentRepo) GetByPostID(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *stubCommentRepo) Delete(ctx context.Context, id uint) error {
	delete(s.comments, id)
	return nil
}

func (s *stubCommentRepo) CommentedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	seen := map[uint]struct{}{}
	ids := []uint{}
	for _, c := range s.comments {
		if c.UserID != userID {
			continue
		}
		if _, dup := seen[c.PostID]; dup {
			continue
		}
		seen[c.PostID] = struct{}{}
		ids = append(ids, c.PostID)
	}
	return ids, nil
}

func setupInteractionService(t *testing.T) (*InteractionService, *stubPostRepo) {
	t.Helper()
	postRepo := newStubPostRepo()
	svc := NewInteractionService(postRepo, newStubLikeRepo(), newStubCommentRepo())
	return svc, postRepo
}

func TestInteractionService_ToggleLike(t *testing.T) {
	svc, postRepo := setupInteractionService(t)
	ctx := context.Background()

	require.NoError(t, postRepo.Create(ctx, &models.Post{Title: "x", UserID: 2, IsActive: true}))

	state, err := svc.ToggleLike(ctx, 1, 1)
	require.NoError(t, err)
	assert.True(t, state.Liked)

	post, err := postRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, post.LikesCount)

	state, err = svc.ToggleLike(ctx, 1, 1)
	require.NoError(t, err)
	assert.False(t, state.Liked)

	post, err = postRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, post.LikesCount)
}

func TestInteractionService_ToggleLikeMissingPost(t *testing.T) {
	svc, _ := setupInteractionService(t)

	_, err := svc.ToggleLike(context.Background(), 1, 99)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestInteractionService_AddComment(t *testing.T) {
	svc, postRepo := setupInteractionService(t)
	ctx := context.Background()

	require.NoError(t, postRepo.Create(ctx, &models.Post{Title: "x", UserID: 2, IsActive: true}))

	comment, err := svc.AddComment(ctx, 1, 1, "  great spot  ")
	require.NoError(t, err)
	assert.Equal(t, "great spot", comment.Body)

	post, err := postRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, post.CommentsCount)
}

func TestInteractionService_AddCommentValidation(t *testing.T) {
	svc, postRepo := setupInteractionService(t)
	ctx := context.Background()

	require.NoError(t, postRepo.Create(ctx, &models.Post{Title: "x", UserID: 2, IsActive: true}))

	_, err := svc.AddComment(ctx, 1, 1, "   ")
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)

	_, err = svc.AddComment(ctx, 1, 99, "hello")
	require.Error(t, err)
	appErr, ok = err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestInteractionService_DeleteComment(t *testing.T) {
	svc, postRepo := setupInteractionService(t)
	ctx := context.Background()

	require.NoError(t, postRepo.Create(ctx, &models.Post{Title: "x", UserID: 2, IsActive: true}))

	comment, err := svc.AddComment(ctx, 1, 1, "hello")
	require.NoError(t, err)

	err = svc.DeleteComment(ctx, 2, comment.ID)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)

	require.NoError(t, svc.DeleteComment(ctx, 1, comment.ID))

	post, err := postRepo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, post.CommentsCount)

	err = svc.DeleteComment(ctx, 1, comment.ID)
	require.Error(t, err)
}

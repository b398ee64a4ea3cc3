package repository

import (
	"context"

	"waypost/internal/models"
	"waypost/internal/recommend"
)

// FeedStore adapts the repositories to the recommendation engine's Store
// interface.
type FeedStore struct {
	posts    PostRepository
	likes    LikeRepository
	comments CommentRepository
}

var _ recommend.Store = (*FeedStore)(nil)

// NewFeedStore creates the engine-facing store over the repositories.
func NewFeedStore(posts PostRepository, likes LikeRepository, comments CommentRepository) *FeedStore {
	return &FeedStore{posts: posts, likes: likes, comments: comments}
}

func (s *FeedStore) ActivePosts(ctx context.Context) ([]models.Post, error) {
	return s.posts.ListActive(ctx)
}

func (s *FeedStore) PostByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *FeedStore) LikedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.likes.LikedPostIDs(ctx, userID)
}

func (s *FeedStore) CommentedPostIDs(ctx context.Context, userID uint) ([]uint, error) {
	return s.comments.CommentedPostIDs(ctx, userID)
}

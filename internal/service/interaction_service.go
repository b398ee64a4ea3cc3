package service

import (
	"context"
	"errors"
	"strings"

	"waypost/internal/models"
	"waypost/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLength = 2000

// InteractionService handles likes and comments, keeping the denormalized
// post counters in step.
type InteractionService struct {
	postRepo    repository.PostRepository
	likeRepo    repository.LikeRepository
	commentRepo repository.CommentRepository
}

// NewInteractionService creates a new interaction service
func NewInteractionService(
	postRepo repository.PostRepository,
	likeRepo repository.LikeRepository,
	commentRepo repository.CommentRepository,
) *InteractionService {
	return &InteractionService{
		postRepo:    postRepo,
		likeRepo:    likeRepo,
		commentRepo: commentRepo,
	}
}

// LikeState reports the like status of a post after a toggle.
type LikeState struct {
	PostID uint `json:"post_id"`
	Liked  bool `json:"liked"`
}

// ToggleLike likes the post if the user has not liked it, otherwise removes
// the like. The post's likes counter moves with it.
func (s *InteractionService) ToggleLike(ctx context.Context, userID, postID uint) (*LikeState, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	liked, err := s.likeRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if liked {
		removed, err := s.likeRepo.Unlike(ctx, userID, postID)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if removed {
			if err := s.postRepo.IncrementLikes(ctx, postID, -1); err != nil {
				return nil, models.NewInternalError(err)
			}
		}
		return &LikeState{PostID: postID, Liked: false}, nil
	}

	inserted, err := s.likeRepo.Like(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if inserted {
		if err := s.postRepo.IncrementLikes(ctx, postID, 1); err != nil {
			return nil, models.NewInternalError(err)
		}
	}
	return &LikeState{PostID: postID, Liked: true}, nil
}

// AddComment creates a comment on a post and bumps its comments counter.
func (s *InteractionService) AddComment(ctx context.Context, userID, postID uint, body string) (*models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, models.NewValidationError("Comment body is required")
	}
	if len(body) > maxCommentLength {
		return nil, models.NewValidationError("Comment is too long")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", postID)
		}
		return nil, models.NewInternalError(err)
	}

	comment := &models.Comment{
		PostID: postID,
		UserID: userID,
		Body:   body,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	if err := s.postRepo.IncrementComments(ctx, postID, 1); err != nil {
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// GetComments returns a page of a post's comments, oldest first.
func (s *InteractionService) GetComments(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, error) {
	comments, err := s.commentRepo.GetByPostID(ctx, postID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return comments, nil
}

// GetLikes returns the likes recorded against a post, newest first.
func (s *InteractionService) GetLikes(ctx context.Context, postID uint) ([]models.Like, error) {
	likes, err := s.likeRepo.ListForPost(ctx, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return likes, nil
}

// DeleteComment removes a comment authored by userID and decrements the
// post's comments counter.
func (s *InteractionService) DeleteComment(ctx context.Context, userID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Comment", commentID)
		}
		return models.NewInternalError(err)
	}
	if comment.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}
	if err := s.commentRepo.Delete(ctx, commentID); err != nil {
		return models.NewInternalError(err)
	}
	if err := s.postRepo.IncrementComments(ctx, comment.PostID, -1); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Package service contains business logic between handlers and repositories.
package service

import (
	"context"
	"errors"
	"strings"

	"waypost/internal/models"
	"waypost/internal/repository"

	"gorm.io/gorm"
)

const (
	maxTitleLength   = 300
	maxContentLength = 5000
	maxTags          = 10
)

// PostService handles post business logic
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService creates a new post service
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePostInput contains the data needed to create a post
type CreatePostInput struct {
	UserID     uint
	Title      string
	Content    string
	ImageURL   string
	Latitude   *float64
	Longitude  *float64
	Categories []string
	Moods      []string
}

// UpdatePostInput contains the updatable post fields. Nil means unchanged.
type UpdatePostInput struct {
	Title      *string
	Content    *string
	ImageURL   *string
	Categories []string
	Moods      []string
	IsActive   *bool
}

// CreatePost validates the input and creates a post.
func (s *PostService) CreatePost(ctx context.Context, input CreatePostInput) (*models.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	if len(title) > maxTitleLength {
		return nil, models.NewValidationError("Title is too long")
	}
	if len(input.Content) > maxContentLength {
		return nil, models.NewValidationError("Content is too long")
	}
	if err := validateCoordinates(input.Latitude, input.Longitude); err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:      title,
		Content:    strings.TrimSpace(input.Content),
		ImageURL:   strings.TrimSpace(input.ImageURL),
		UserID:     input.UserID,
		Latitude:   input.Latitude,
		Longitude:  input.Longitude,
		Categories: normalizeTags(input.Categories),
		Moods:      normalizeTags(input.Moods),
		IsActive:   true,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// GetPost retrieves a single post by ID.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// ListPosts returns a page of posts, newest first.
func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	posts, err := s.postRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// GetUserPosts returns a page of a single user's posts.
func (s *PostService) GetUserPosts(ctx context.Context, userID uint, limit, offset int) ([]models.Post, error) {
	posts, err := s.postRepo.GetByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

// UpdatePost applies the given changes to a post owned by userID.
func (s *PostService) UpdatePost(ctx context.Context, id, userID uint, input UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only edit your own posts")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, models.NewValidationError("Title is required")
		}
		if len(title) > maxTitleLength {
			return nil, models.NewValidationError("Title is too long")
		}
		post.Title = title
	}
	if input.Content != nil {
		if len(*input.Content) > maxContentLength {
			return nil, models.NewValidationError("Content is too long")
		}
		post.Content = strings.TrimSpace(*input.Content)
	}
	if input.ImageURL != nil {
		post.ImageURL = strings.TrimSpace(*input.ImageURL)
	}
	if input.Categories != nil {
		post.Categories = normalizeTags(input.Categories)
	}
	if input.Moods != nil {
		post.Moods = normalizeTags(input.Moods)
	}
	if input.IsActive != nil {
		post.IsActive = *input.IsActive
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// DeletePost removes a post owned by userID.
func (s *PostService) DeletePost(ctx context.Context, id, userID uint) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, id); err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// validateCoordinates requires both or neither coordinate, in valid ranges.
func validateCoordinates(lat, lng *float64) error {
	if (lat == nil) != (lng == nil) {
		return models.NewValidationError("Latitude and longitude must be provided together")
	}
	if lat == nil {
		return nil
	}
	if *lat < -90 || *lat > 90 {
		return models.NewValidationError("Latitude must be between -90 and 90")
	}
	if *lng < -180 || *lng > 180 {
		return models.NewValidationError("Longitude must be between -180 and 180")
	}
	return nil
}

// normalizeTags trims, lowercases, drops empties, and deduplicates while
// keeping first-seen order.
func normalizeTags(tags []string) models.StringList {
	seen := map[string]struct{}{}
	out := models.StringList{}
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
		if len(out) == maxTags {
			break
		}
	}
	return out
}

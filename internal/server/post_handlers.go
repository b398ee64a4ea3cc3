package server

import (
	"log/slog"

	"waypost/internal/middleware"
	"waypost/internal/models"
	"waypost/internal/notifications"
	"waypost/internal/service"

	"github.com/gofiber/fiber/v2"
)

type createPostRequest struct {
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	ImageURL   string   `json:"image_url"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Categories []string `json:"categories"`
	Moods      []string `json:"moods"`
}

type updatePostRequest struct {
	Title      *string  `json:"title"`
	Content    *string  `json:"content"`
	ImageURL   *string  `json:"image_url"`
	Categories []string `json:"categories"`
	Moods      []string `json:"moods"`
	IsActive   *bool    `json:"is_active"`
}

// CreatePost creates a new post for the authenticated user.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req createPostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID:     userID,
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		Latitude:   req.Latitude,
		Longitude:  req.Longitude,
		Categories: req.Categories,
		Moods:      req.Moods,
	})
	if err != nil {
		return serviceError(c, err)
	}

	s.publishActivity(c, post.UserID, notifications.EventPostCreated, post.ID, userID)

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts returns a page of posts, newest first.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	posts, err := s.postService.ListPosts(c.UserContext(), limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts, "limit": limit, "offset": offset})
}

// GetPost returns a single post.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	post, err := s.postService.GetPost(c.UserContext(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(post)
}

// GetUserPosts returns a page of the given user's posts.
func (s *Server) GetUserPosts(c *fiber.Ctx) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	limit, offset := parsePagination(c)
	posts, err := s.postService.GetUserPosts(c.UserContext(), userID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"posts": posts, "limit": limit, "offset": offset})
}

// UpdatePost updates a post owned by the authenticated user.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	var req updatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), id, currentUserID(c), service.UpdatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		ImageURL:   req.ImageURL,
		Categories: req.Categories,
		Moods:      req.Moods,
		IsActive:   req.IsActive,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(post)
}

// DeletePost removes a post owned by the authenticated user.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	if err := s.postService.DeletePost(c.UserContext(), id, currentUserID(c)); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ToggleLike likes or unlikes a post for the authenticated user.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	userID := currentUserID(c)

	state, err := s.interactionService.ToggleLike(c.UserContext(), userID, postID)
	if err != nil {
		return serviceError(c, err)
	}

	event := notifications.EventPostUnliked
	if state.Liked {
		event = notifications.EventPostLiked
	}
	if post, err := s.postRepo.GetByID(c.UserContext(), postID); err == nil {
		s.publishActivity(c, post.UserID, event, postID, userID)
	}

	return c.JSON(state)
}

// GetLikes lists the likes on a post.
func (s *Server) GetLikes(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	likes, err := s.interactionService.GetLikes(c.UserContext(), postID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"likes": likes, "count": len(likes)})
}

// publishActivity publishes an activity event, logging instead of failing
// the request when the publish cannot be delivered.
func (s *Server) publishActivity(c *fiber.Ctx, ownerID uint, eventType string, postID, actorID uint) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishActivity(c.UserContext(), ownerID, eventType, postID, actorID); err != nil {
		middleware.Logger.WarnContext(c.UserContext(), "activity publish failed",
			slog.String("event", eventType),
			slog.String("error", err.Error()),
		)
	}
}

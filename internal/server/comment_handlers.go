package server

import (
	"waypost/internal/models"
	"waypost/internal/notifications"

	"github.com/gofiber/fiber/v2"
)

type createCommentRequest struct {
	Body string `json:"body"`
}

// CreateComment adds a comment to a post for the authenticated user.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	var req createCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	userID := currentUserID(c)
	comment, err := s.interactionService.AddComment(c.UserContext(), userID, postID, req.Body)
	if err != nil {
		return serviceError(c, err)
	}

	if post, err := s.postRepo.GetByID(c.UserContext(), postID); err == nil {
		s.publishActivity(c, post.UserID, notifications.EventCommentAdded, postID, userID)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// GetComments returns a page of a post's comments, oldest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	limit, offset := parsePagination(c)
	comments, err := s.interactionService.GetComments(c.UserContext(), postID, limit, offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"comments": comments, "limit": limit, "offset": offset})
}

// DeleteComment removes a comment authored by the authenticated user.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	commentID, err := parseID(c, "id")
	if err != nil {
		return serviceError(c, err)
	}
	if err := s.interactionService.DeleteComment(c.UserContext(), currentUserID(c), commentID); err != nil {
		return serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

package server

import (
	"strconv"

	"waypost/internal/models"
	"waypost/internal/recommend"

	"github.com/gofiber/fiber/v2"
)

const maxFeedPageSize = 50

// GetFeed returns a recommendation page for the authenticated user.
// Query params: lat and lng (required), page_size, exclude (comma-separated
// post ids the client has already seen), cursor.
func (s *Server) GetFeed(c *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lat is required and must be a number"))
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lng is required and must be a number"))
	}
	if lat < -90 || lat > 90 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lat must be between -90 and 90"))
	}
	if lng < -180 || lng > 180 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("lng must be between -180 and 180"))
	}

	pageSize := c.QueryInt("page_size", s.config.FeedPageSize)
	if pageSize <= 0 {
		pageSize = recommend.DefaultPageSize
	}
	if pageSize > maxFeedPageSize {
		pageSize = maxFeedPageSize
	}

	userID := currentUserID(c)
	result := s.engine.Recommend(c.UserContext(), recommend.Request{
		UserID:   userID,
		Origin:   recommend.Coordinates{Lat: lat, Lng: lng},
		Exclude:  parseIDList(c.Query("exclude")),
		Cursor:   c.Query("cursor"),
		PageSize: pageSize,
	})

	// Engine internals stay hidden unless the flag grants them to this user.
	if !s.featureFlags.Enabled("feed_debug", userID) {
		return c.JSON(fiber.Map{
			"posts":    result.Posts,
			"cursor":   result.Cursor,
			"has_more": result.HasMore,
		})
	}

	return c.JSON(result)
}

// GetFeatureFlags returns the flag set evaluated for the caller.
func (s *Server) GetFeatureFlags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"flags": s.featureFlags.Snapshot(currentUserID(c))})
}

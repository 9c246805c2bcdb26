// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// LikeEntry is the shape returned by the likes list endpoint.
type LikeEntry struct {
	ID        uint   `json:"id"`
	RecipeID  uint   `json:"recipe_id"`
	Timestamp string `json:"timestamp"`
}

// LikeRecipe handles POST /api/likes/:recipeId
func (s *Server) LikeRecipe(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	recipeID, err := s.parseID(c, "recipeId")
	if err != nil {
		return nil
	}

	if _, err := s.likeService.LikeRecipe(ctx, userID, recipeID); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Recipe liked!",
	})
}

// UnlikeRecipe handles DELETE /api/likes/:recipeId
func (s *Server) UnlikeRecipe(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	recipeID, err := s.parseID(c, "recipeId")
	if err != nil {
		return nil
	}

	if err := s.likeService.UnlikeRecipe(ctx, userID, recipeID); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Like removed",
	})
}

// GetMyLikes handles GET /api/likes and returns the caller's likes
func (s *Server) GetMyLikes(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	likes, err := s.likeService.ListLikes(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	entries := make([]LikeEntry, 0, len(likes))
	for _, like := range likes {
		entries = append(entries, LikeEntry{
			ID:        like.ID,
			RecipeID:  like.RecipeID,
			Timestamp: like.CreatedAt.UTC().Format(time.DateTime),
		})
	}

	return c.JSON(entries)
}

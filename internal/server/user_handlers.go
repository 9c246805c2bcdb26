// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"recipehub/internal/models"
	"recipehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserSummary is the shape returned by the user list endpoint.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserDetail adds the user's recipes to the summary shape.
type UserDetail struct {
	UserSummary
	Recipes []UserRecipeRef `json:"recipes"`
}

// UserRecipeRef is a minimal reference to a recipe owned by a user.
type UserRecipeRef struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

// GetProfile handles GET /api/profile and returns the authenticated user
func (s *Server) GetProfile(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	user, err := s.userService.GetProfile(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pagination := parsePagination(c, 20)

	users, err := s.userService.ListUsers(ctx, service.ListUsersInput{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			ID:       u.ID,
			Username: u.Username,
			Email:    u.Email,
		})
	}

	return c.JSON(summaries)
}

// GetUser handles GET /api/users/:id, including the user's recipes
func (s *Server) GetUser(c *fiber.Ctx) error {
	ctx := c.UserContext()

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetUser(ctx, userID)
	if err != nil {
		return respondServiceError(c, err)
	}

	detail := UserDetail{
		UserSummary: UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
		Recipes: make([]UserRecipeRef, 0, len(user.Recipes)),
	}
	for _, r := range user.Recipes {
		detail.Recipes = append(detail.Recipes, UserRecipeRef{
			ID:    r.ID,
			Title: r.Title,
		})
	}

	return c.JSON(detail)
}

// UpdateUser handles PUT /api/users/:id (self only)
func (s *Server) UpdateUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	actorID := c.Locals("userID").(uint)

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateUser(ctx, service.UpdateUserInput{
		ActorID:  actorID,
		UserID:   userID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(user)
}

// DeleteUser handles DELETE /api/users/:id (self only), cascading to owned content
func (s *Server) DeleteUser(c *fiber.Ctx) error {
	ctx := c.UserContext()
	actorID := c.Locals("userID").(uint)

	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.userService.DeleteUser(ctx, service.DeleteUserInput{
		ActorID: actorID,
		UserID:  userID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "User deleted",
	})
}

// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"recipehub/internal/models"
	"recipehub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RecipeSummary is the trimmed-down shape returned by the list endpoint.
type RecipeSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	UserID   uint   `json:"user_id"`
}

// GetRecipes returns all recipes as summaries
func (s *Server) GetRecipes(c *fiber.Ctx) error {
	ctx := c.UserContext()
	pagination := parsePagination(c, 20)

	recipes, err := s.recipeService.ListRecipes(ctx, service.ListRecipesInput{
		Limit:  pagination.Limit,
		Offset: pagination.Offset,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	summaries := make([]RecipeSummary, 0, len(recipes))
	for _, r := range recipes {
		summaries = append(summaries, RecipeSummary{
			ID:       r.ID,
			Title:    r.Title,
			ImageURL: r.ImageURL,
			UserID:   r.UserID,
		})
	}

	return c.JSON(summaries)
}

// CreateRecipe creates a new recipe owned by the authenticated user
func (s *Server) CreateRecipe(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	var req struct {
		Title        string `json:"title"`
		Ingredients  string `json:"ingredients"`
		Instructions string `json:"instructions"`
		ImageURL     string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.CreateRecipe(ctx, service.CreateRecipeInput{
		UserID:       userID,
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(recipe)
}

// GetRecipe returns a single recipe with its comments and like count
func (s *Server) GetRecipe(c *fiber.Ctx) error {
	ctx := c.UserContext()

	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	recipe, err := s.recipeService.GetRecipe(ctx, recipeID)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recipe)
}

// UpdateRecipe applies a partial update to a recipe (owner only)
func (s *Server) UpdateRecipe(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title        string `json:"title"`
		Ingredients  string `json:"ingredients"`
		Instructions string `json:"instructions"`
		ImageURL     string `json:"image_url"`
	}
	if parseErr := c.BodyParser(&req); parseErr != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	recipe, err := s.recipeService.UpdateRecipe(ctx, service.UpdateRecipeInput{
		UserID:       userID,
		RecipeID:     recipeID,
		Title:        req.Title,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		ImageURL:     req.ImageURL,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(recipe)
}

// DeleteRecipe removes a recipe and everything attached to it (owner only)
func (s *Server) DeleteRecipe(c *fiber.Ctx) error {
	ctx := c.UserContext()
	userID := c.Locals("userID").(uint)

	recipeID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.recipeService.DeleteRecipe(ctx, service.DeleteRecipeInput{
		UserID:   userID,
		RecipeID: recipeID,
	}); err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Recipe deleted",
	})
}

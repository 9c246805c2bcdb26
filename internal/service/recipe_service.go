package service

import (
	"context"

	"recipehub/internal/cache"
	"recipehub/internal/models"
	"recipehub/internal/repository"
)

// RecipeService implements the authorization and mutation rules for recipes.
type RecipeService struct {
	recipeRepo repository.RecipeRepository
}

type CreateRecipeInput struct {
	UserID       uint
	Title        string
	Ingredients  string
	Instructions string
	ImageURL     string
}

type UpdateRecipeInput struct {
	UserID       uint
	RecipeID     uint
	Title        string
	Ingredients  string
	Instructions string
	ImageURL     string
}

type DeleteRecipeInput struct {
	UserID   uint
	RecipeID uint
}

type ListRecipesInput struct {
	Limit  int
	Offset int
}

func NewRecipeService(recipeRepo repository.RecipeRepository) *RecipeService {
	return &RecipeService{recipeRepo: recipeRepo}
}

const (
	maxTitleLen       = 300
	maxRecipeFieldLen = 50000
)

func (s *RecipeService) CreateRecipe(ctx context.Context, in CreateRecipeInput) (*models.Recipe, error) {
	if in.Title == "" || in.Ingredients == "" || in.Instructions == "" {
		return nil, models.NewValidationError("Title, ingredients, and instructions are required")
	}
	if len(in.Title) > maxTitleLen {
		return nil, models.NewValidationError("Title too long (max 300 characters)")
	}
	if len(in.Ingredients) > maxRecipeFieldLen || len(in.Instructions) > maxRecipeFieldLen {
		return nil, models.NewValidationError("Recipe content too long (max 50000 characters)")
	}

	recipe := &models.Recipe{
		Title:        in.Title,
		Ingredients:  in.Ingredients,
		Instructions: in.Instructions,
		ImageURL:     in.ImageURL,
		UserID:       in.UserID,
	}
	if err := s.recipeRepo.Create(ctx, recipe); err != nil {
		return nil, err
	}

	return s.recipeRepo.GetByID(ctx, recipe.ID)
}

func (s *RecipeService) ListRecipes(ctx context.Context, in ListRecipesInput) ([]*models.Recipe, error) {
	var recipes []*models.Recipe

	// Cache only the default first page; other windows go straight to the DB.
	if in.Offset == 0 && in.Limit <= 20 {
		err := cache.Aside(ctx, cache.RecipeListKey, &recipes, cache.RecipeListTTL, func() error {
			var fetchErr error
			recipes, fetchErr = s.recipeRepo.List(ctx, in.Limit, in.Offset)
			return fetchErr
		})
		return recipes, err
	}

	return s.recipeRepo.List(ctx, in.Limit, in.Offset)
}

func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*models.Recipe, error) {
	return s.recipeRepo.GetByID(ctx, id)
}

// UpdateRecipe applies merge semantics: fields not supplied keep their prior
// value. Only the owner may update.
func (s *RecipeService) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID)
	if err != nil {
		return nil, err
	}

	if recipe.UserID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own recipes")
	}

	if in.Title != "" {
		if len(in.Title) > maxTitleLen {
			return nil, models.NewValidationError("Title too long (max 300 characters)")
		}
		recipe.Title = in.Title
	}
	if in.Ingredients != "" {
		recipe.Ingredients = in.Ingredients
	}
	if in.Instructions != "" {
		recipe.Instructions = in.Instructions
	}
	if in.ImageURL != "" {
		recipe.ImageURL = in.ImageURL
	}

	if err := s.recipeRepo.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// DeleteRecipe removes the recipe and cascades to its comments and likes.
// Only the owner may delete.
func (s *RecipeService) DeleteRecipe(ctx context.Context, in DeleteRecipeInput) error {
	recipe, err := s.recipeRepo.GetByID(ctx, in.RecipeID)
	if err != nil {
		return err
	}

	if recipe.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own recipes")
	}

	return s.recipeRepo.DeleteCascade(ctx, in.RecipeID)
}

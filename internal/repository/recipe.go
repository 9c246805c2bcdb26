// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"recipehub/internal/cache"
	"recipehub/internal/models"

	"gorm.io/gorm"
)

// RecipeRepository defines persistence operations for recipes.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	GetByID(ctx context.Context, id uint) (*models.Recipe, error)
	List(ctx context.Context, limit, offset int) ([]*models.Recipe, error)
	GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Recipe, error)
	Update(ctx context.Context, recipe *models.Recipe) error
	DeleteCascade(ctx context.Context, id uint) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository returns a new RecipeRepository implementation.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.RecipeListKey)
	return nil
}

// GetByID loads a recipe with its comments (newest first, each with author)
// and the computed like count.
func (r *recipeRepository) GetByID(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.User").
		First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Recipe", id)
		}
		return nil, models.NewInternalError(err)
	}

	var likes int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("recipe_id = ?", id).
		Count(&likes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	recipe.LikesCount = int(likes)

	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, limit, offset int) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) GetByUserID(ctx context.Context, userID uint, limit, offset int) ([]*models.Recipe, error) {
	var recipes []*models.Recipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&recipes).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return recipes, nil
}

func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	if err := r.db.WithContext(ctx).Save(recipe).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, recipe.ID)
	return nil
}

// DeleteCascade removes the recipe and all of its comments and likes in a
// single transaction, so a failed delete leaves no orphan rows behind.
func (r *recipeRepository) DeleteCascade(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateRecipe(ctx, id)
	return nil
}

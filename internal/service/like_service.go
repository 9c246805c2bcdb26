package service

import (
	"context"

	"recipehub/internal/models"
	"recipehub/internal/repository"
)

// LikeService enforces the one-like-per-user-per-recipe rule.
type LikeService struct {
	likeRepo   repository.LikeRepository
	recipeRepo repository.RecipeRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	recipeRepo repository.RecipeRepository,
) *LikeService {
	return &LikeService{
		likeRepo:   likeRepo,
		recipeRepo: recipeRepo,
	}
}

// LikeRecipe records a like. A duplicate like is a conflict; the repository
// backstops the pre-check with the unique index for concurrent requests.
func (s *LikeService) LikeRecipe(ctx context.Context, userID, recipeID uint) (*models.Like, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID); err != nil {
		return nil, err
	}

	existing, err := s.likeRepo.GetByUserAndRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Already liked")
	}

	like := &models.Like{UserID: userID, RecipeID: recipeID}
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return nil, err
	}
	return like, nil
}

// UnlikeRecipe removes a like. Unliking something never liked is not found.
func (s *LikeService) UnlikeRecipe(ctx context.Context, userID, recipeID uint) error {
	existing, err := s.likeRepo.GetByUserAndRecipe(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if existing == nil {
		return models.NewNotFoundError("Like", recipeID)
	}
	return s.likeRepo.Delete(ctx, existing.ID)
}

func (s *LikeService) ListLikes(ctx context.Context, userID uint) ([]*models.Like, error) {
	return s.likeRepo.ListByUser(ctx, userID)
}

package service

import (
	"context"

	"recipehub/internal/models"
	"recipehub/internal/repository"
)

// CommentService implements the authorization and mutation rules for comments.
type CommentService struct {
	commentRepo repository.CommentRepository
	recipeRepo  repository.RecipeRepository
}

type AddCommentInput struct {
	UserID   uint
	RecipeID uint
	Text     string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	recipeRepo repository.RecipeRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		recipeRepo:  recipeRepo,
	}
}

const maxCommentLen = 10000

// AddComment creates a comment on an existing recipe. Commenting on a
// missing recipe is rejected with a not-found error.
func (s *CommentService) AddComment(ctx context.Context, in AddCommentInput) (*models.Comment, error) {
	if in.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if len(in.Text) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.recipeRepo.GetByID(ctx, in.RecipeID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Text:     in.Text,
		UserID:   in.UserID,
		RecipeID: in.RecipeID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

func (s *CommentService) ListComments(ctx context.Context, recipeID uint) ([]*models.Comment, error) {
	if _, err := s.recipeRepo.GetByID(ctx, recipeID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByRecipe(ctx, recipeID)
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}

	if comment.UserID != in.UserID {
		return models.NewForbiddenError("You can only delete your own comments")
	}

	return s.commentRepo.Delete(ctx, in.CommentID)
}

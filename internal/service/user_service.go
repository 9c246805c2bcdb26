package service

import (
	"context"

	"recipehub/internal/models"
	"recipehub/internal/repository"
	"recipehub/internal/validation"
)

// UserService handles account reads, profile updates, and account deletion.
type UserService struct {
	userRepo repository.UserRepository
}

type UpdateUserInput struct {
	ActorID  uint
	UserID   uint
	Username string
	Email    string
	Password string
}

type DeleteUserInput struct {
	ActorID uint
	UserID  uint
}

type ListUsersInput struct {
	Limit  int
	Offset int
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context, in ListUsersInput) ([]models.User, error) {
	return s.userRepo.List(ctx, in.Limit, in.Offset)
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByIDWithRecipes(ctx, userID)
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// UpdateUser applies a partial update to an account. Users may only update
// themselves. Empty fields keep their current values.
func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	if in.ActorID != in.UserID {
		return nil, models.NewForbiddenError("You can only update your own account")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewConflictError("Username already taken")
		}
		user.Username = in.Username
	}

	if in.Email != "" && in.Email != user.Email {
		if err := validation.ValidateEmail(in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewConflictError("Email already taken")
		}
		user.Email = in.Email
	}

	if in.Password != "" {
		if err := validation.ValidatePassword(in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if err := user.SetPassword(in.Password); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account and everything it owns: recipes, the
// comments and likes on those recipes, and the user's own comments and
// likes elsewhere.
func (s *UserService) DeleteUser(ctx context.Context, in DeleteUserInput) error {
	if in.ActorID != in.UserID {
		return models.NewForbiddenError("You can only delete your own account")
	}

	if _, err := s.userRepo.GetByID(ctx, in.UserID); err != nil {
		return err
	}

	return s.userRepo.DeleteCascade(ctx, in.UserID)
}

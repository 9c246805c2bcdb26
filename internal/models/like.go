package models

import "time"

// Like represents a user's like on a recipe.
// The combination of UserID and RecipeID must be unique.
// Likes are hard-deleted so the unique index frees up on unlike.
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_recipe" json:"user_id"`
	RecipeID  uint      `gorm:"not null;uniqueIndex:idx_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `json:"created_at"`
}

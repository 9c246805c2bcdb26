// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"log"
	"math/rand"

	"recipehub/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumRecipes  int
	ShouldClean bool
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d recipes...", opts.NumUsers, opts.NumRecipes)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: Could not clear all existing data, continuing anyway...")
		}
	}

	factory := NewFactory(db)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}
	log.Printf("Created %d users", len(users))

	// Recipes, comments and likes all need an owner.
	if len(users) == 0 {
		log.Println("No users created, skipping recipes, comments, and likes")
		return nil
	}

	recipes := make([]*models.Recipe, 0, opts.NumRecipes)
	for i := 0; i < opts.NumRecipes; i++ {
		owner := users[rand.Intn(len(users))]
		recipe, err := factory.CreateRecipe(owner)
		if err != nil {
			return err
		}
		recipes = append(recipes, recipe)
	}
	log.Printf("Created %d recipes", len(recipes))

	// Sprinkle comments and likes across recipes. Likes track which pairs
	// exist so the unique index is never violated.
	comments := 0
	likes := 0
	liked := make(map[[2]uint]bool)
	for _, recipe := range recipes {
		for i := 0; i < rand.Intn(5); i++ {
			commenter := users[rand.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, recipe); err != nil {
				return err
			}
			comments++
		}
		for i := 0; i < rand.Intn(8); i++ {
			liker := users[rand.Intn(len(users))]
			pair := [2]uint{liker.ID, recipe.ID}
			if liked[pair] {
				continue
			}
			liked[pair] = true
			if _, err := factory.CreateLike(liker, recipe); err != nil {
				return err
			}
			likes++
		}
	}
	log.Printf("Created %d comments and %d likes", comments, likes)

	return nil
}

// clearData removes all seeded rows in dependency order.
func clearData(db *gorm.DB) error {
	tables := []string{"likes", "comments", "recipes", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

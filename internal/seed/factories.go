// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"recipehub/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rand *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser constructs and persists a sample user. All seeded users share
// the password "password123". Optional override functions may modify the
// generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user.Password = string(hashedPassword)

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateRecipe constructs and persists a sample recipe owned by the given user.
func (f *Factory) CreateRecipe(user *models.User, overrides ...func(*models.Recipe)) (*models.Recipe, error) {
	recipe := &models.Recipe{
		Title:        fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.Dinner()),
		Ingredients:  fakeIngredients(f.rand),
		Instructions: gofakeit.Paragraph(1, 4, 8, "\n"),
		ImageURL:     fmt.Sprintf("https://picsum.photos/seed/%s/800/600", gofakeit.UUID()),
		UserID:       user.ID,
	}

	// realistic created_at spread over the last 90 days
	daysBack := f.rand.Intn(90)
	hoursBack := f.rand.Intn(24)
	recipe.CreatedAt = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(recipe)
	}

	if err := f.db.Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// CreateComment constructs and persists a sample comment.
func (f *Factory) CreateComment(user *models.User, recipe *models.Recipe) (*models.Comment, error) {
	comment := &models.Comment{
		Text:     gofakeit.Sentence(f.rand.Intn(12) + 3),
		UserID:   user.ID,
		RecipeID: recipe.ID,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like, ignoring duplicate pairs.
func (f *Factory) CreateLike(user *models.User, recipe *models.Recipe) (*models.Like, error) {
	like := &models.Like{
		UserID:   user.ID,
		RecipeID: recipe.ID,
	}
	if err := f.db.Create(like).Error; err != nil {
		return nil, err
	}
	return like, nil
}

func fakeIngredients(r *rand.Rand) string {
	count := r.Intn(6) + 4
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		lines = append(lines, fmt.Sprintf("%d %s %s",
			r.Intn(4)+1, gofakeit.RandomString([]string{"cups", "tbsp", "tsp", "oz", "g"}),
			gofakeit.Vegetable()))
	}
	return strings.Join(lines, "\n")
}
